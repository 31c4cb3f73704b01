package productlist

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storekit/shopcore/internal/catalog"
	"github.com/storekit/shopcore/internal/domain/product"
)

// --- Mock implementations ---

// stubClient returns canned products or a canned error. When release is set,
// FetchProducts blocks until it is closed, which lets tests observe the
// Loading state before completion.
type stubClient struct {
	products []product.Product
	err      error
	release  chan struct{}

	mu    sync.Mutex
	calls int
}

func (c *stubClient) FetchProducts(_ context.Context) ([]product.Product, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	if c.release != nil {
		<-c.release
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.products, nil
}

func (c *stubClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// --- Helpers ---

func newTestProduct(id int64, title string) product.Product {
	return product.Product{
		ID:       id,
		Title:    title,
		Price:    decimal.RequireFromString("999.99"),
		Category: "electronics",
		Image:    "https://test.example/p.jpg",
	}
}

// setProducts seeds the machine with an already-fetched list.
func setProducts(t *testing.T, m *Machine, products ...product.Product) {
	t.Helper()
	m.mu.Lock()
	m.products = products
	m.filtered = products
	m.mu.Unlock()
}

func waitForState(t *testing.T, m *Machine, want LoadingState) {
	t.Helper()
	require.Eventually(t, func() bool {
		return m.State() == want
	}, 2*time.Second, 5*time.Millisecond, "state never became %s", want)
}

// --- Tests ---

func TestFetchProducts_LoadingIsImmediate(t *testing.T) {
	client := &stubClient{release: make(chan struct{})}
	m := NewMachine(client, nil)
	require.Equal(t, Idle, m.State())

	m.FetchProducts(context.Background())

	assert.Equal(t, Loading, m.State(), "Loading must be observable before completion")

	close(client.release)
	waitForState(t, m, Success)
}

func TestFetchProducts_Success(t *testing.T) {
	client := &stubClient{products: []product.Product{
		newTestProduct(1, "Iphone 15 Pro"),
		newTestProduct(2, "Macbook Pro"),
	}}
	m := NewMachine(client, nil)

	var (
		mu     sync.Mutex
		states []LoadingState
		snaps  []Snapshot
	)
	m.OnStateChanged(func(s LoadingState) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	})
	m.OnProductsUpdated(func(s Snapshot) {
		mu.Lock()
		snaps = append(snaps, s)
		mu.Unlock()
	})

	m.FetchProducts(context.Background())

	// Wait for the products-updated event, which is emitted last.
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(snaps) == 1
	}, 2*time.Second, 5*time.Millisecond)

	products := m.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "Iphone 15 Pro", products[0].Title)
	assert.Equal(t, "Macbook Pro", products[1].Title)
	assert.Equal(t, products, m.FilteredProducts())

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []LoadingState{Loading, Success}, states, "state events before products event, in order")
	assert.Len(t, snaps[0].Products, 2)
}

func TestFetchProducts_FailureMapsMessageAndKeepsProducts(t *testing.T) {
	client := &stubClient{err: &catalog.StatusError{Code: 404}}
	m := NewMachine(client, nil)

	m.FetchProducts(context.Background())

	want := ErrorState("Server error (404). Please try again.")
	waitForState(t, m, want)
	assert.Empty(t, m.Products(), "products stay untouched on error")
	assert.Equal(t, 1, client.callCount())
}

func TestFetchProducts_ErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid request", catalog.ErrInvalidRequest, "Invalid URL. Please try again."},
		{"malformed response", catalog.ErrMalformedResponse, "Invalid response from server."},
		{"status", &catalog.StatusError{Code: 503}, "Server error (503). Please try again."},
		{"decode", catalog.ErrDecode, "Failed to process data. Please try again."},
		{"uncategorized", context.DeadlineExceeded, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(&stubClient{err: tt.err}, nil)
			m.FetchProducts(context.Background())
			waitForState(t, m, ErrorState(tt.want))
		})
	}
}

func TestFetchProducts_RefetchAfterError(t *testing.T) {
	client := &stubClient{err: &catalog.StatusError{Code: 500}}
	m := NewMachine(client, nil)

	m.FetchProducts(context.Background())
	waitForState(t, m, ErrorState("Server error (500). Please try again."))

	client.err = nil
	client.products = []product.Product{newTestProduct(1, "Iphone 15 Pro")}

	m.FetchProducts(context.Background())
	waitForState(t, m, Success)
	assert.Len(t, m.Products(), 1)
}

func TestFetchProducts_SuccessClearsActiveFilter(t *testing.T) {
	client := &stubClient{products: []product.Product{
		newTestProduct(1, "Iphone 15 Pro"),
		newTestProduct(2, "Macbook Pro"),
	}}
	m := NewMachine(client, nil)
	setProducts(t, m, newTestProduct(3, "Ipad Air"))
	m.FilterProducts("ipad")
	require.Len(t, m.FilteredProducts(), 1)

	m.FetchProducts(context.Background())
	waitForState(t, m, Success)

	assert.Len(t, m.FilteredProducts(), 2, "filtered view replaced by the fresh list")
}

func TestFilterProducts_CaseInsensitive(t *testing.T) {
	m := NewMachine(&stubClient{}, nil)
	setProducts(t, m,
		newTestProduct(1, "Iphone 15 Pro"),
		newTestProduct(2, "Macbook Pro"),
	)

	for _, term := range []string{"IPHONE", "iPhOnE", "iphone"} {
		m.FilterProducts(term)

		filtered := m.FilteredProducts()
		require.Len(t, filtered, 1, "term %q", term)
		assert.Equal(t, "Iphone 15 Pro", filtered[0].Title)
		assert.True(t, m.IsSearching())
	}
}

func TestFilterProducts_EmptyTermResets(t *testing.T) {
	m := NewMachine(&stubClient{}, nil)
	setProducts(t, m,
		newTestProduct(1, "Iphone 15 Pro"),
		newTestProduct(2, "Macbook Pro"),
	)
	m.FilterProducts("iphone")

	m.FilterProducts("")

	assert.Len(t, m.FilteredProducts(), 2)
	assert.False(t, m.IsSearching())
}

func TestFilterProducts_NoMatch(t *testing.T) {
	m := NewMachine(&stubClient{}, nil)
	setProducts(t, m,
		newTestProduct(1, "Iphone 15 Pro"),
		newTestProduct(2, "Macbook Pro"),
	)

	m.FilterProducts("xyz")

	assert.Empty(t, m.FilteredProducts())
	assert.True(t, m.IsSearching())
	assert.Len(t, m.Products(), 2, "unfiltered list untouched")
}

func TestFilterProducts_DoesNotTouchLoadingState(t *testing.T) {
	m := NewMachine(&stubClient{}, nil)
	setProducts(t, m, newTestProduct(1, "Iphone 15 Pro"))

	m.FilterProducts("iphone")

	assert.Equal(t, Idle, m.State())
}

func TestFilterProducts_EmitsProductsUpdated(t *testing.T) {
	m := NewMachine(&stubClient{}, nil)
	setProducts(t, m, newTestProduct(1, "Iphone 15 Pro"))

	var got []Snapshot
	m.OnProductsUpdated(func(s Snapshot) { got = append(got, s) })

	m.FilterProducts("iphone")

	require.Len(t, got, 1)
	assert.True(t, got[0].Searching)
	assert.Len(t, got[0].Filtered, 1)
}
