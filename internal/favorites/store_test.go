package favorites

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storekit/shopcore/internal/domain/product"
	"github.com/storekit/shopcore/internal/kv"
)

// --- Mock implementations ---

// failingKV rejects every write; reads delegate to the wrapped store.
type failingKV struct {
	kv.Store
}

func (f *failingKV) Set(_ context.Context, _ string, _ []byte) error {
	return errors.New("disk full")
}

// --- Helpers ---

func newTestProduct(id int64, title string) product.Product {
	return product.Product{
		ID:       id,
		Title:    title,
		Price:    decimal.RequireFromString("9.99"),
		Category: "electronics",
		Image:    "https://test.example/p.jpg",
	}
}

func countNotifications(s *Store) *int {
	n := new(int)
	s.Subscribe(func([]product.Product) { *n++ })
	return n
}

// --- Tests ---

func TestAdd_OnlyFirstAddNotifies(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory(), nil)
	n := countNotifications(s)
	p := newTestProduct(1, "Iphone 15 Pro")

	s.Add(ctx, p)
	s.Add(ctx, p)

	require.Len(t, s.Favorites(), 1)
	assert.Equal(t, 1, *n, "duplicate add must not notify")
	assert.True(t, s.IsFavorite(1))
}

func TestAdd_ChecksIdentityByID(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory(), nil)

	s.Add(ctx, newTestProduct(1, "Iphone 15 Pro"))
	// Same id, different title: still the same product.
	s.Add(ctx, newTestProduct(1, "Iphone 15 Pro (renamed)"))

	require.Len(t, s.Favorites(), 1)
	assert.Equal(t, "Iphone 15 Pro", s.Favorites()[0].Title)
}

func TestRemove_PersistsAndNotifiesEvenWhenAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory(), nil)
	n := countNotifications(s)

	s.Remove(ctx, 42)

	assert.Empty(t, s.Favorites())
	assert.Equal(t, 1, *n)
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory(), nil)
	p := newTestProduct(1, "Iphone 15 Pro")

	s.Toggle(ctx, p)
	assert.True(t, s.IsFavorite(1))

	s.Toggle(ctx, p)
	assert.False(t, s.IsFavorite(1))
}

func TestLoad_RoundTripThroughStorage(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()

	s := NewStore(storage, nil)
	s.Clear(ctx)
	s.Add(ctx, newTestProduct(1, "Iphone 15 Pro"))
	s.Add(ctx, newTestProduct(2, "Macbook Pro"))

	// A fresh store over the same storage sees nothing until Load.
	reloaded := NewStore(storage, nil)
	assert.False(t, reloaded.IsFavorite(1))

	reloaded.Load(ctx)

	assert.True(t, reloaded.IsFavorite(1))
	assert.True(t, reloaded.IsFavorite(2))
	require.Len(t, reloaded.Favorites(), 2)
	assert.Equal(t, "Iphone 15 Pro", reloaded.Favorites()[0].Title, "first-add order preserved")
}

func TestLoad_MissingKeyLeavesListEmpty(t *testing.T) {
	s := NewStore(kv.NewMemory(), nil)

	s.Load(context.Background())

	assert.Empty(t, s.Favorites())
}

func TestLoad_UndecodableValueLeavesListEmpty(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	require.NoError(t, storage.Set(ctx, StorageKey, []byte("{not json")))

	s := NewStore(storage, nil)
	s.Load(ctx)

	assert.Empty(t, s.Favorites())
}

func TestPersistFailure_IsSwallowed(t *testing.T) {
	ctx := context.Background()
	s := NewStore(&failingKV{Store: kv.NewMemory()}, nil)
	n := countNotifications(s)

	s.Add(ctx, newTestProduct(1, "Iphone 15 Pro"))

	// The mutation still applies and still notifies.
	assert.True(t, s.IsFavorite(1))
	assert.Equal(t, 1, *n)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	s := NewStore(storage, nil)
	s.Add(ctx, newTestProduct(1, "Iphone 15 Pro"))

	n := countNotifications(s)
	s.Clear(ctx)

	assert.Empty(t, s.Favorites())
	assert.Zero(t, s.Count())
	assert.Equal(t, 1, *n)

	// The cleared state is what a reload sees.
	reloaded := NewStore(storage, nil)
	reloaded.Load(ctx)
	assert.Empty(t, reloaded.Favorites())
}
