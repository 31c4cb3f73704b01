// Package productlist drives one product-browsing session: fetching the
// catalog, tracking the Idle/Loading/Success/Error state and filtering the
// fetched list by a search term.
//
// A Machine lives for the lifetime of one list-viewing session and starts at
// Idle with empty sequences. Concurrent fetches are not deduplicated: each
// completion applies its result as it arrives, so when two fetches overlap
// the last writer wins.
package productlist

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/storekit/shopcore/internal/catalog"
	"github.com/storekit/shopcore/internal/domain/product"
	"github.com/storekit/shopcore/pkg/emitter"
)

// Snapshot is a consistent view of the list session state.
type Snapshot struct {
	// Products is the full unfiltered list, replaced wholesale on each
	// successful fetch.
	Products []product.Product
	// Filtered is the view after the last applied search term.
	Filtered []product.Product
	// Searching is true iff the last applied search term was non-empty.
	Searching bool
}

// Machine orchestrates catalog fetches and search filtering.
type Machine struct {
	client catalog.Client
	lg     *zap.Logger
	fold   cases.Caser

	mu        sync.RWMutex
	state     LoadingState
	products  []product.Product
	filtered  []product.Product
	searching bool

	stateChanged    emitter.Emitter[LoadingState]
	productsUpdated emitter.Emitter[Snapshot]
}

// NewMachine creates a Machine in the Idle state.
func NewMachine(client catalog.Client, lg *zap.Logger) *Machine {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Machine{
		client: client,
		lg:     lg,
		fold:   cases.Fold(),
		state:  Idle,
	}
}

// OnStateChanged registers fn for loading-state transitions.
func (m *Machine) OnStateChanged(fn func(LoadingState)) emitter.Token {
	return m.stateChanged.Subscribe(fn)
}

// OnProductsUpdated registers fn for list or filter changes.
func (m *Machine) OnProductsUpdated(fn func(Snapshot)) emitter.Token {
	return m.productsUpdated.Subscribe(fn)
}

// RemoveStateListener drops a subscription made with OnStateChanged.
func (m *Machine) RemoveStateListener(token emitter.Token) {
	m.stateChanged.Unsubscribe(token)
}

// RemoveProductsListener drops a subscription made with OnProductsUpdated.
func (m *Machine) RemoveProductsListener(token emitter.Token) {
	m.productsUpdated.Unsubscribe(token)
}

// FetchProducts transitions to Loading synchronously, then fetches the
// catalog on a background goroutine.
//
// On success the products and the filtered view are both replaced with the
// fetched list, which effectively clears any active search filter, and the
// machine emits the Success state followed by a products-updated event. On
// failure the state carries the mapped user-facing message and the previous
// lists are left untouched. Catalog errors never escape the machine.
func (m *Machine) FetchProducts(ctx context.Context) {
	m.mu.Lock()
	m.state = Loading
	m.mu.Unlock()
	m.stateChanged.Emit(Loading)

	go func() {
		fetched, err := m.client.FetchProducts(ctx)
		if err != nil {
			msg := errorMessage(err)
			m.lg.Warn("Catalog fetch failed", zap.Error(err), zap.String("message", msg))

			state := ErrorState(msg)
			m.mu.Lock()
			m.state = state
			m.mu.Unlock()
			m.stateChanged.Emit(state)
			return
		}

		m.mu.Lock()
		m.products = fetched
		m.filtered = fetched
		m.state = Success
		snap := m.snapshotLocked()
		m.mu.Unlock()

		m.lg.Debug("Catalog fetched", zap.Int("products", len(fetched)))
		m.stateChanged.Emit(Success)
		m.productsUpdated.Emit(snap)
	}()
}

// FilterProducts applies searchText to the product titles, case-folded.
// An empty term resets the filtered view to the full list. The loading state
// and the unfiltered list are never touched.
func (m *Machine) FilterProducts(searchText string) {
	m.mu.Lock()
	if searchText == "" {
		m.filtered = m.products
		m.searching = false
	} else {
		m.searching = true
		needle := m.fold.String(searchText)
		filtered := make([]product.Product, 0, len(m.products))
		for _, p := range m.products {
			if strings.Contains(m.fold.String(p.Title), needle) {
				filtered = append(filtered, p)
			}
		}
		m.filtered = filtered
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.productsUpdated.Emit(snap)
}

// State returns the current loading state.
func (m *Machine) State() LoadingState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Products returns a copy of the full unfiltered list.
func (m *Machine) Products() []product.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyProducts(m.products)
}

// FilteredProducts returns a copy of the filtered view.
func (m *Machine) FilteredProducts() []product.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyProducts(m.filtered)
}

// IsSearching reports whether the last applied search term was non-empty.
func (m *Machine) IsSearching() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.searching
}

// CurrentSnapshot returns a consistent copy of the whole session state.
func (m *Machine) CurrentSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Machine) snapshotLocked() Snapshot {
	return Snapshot{
		Products:  copyProducts(m.products),
		Filtered:  copyProducts(m.filtered),
		Searching: m.searching,
	}
}

func copyProducts(in []product.Product) []product.Product {
	out := make([]product.Product, len(in))
	copy(out, in)
	return out
}
