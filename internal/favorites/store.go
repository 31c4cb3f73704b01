// Package favorites owns the favorited-products aggregate.
//
// The Store keeps favorites in memory and mirrors every change into durable
// key-value storage as a whole re-serialized list. Persistence is best
// effort: encode and storage failures are logged and swallowed, they never
// fail a mutation. One shared instance per process.
package favorites

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/storekit/shopcore/internal/domain/product"
	"github.com/storekit/shopcore/internal/kv"
	"github.com/storekit/shopcore/pkg/emitter"
)

// StorageKey is the fixed key the encoded favorites list is stored under.
const StorageKey = "favorites"

// Store holds the favorited products, unique by product ID, in first-add
// order.
type Store struct {
	kv kv.Store
	lg *zap.Logger

	mu      sync.RWMutex
	items   []product.Product
	changed emitter.Emitter[[]product.Product]
}

// NewStore creates an empty favorites store persisting through storage.
// Call Load before reads if favorites from prior sessions should be visible.
func NewStore(storage kv.Store, lg *zap.Logger) *Store {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Store{kv: storage, lg: lg}
}

// Subscribe registers fn to run synchronously after every actual change.
func (s *Store) Subscribe(fn func([]product.Product)) emitter.Token {
	return s.changed.Subscribe(fn)
}

// Unsubscribe removes a subscription registered with Subscribe.
func (s *Store) Unsubscribe(token emitter.Token) {
	s.changed.Unsubscribe(token)
}

// Load replaces the in-memory list with the persisted one. A missing key or
// an undecodable value leaves the list empty; neither is an error.
func (s *Store) Load(ctx context.Context) {
	data, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.lg.Warn("Loading favorites failed", zap.Error(err))
		}
		return
	}

	items, err := product.DecodeList(data)
	if err != nil {
		s.lg.Warn("Decoding stored favorites failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// Add appends p to the favorites unless a product with the same ID is
// already present. Only an actual change persists and notifies.
func (s *Store) Add(ctx context.Context, p product.Product) {
	s.mu.Lock()
	if s.containsLocked(p.ID) {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items, p)
	s.mu.Unlock()

	s.persist(ctx)
	s.notify()
}

// Remove deletes the product with the given ID. It persists and notifies
// even when nothing was removed.
func (s *Store) Remove(ctx context.Context, productID int64) {
	s.mu.Lock()
	for i, item := range s.items {
		if item.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.persist(ctx)
	s.notify()
}

// Toggle removes p when it is currently favorited and adds it otherwise.
func (s *Store) Toggle(ctx context.Context, p product.Product) {
	if s.IsFavorite(p.ID) {
		s.Remove(ctx, p.ID)
	} else {
		s.Add(ctx, p)
	}
}

// IsFavorite reports whether a product with the given ID is favorited.
func (s *Store) IsFavorite(productID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.containsLocked(productID)
}

// Clear empties the favorites, persists and notifies.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.persist(ctx)
	s.notify()
}

// Favorites returns a copy of the favorited products in first-add order.
func (s *Store) Favorites() []product.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]product.Product, len(s.items))
	copy(items, s.items)
	return items
}

// Count returns the number of favorited products.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) containsLocked(productID int64) bool {
	for _, item := range s.items {
		if item.ID == productID {
			return true
		}
	}
	return false
}

// persist re-serializes the whole list and overwrites the stored value.
// Failures are reported through the logger and otherwise swallowed.
func (s *Store) persist(ctx context.Context) {
	if err := s.kv.Set(ctx, StorageKey, product.EncodeList(s.Favorites())); err != nil {
		s.lg.Warn("Persisting favorites failed", zap.Error(err))
	}
}

func (s *Store) notify() {
	s.changed.Emit(s.Favorites())
}
