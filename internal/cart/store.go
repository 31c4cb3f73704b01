// Package cart owns the in-memory shopping cart aggregate.
//
// The Store is the single source of truth for cart contents. There is one
// shared instance per process, created at startup and passed to every
// consumer. Every public mutator notifies subscribers synchronously after the
// mutation is committed, including mutators that turned out to be no-ops.
package cart

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storekit/shopcore/internal/domain/product"
	"github.com/storekit/shopcore/pkg/emitter"
)

// Item is a single cart line: one product with a quantity.
// The item ID is generated at creation and is distinct from the product ID,
// because re-adding a product mutates the existing line instead of creating
// a new one.
type Item struct {
	ID       string
	Product  product.Product
	Quantity int
}

// TotalPrice is the line total, price times quantity.
func (i Item) TotalPrice() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Snapshot is the notification payload: a consistent view of the cart taken
// right after a mutation committed.
type Snapshot struct {
	Items      []Item
	TotalPrice decimal.Decimal
	ItemCount  int
}

// Store holds the ordered cart lines. Lines keep their first-add position;
// at most one line exists per product ID.
type Store struct {
	mu      sync.RWMutex
	items   []Item
	changed emitter.Emitter[Snapshot]
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{}
}

// Subscribe registers fn to run synchronously after every mutation.
func (s *Store) Subscribe(fn func(Snapshot)) emitter.Token {
	return s.changed.Subscribe(fn)
}

// Unsubscribe removes a subscription registered with Subscribe.
func (s *Store) Unsubscribe(token emitter.Token) {
	s.changed.Unsubscribe(token)
}

// Add puts quantity units of p into the cart. An existing line for the same
// product ID has its quantity incremented in place, preserving its position.
func (s *Store) Add(p product.Product, quantity int) {
	s.mu.Lock()
	if i := s.indexOfProduct(p.ID); i >= 0 {
		s.items[i].Quantity += quantity
	} else {
		s.items = append(s.items, Item{
			ID:       uuid.New().String(),
			Product:  p,
			Quantity: quantity,
		})
	}
	s.mu.Unlock()

	s.notify()
}

// Remove deletes the line with the given item ID. Removing an unknown ID is
// a no-op, but still notifies.
func (s *Store) Remove(itemID string) {
	s.mu.Lock()
	if i := s.indexOfItem(itemID); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	s.mu.Unlock()

	s.notify()
}

// UpdateQuantity sets the quantity of the line with the given item ID.
// A quantity of zero or less removes the line instead; quantities below one
// are never stored. Unknown IDs are a no-op, but still notify.
func (s *Store) UpdateQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		s.Remove(itemID)
		return
	}

	s.mu.Lock()
	if i := s.indexOfItem(itemID); i >= 0 {
		s.items[i].Quantity = quantity
	}
	s.mu.Unlock()

	s.notify()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.notify()
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemsLocked()
}

// TotalPrice is the sum of all line totals, recomputed on every call.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalLocked()
}

// ItemCount is the sum of all line quantities.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countLocked()
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items) == 0
}

func (s *Store) notify() {
	s.mu.RLock()
	snap := Snapshot{
		Items:      s.itemsLocked(),
		TotalPrice: s.totalLocked(),
		ItemCount:  s.countLocked(),
	}
	s.mu.RUnlock()

	s.changed.Emit(snap)
}

func (s *Store) itemsLocked() []Item {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

func (s *Store) countLocked() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) indexOfProduct(productID int64) int {
	for i, item := range s.items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) indexOfItem(itemID string) int {
	for i, item := range s.items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}
