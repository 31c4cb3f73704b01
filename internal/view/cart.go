// Package view provides thin read-only projections over the stores plus
// user-intent forwarding, the contract screens render from. Adapters never
// hold state of their own; every read goes back to the owning store.
package view

import (
	"github.com/storekit/shopcore/internal/cart"
	"github.com/storekit/shopcore/pkg/emitter"
)

// CartView projects the cart store for a cart screen and forwards
// index-based user intents back to it.
type CartView struct {
	store *cart.Store
	token emitter.Token
}

// NewCartView creates an adapter over store. onUpdate, when non-nil, runs
// after every cart mutation; call Close to stop observing.
func NewCartView(store *cart.Store, onUpdate func()) *CartView {
	v := &CartView{store: store}
	if onUpdate != nil {
		v.token = store.Subscribe(func(cart.Snapshot) { onUpdate() })
	}
	return v
}

// Items returns the cart lines in display order.
func (v *CartView) Items() []cart.Item {
	return v.store.Items()
}

// TotalPrice returns the cart total formatted for display, e.g. "$42.50".
func (v *CartView) TotalPrice() string {
	return "$" + v.store.TotalPrice().StringFixed(2)
}

// ItemCount returns the summed quantity across all lines.
func (v *CartView) ItemCount() int {
	return v.store.ItemCount()
}

// IsEmpty reports whether there is nothing in the cart.
func (v *CartView) IsEmpty() bool {
	return v.store.IsEmpty()
}

// RemoveItem removes the line at the given display index.
// Out-of-range indices are ignored.
func (v *CartView) RemoveItem(index int) {
	items := v.store.Items()
	if index < 0 || index >= len(items) {
		return
	}
	v.store.Remove(items[index].ID)
}

// UpdateQuantity sets the quantity of the line at the given display index.
// Out-of-range indices are ignored.
func (v *CartView) UpdateQuantity(index, quantity int) {
	items := v.store.Items()
	if index < 0 || index >= len(items) {
		return
	}
	v.store.UpdateQuantity(items[index].ID, quantity)
}

// ClearCart empties the cart.
func (v *CartView) ClearCart() {
	v.store.Clear()
}

// Close stops observing the store.
func (v *CartView) Close() {
	if v.token != 0 {
		v.store.Unsubscribe(v.token)
		v.token = 0
	}
}
