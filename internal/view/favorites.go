package view

import (
	"context"

	"github.com/storekit/shopcore/internal/domain/product"
	"github.com/storekit/shopcore/internal/favorites"
	"github.com/storekit/shopcore/pkg/emitter"
)

// FavoritesView projects the favorites store for a favorites screen.
type FavoritesView struct {
	store *favorites.Store
	token emitter.Token
}

// NewFavoritesView creates an adapter over store. onUpdate, when non-nil,
// runs after every favorites change; call Close to stop observing.
func NewFavoritesView(store *favorites.Store, onUpdate func()) *FavoritesView {
	v := &FavoritesView{store: store}
	if onUpdate != nil {
		v.token = store.Subscribe(func([]product.Product) { onUpdate() })
	}
	return v
}

// Favorites returns the favorited products in display order.
func (v *FavoritesView) Favorites() []product.Product {
	return v.store.Favorites()
}

// Count returns the number of favorited products.
func (v *FavoritesView) Count() int {
	return v.store.Count()
}

// IsEmpty reports whether no products are favorited.
func (v *FavoritesView) IsEmpty() bool {
	return v.store.Count() == 0
}

// RemoveAt unfavorites the product at the given display index.
// Out-of-range indices are ignored.
func (v *FavoritesView) RemoveAt(ctx context.Context, index int) {
	items := v.store.Favorites()
	if index < 0 || index >= len(items) {
		return
	}
	v.store.Remove(ctx, items[index].ID)
}

// ClearAll unfavorites everything.
func (v *FavoritesView) ClearAll(ctx context.Context) {
	v.store.Clear(ctx)
}

// Close stops observing the store.
func (v *FavoritesView) Close() {
	if v.token != 0 {
		v.store.Unsubscribe(v.token)
		v.token = 0
	}
}
