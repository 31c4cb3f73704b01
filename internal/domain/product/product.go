package product

import (
	"github.com/shopspring/decimal"
)

// Product represents a catalog item as served by the remote storefront API.
// Products are immutable once fetched; identity is the catalog-assigned ID.
type Product struct {
	ID          int64
	Title       string
	Price       decimal.Decimal
	Description string
	Category    string
	Image       string
}
