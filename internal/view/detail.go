package view

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/storekit/shopcore/internal/domain/product"
)

var titleCaser = cases.Title(language.English)

// ProductDetail formats one product for a detail screen. It is a pure
// projection; the underlying product never changes.
type ProductDetail struct {
	product product.Product
}

// NewProductDetail creates a detail projection for p.
func NewProductDetail(p product.Product) ProductDetail {
	return ProductDetail{product: p}
}

// Title returns the product title.
func (d ProductDetail) Title() string {
	return d.product.Title
}

// Price returns the price prefixed with a dollar sign, e.g. "$999.99".
func (d ProductDetail) Price() string {
	return "$" + d.product.Price.String()
}

// Description returns the product description.
func (d ProductDetail) Description() string {
	return d.product.Description
}

// ImageURL returns the product image URL.
func (d ProductDetail) ImageURL() string {
	return d.product.Image
}

// Category returns the category in title case, e.g. "Electronics".
func (d ProductDetail) Category() string {
	return titleCaser.String(d.product.Category)
}
