package domain

import (
	"fmt"
	"strings"
)

// Catalog is an immutable, ordered snapshot of product records.
// A record's position is its stable identity for the lifetime of the snapshot.
type Catalog struct {
	products []Product
}

// NewCatalog creates a catalog snapshot from the given records
func NewCatalog(products []Product) *Catalog {
	owned := make([]Product, len(products))
	copy(owned, products)
	return &Catalog{products: owned}
}

// EmptyCatalog returns a catalog without records
func EmptyCatalog() *Catalog {
	return &Catalog{}
}

// Len returns the number of records. A nil catalog is empty.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

// At returns the record at index i
func (c *Catalog) At(i int) Product {
	return c.products[i]
}

// Products returns the records in catalog order.
// The returned slice is a fresh copy; callers may reorder it freely.
func (c *Catalog) Products() []Product {
	if c == nil {
		return []Product{}
	}
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Select returns the records at the given indices, in the order given
func (c *Catalog) Select(indices []int) []Product {
	out := make([]Product, 0, len(indices))
	for _, i := range indices {
		out = append(out, c.products[i])
	}
	return out
}

// Facet is a dimension used both for filtering and for enumerating choices
type Facet string

const (
	FacetStyle    Facet = "style"
	FacetOccasion Facet = "occasion"
	FacetCategory Facet = "category"
	FacetBrand    Facet = "brand"
)

// Facets lists every facet in presentation order
var Facets = []Facet{FacetStyle, FacetOccasion, FacetCategory, FacetBrand}

// ParseFacet converts a user supplied facet name (case-insensitive)
func ParseFacet(s string) (Facet, error) {
	f := Facet(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Facets {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFacet, s)
}
