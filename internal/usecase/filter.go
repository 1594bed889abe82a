package usecase

import (
	"strings"

	"github.com/stylist/backend/internal/domain"
)

// matchFunc reports whether a product satisfies any of the lowercased values
type matchFunc func(p domain.Product, values []string) bool

// FilterByStyle returns the products carrying at least one requested style tag.
// Tag comparison is case-insensitive equality. An empty request returns the whole catalog.
func FilterByStyle(catalog *domain.Catalog, styles []string) []domain.Product {
	return filterProducts(catalog, domain.FacetStyle, styles)
}

// FilterByOccasion returns the products carrying at least one requested occasion tag
func FilterByOccasion(catalog *domain.Catalog, occasions []string) []domain.Product {
	return filterProducts(catalog, domain.FacetOccasion, occasions)
}

// FilterByCategory returns the products whose category contains any requested value.
// Matching is a case-insensitive substring test so "legging" finds "Leggings".
func FilterByCategory(catalog *domain.Catalog, categories []string) []domain.Product {
	return filterProducts(catalog, domain.FacetCategory, categories)
}

// FilterByBrand returns the products whose brand contains any requested value
func FilterByBrand(catalog *domain.Catalog, brands []string) []domain.Product {
	return filterProducts(catalog, domain.FacetBrand, brands)
}

// Filter applies the filter for a single facet
func Filter(catalog *domain.Catalog, facet domain.Facet, values []string) ([]domain.Product, error) {
	if _, err := domain.ParseFacet(string(facet)); err != nil {
		return nil, err
	}
	return filterProducts(catalog, facet, values), nil
}

func filterProducts(catalog *domain.Catalog, facet domain.Facet, values []string) []domain.Product {
	if len(values) == 0 {
		return catalog.Products()
	}
	return catalog.Select(matchingIndices(catalog, facet, values))
}

// matchingIndices runs one filter pass over the full catalog and returns the
// positions of the matching records in catalog order
func matchingIndices(catalog *domain.Catalog, facet domain.Facet, values []string) []int {
	match := matcherFor(facet)
	wanted := lowerAll(values)

	indices := make([]int, 0, catalog.Len())
	for i := 0; i < catalog.Len(); i++ {
		if match(catalog.At(i), wanted) {
			indices = append(indices, i)
		}
	}
	return indices
}

func matcherFor(facet domain.Facet) matchFunc {
	switch facet {
	case domain.FacetStyle:
		return func(p domain.Product, values []string) bool {
			return anyTagEquals(p.StyleTags(), values)
		}
	case domain.FacetOccasion:
		return func(p domain.Product, values []string) bool {
			return anyTagEquals(p.OccasionTags(), values)
		}
	case domain.FacetCategory:
		return func(p domain.Product, values []string) bool {
			return anyContained(p.Category(), values)
		}
	case domain.FacetBrand:
		return func(p domain.Product, values []string) bool {
			return anyContained(p.Brand(), values)
		}
	default:
		return func(domain.Product, []string) bool { return false }
	}
}

// anyTagEquals reports whether any tag equals any value, ignoring case.
// values must already be lowercased.
func anyTagEquals(tags []string, values []string) bool {
	for _, tag := range tags {
		tag = strings.ToLower(tag)
		for _, v := range values {
			if tag == v {
				return true
			}
		}
	}
	return false
}

// anyContained reports whether any value is a substring of field, ignoring case.
// values must already be lowercased.
func anyContained(field string, values []string) bool {
	field = strings.ToLower(field)
	for _, v := range values {
		if strings.Contains(field, v) {
			return true
		}
	}
	return false
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
