package usecase

import (
	"sort"

	"github.com/stylist/backend/internal/domain"
)

// FacetValues lists the distinct values of every facet present in a catalog
type FacetValues struct {
	Styles     []string `json:"styles"`
	Occasions  []string `json:"occasions"`
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
}

// AvailableFacets enumerates all four facets
func AvailableFacets(catalog *domain.Catalog) FacetValues {
	return FacetValues{
		Styles:     AvailableStyles(catalog),
		Occasions:  AvailableOccasions(catalog),
		Categories: AvailableCategories(catalog),
		Brands:     AvailableBrands(catalog),
	}
}

// AvailableStyles returns the sorted distinct style tags
func AvailableStyles(catalog *domain.Catalog) []string {
	return collect(catalog, func(p domain.Product) []string { return p.StyleTags() })
}

// AvailableOccasions returns the sorted distinct occasion tags
func AvailableOccasions(catalog *domain.Catalog) []string {
	return collect(catalog, func(p domain.Product) []string { return p.OccasionTags() })
}

// AvailableCategories returns the sorted distinct non-empty categories
func AvailableCategories(catalog *domain.Catalog) []string {
	return collect(catalog, func(p domain.Product) []string { return nonEmpty(p.Category()) })
}

// AvailableBrands returns the sorted distinct non-empty brands
func AvailableBrands(catalog *domain.Catalog) []string {
	return collect(catalog, func(p domain.Product) []string { return nonEmpty(p.Brand()) })
}

// AvailableValues enumerates a single facet
func AvailableValues(catalog *domain.Catalog, facet domain.Facet) ([]string, error) {
	switch facet {
	case domain.FacetStyle:
		return AvailableStyles(catalog), nil
	case domain.FacetOccasion:
		return AvailableOccasions(catalog), nil
	case domain.FacetCategory:
		return AvailableCategories(catalog), nil
	case domain.FacetBrand:
		return AvailableBrands(catalog), nil
	}
	_, err := domain.ParseFacet(string(facet))
	return nil, err
}

func collect(catalog *domain.Catalog, values func(domain.Product) []string) []string {
	set := make(map[string]struct{})
	for i := 0; i < catalog.Len(); i++ {
		for _, v := range values(catalog.At(i)) {
			set[v] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func nonEmpty(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}
