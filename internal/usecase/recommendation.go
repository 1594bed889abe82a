package usecase

import (
	"math/rand"

	"github.com/stylist/backend/internal/domain"
)

// DefaultMaxRecommendations is used when a caller does not choose a size
const DefaultMaxRecommendations = 6

// RecommendationRequest holds the per-facet requests. Empty lists are inactive.
type RecommendationRequest struct {
	Styles     []string
	Occasions  []string
	Categories []string
	Brands     []string
	MaxItems   int
}

func (r RecommendationRequest) values(facet domain.Facet) []string {
	switch facet {
	case domain.FacetStyle:
		return r.Styles
	case domain.FacetOccasion:
		return r.Occasions
	case domain.FacetCategory:
		return r.Categories
	case domain.FacetBrand:
		return r.Brands
	}
	return nil
}

// Recommender composes filter results into randomized recommendations and outfits
type Recommender struct {
	shuffle func(n int, swap func(i, j int))
}

// NewRecommender creates a recommender backed by the process-global random source
func NewRecommender() *Recommender {
	return &Recommender{shuffle: rand.Shuffle}
}

// Candidates returns every record satisfying all active facets, in catalog order.
// Each active facet is an independent pass over the full catalog; the result is
// the intersection of those passes. With no active facet the whole catalog is returned.
func (r *Recommender) Candidates(catalog *domain.Catalog, req RecommendationRequest) []domain.Product {
	return catalog.Select(r.candidateIndices(catalog, req))
}

// Recommend shuffles the candidate set and truncates it to req.MaxItems
func (r *Recommender) Recommend(catalog *domain.Catalog, req RecommendationRequest) []domain.Product {
	if req.MaxItems <= 0 {
		return []domain.Product{}
	}

	indices := r.candidateIndices(catalog, req)
	r.shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	if len(indices) > req.MaxItems {
		indices = indices[:req.MaxItems]
	}
	return catalog.Select(indices)
}

func (r *Recommender) candidateIndices(catalog *domain.Catalog, req RecommendationRequest) []int {
	// hits[i] counts how many active passes record i survived
	hits := make([]int, catalog.Len())
	active := 0
	for _, facet := range domain.Facets {
		values := req.values(facet)
		if len(values) == 0 {
			continue
		}
		active++
		for _, i := range matchingIndices(catalog, facet, values) {
			hits[i]++
		}
	}

	indices := make([]int, 0, catalog.Len())
	for i, n := range hits {
		if n == active {
			indices = append(indices, i)
		}
	}
	return indices
}
