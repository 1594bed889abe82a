package usecase

import (
	"github.com/stylist/backend/internal/domain"
)

// OutfitSlots are the category roles filled, in order, when assembling an outfit
var OutfitSlots = []string{"tops", "bottoms", "accessories", "shoes", "outerwear"}

// Outfit defaults
const (
	DefaultOutfitStyle    = "casual"
	DefaultOutfitOccasion = "everyday"
	DefaultOutfitSize     = 3
)

// OutfitRequest describes the outfit to assemble
type OutfitRequest struct {
	Style    string
	Occasion string
	MaxItems int
}

// DefaultOutfitRequest returns a casual everyday outfit of three items
func DefaultOutfitRequest() OutfitRequest {
	return OutfitRequest{
		Style:    DefaultOutfitStyle,
		Occasion: DefaultOutfitOccasion,
		MaxItems: DefaultOutfitSize,
	}
}

// AssembleOutfit picks one item per slot matching style, occasion and the slot
// category, then backfills with style/occasion matches from any category.
// The result holds at most req.MaxItems structurally distinct items and may be
// shorter, or empty when nothing matches.
func (r *Recommender) AssembleOutfit(catalog *domain.Catalog, req OutfitRequest) []domain.Product {
	// The outfit never outgrows the slots plus the catalog, whatever was requested
	outfit := make([]domain.Product, 0, min(max(req.MaxItems, 0), len(OutfitSlots)+catalog.Len()))
	seen := make(map[string]bool)

	add := func(p domain.Product) bool {
		key := p.Fingerprint()
		if seen[key] {
			return false
		}
		seen[key] = true
		outfit = append(outfit, p)
		return true
	}

	for _, slot := range OutfitSlots {
		if len(outfit) >= req.MaxItems {
			break
		}
		items := r.Recommend(catalog, RecommendationRequest{
			Styles:     []string{req.Style},
			Occasions:  []string{req.Occasion},
			Categories: []string{slot},
			MaxItems:   1,
		})
		if len(items) > 0 {
			add(items[0])
		}
	}

	if len(outfit) >= req.MaxItems {
		return outfit
	}

	// Backfill from any category; structural duplicates are skipped, not counted
	candidates := r.Recommend(catalog, RecommendationRequest{
		Styles:    []string{req.Style},
		Occasions: []string{req.Occasion},
		MaxItems:  catalog.Len(),
	})
	for _, p := range candidates {
		if len(outfit) >= req.MaxItems {
			break
		}
		add(p)
	}

	return outfit
}
