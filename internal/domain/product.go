package domain

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/spf13/cast"
)

// Recognized product record keys
const (
	FieldName         = "name"
	FieldBrand        = "brand"
	FieldPrice        = "price"
	FieldDescription  = "description"
	FieldImageURL     = "image_url"
	FieldCategory     = "category"
	FieldColor        = "color"
	FieldStyleTags    = "style_tags"
	FieldOccasionTags = "occasion_tags"
)

// Product is a single catalog record.
// It is kept as the decoded JSON object so that columns the stylist does not
// know about survive a rewrite untouched. Missing keys read as "" or an empty
// tag list.
type Product map[string]any

// Name returns the product display name
func (p Product) Name() string { return p.field(FieldName) }

// Brand returns the product brand
func (p Product) Brand() string { return p.field(FieldBrand) }

// Price returns the price as a display string; it is never parsed
func (p Product) Price() string { return p.field(FieldPrice) }

// Description returns the free-text description
func (p Product) Description() string { return p.field(FieldDescription) }

// ImageURL returns the product image location
func (p Product) ImageURL() string { return p.field(FieldImageURL) }

// Category returns the product category (e.g. "Tops", "Leggings")
func (p Product) Category() string { return p.field(FieldCategory) }

// Color returns the product color
func (p Product) Color() string { return p.field(FieldColor) }

// StyleTags returns the style tags attached by enrichment
func (p Product) StyleTags() []string { return p.tags(FieldStyleTags) }

// OccasionTags returns the occasion tags attached by enrichment
func (p Product) OccasionTags() []string { return p.tags(FieldOccasionTags) }

// WithTags returns a copy of the product with both tag lists overwritten.
// The receiver is left untouched.
func (p Product) WithTags(tags Tags) Product {
	out := make(Product, len(p)+2)
	maps.Copy(out, p)
	out[FieldStyleTags] = append([]string{}, tags.StyleTags...)
	out[FieldOccasionTags] = append([]string{}, tags.OccasionTags...)
	return out
}

// Fingerprint returns a canonical encoding of the whole record.
// Two products are structurally equal when their fingerprints are equal.
func (p Product) Fingerprint() string {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(p))
	}
	return string(data)
}

func (p Product) field(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	return cast.ToString(v)
}

func (p Product) tags(key string) []string {
	v, ok := p[key]
	if !ok || v == nil {
		return nil
	}
	return cast.ToStringSlice(v)
}

// Tags is the enrichment payload merged into a product
type Tags struct {
	StyleTags    []string `json:"style_tags"`
	OccasionTags []string `json:"occasion_tags"`
}

// DefaultTags is substituted whenever tag generation fails
func DefaultTags() Tags {
	return Tags{
		StyleTags:    []string{"casual"},
		OccasionTags: []string{"everyday"},
	}
}
