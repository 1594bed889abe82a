package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/stylist/backend/internal/domain"
	"github.com/stylist/backend/internal/usecase"
)

const demoDescriptionWidth = 60

// runDemo prints a tour of the catalog: facets, two sample filters and an outfit
func runDemo(w io.Writer, catalog *domain.Catalog, recommender *usecase.Recommender) {
	fmt.Fprintln(w, "AI Fashion Stylist Demo")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Loaded %d products\n\n", catalog.Len())

	facets := usecase.AvailableFacets(catalog)
	printFacet(w, "Available styles", facets.Styles, "No styles available (run `stylist enrich` first)")
	printFacet(w, "Available occasions", facets.Occasions, "No occasions available (run `stylist enrich` first)")
	printFacet(w, "Available brands", facets.Brands, "")
	printFacet(w, "Available categories", facets.Categories, "")

	fmt.Fprintln(w, "Sample recommendations:")
	fmt.Fprintln(w, strings.Repeat("-", 30))

	lululemon := usecase.FilterByBrand(catalog, []string{"Lululemon"})
	fmt.Fprintf(w, "Lululemon items: %d\n", len(lululemon))
	for _, p := range firstN(lululemon, 2) {
		fmt.Fprintf(w, "   - %s - %s\n", p.Name(), p.Price())
	}
	fmt.Fprintln(w)

	leggings := usecase.FilterByCategory(catalog, []string{"Leggings"})
	fmt.Fprintf(w, "Leggings: %d\n", len(leggings))
	for _, p := range firstN(leggings, 3) {
		fmt.Fprintf(w, "   - %s by %s - %s\n", p.Name(), p.Brand(), p.Price())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Sample outfit:")
	fmt.Fprintln(w, strings.Repeat("-", 30))

	outfit := recommender.AssembleOutfit(catalog, usecase.DefaultOutfitRequest())
	if len(outfit) == 0 {
		fmt.Fprintln(w, "   No outfit could be created with current data")
	} else {
		fmt.Fprintln(w, "Your outfit for today:")
		for i, p := range outfit {
			fmt.Fprintf(w, "   %d. %s by %s - %s\n", i+1, p.Name(), p.Brand(), p.Price())
			fmt.Fprintf(w, "      %s...\n", truncate(p.Description(), demoDescriptionWidth))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "To use the full API, run: stylist serve")
}

func printFacet(w io.Writer, title string, values []string, empty string) {
	fmt.Fprintf(w, "%s:\n", title)
	if len(values) == 0 && empty != "" {
		fmt.Fprintf(w, "   %s\n\n", empty)
		return
	}
	fmt.Fprintf(w, "   %s\n\n", strings.Join(values, ", "))
}

func firstN(products []domain.Product, n int) []domain.Product {
	if len(products) > n {
		return products[:n]
	}
	return products
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width])
	}
	return s
}
