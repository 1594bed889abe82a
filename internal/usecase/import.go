package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/stylist/backend/internal/domain"
)

// ImportConfig holds configuration for the import service
type ImportConfig struct {
	OutputPath string
	SheetID    string
	SheetGID   string
}

// ImportResult summarizes an import run
type ImportResult struct {
	Count      int      `json:"count"`
	Output     string   `json:"output"`
	Keys       []string `json:"keys"`
	UsedSample bool     `json:"usedSample"`
}

// ImportService converts tabular product data into the catalog file
type ImportService struct {
	files      domain.CatalogFiles
	exporter   domain.SheetExporter
	outputPath string
	sheetID    string
	sheetGID   string
}

// NewImportService creates a new import service
func NewImportService(files domain.CatalogFiles, exporter domain.SheetExporter, config ImportConfig) *ImportService {
	return &ImportService{
		files:      files,
		exporter:   exporter,
		outputPath: config.OutputPath,
		sheetID:    config.SheetID,
		sheetGID:   config.SheetGID,
	}
}

// ImportRows writes already parsed rows (e.g. from a local CSV file) to the catalog file
func (s *ImportService) ImportRows(rows []domain.Product) (ImportResult, error) {
	if err := s.files.Write(s.outputPath, rows); err != nil {
		return ImportResult{}, fmt.Errorf("failed to write catalog: %w", err)
	}

	result := ImportResult{
		Count:  len(rows),
		Output: s.outputPath,
		Keys:   sampleKeys(rows),
	}
	log.Info().
		Str("component", "import").
		Int("products", result.Count).
		Str("output", result.Output).
		Strs("keys", result.Keys).
		Msg("catalog imported")
	return result, nil
}

// ImportSheet fetches the configured spreadsheet tab and writes it as the catalog.
// When the export cannot be fetched a small sample catalog is written instead so
// the stylist stays usable; the returned result reports UsedSample.
func (s *ImportService) ImportSheet(ctx context.Context) (ImportResult, error) {
	rows, err := s.exporter.Export(ctx, s.sheetID, s.sheetGID)
	if err == nil {
		return s.ImportRows(rows)
	}

	log.Warn().
		Str("component", "import").
		Str("sheet_id", s.sheetID).
		Err(err).
		Msg("spreadsheet export failed, make sure the sheet is publicly accessible; writing sample catalog")

	result, writeErr := s.ImportRows(SampleProducts())
	if writeErr != nil {
		return ImportResult{}, writeErr
	}
	result.UsedSample = true
	return result, nil
}

// SampleProducts is the starter catalog written when no spreadsheet is reachable
func SampleProducts() []domain.Product {
	return []domain.Product{
		{
			domain.FieldName:        "Airlift High-Waist Legging",
			domain.FieldBrand:       "Alo Yoga",
			domain.FieldPrice:       "$88",
			domain.FieldDescription: "Designed for movement and studio flow, with moisture-wicking, ultra-smooth fabric.",
			domain.FieldImageURL:    "https://example.com/image1.jpg",
			domain.FieldCategory:    "Leggings",
			domain.FieldColor:       "Black",
		},
		{
			domain.FieldName:        "Align Tank Top",
			domain.FieldBrand:       "Lululemon",
			domain.FieldPrice:       "$58",
			domain.FieldDescription: "Buttery-soft Nulu fabric with built-in bra for light support.",
			domain.FieldImageURL:    "https://example.com/image2.jpg",
			domain.FieldCategory:    "Tops",
			domain.FieldColor:       "White",
		},
		{
			domain.FieldName:        "Everywhere Belt Bag",
			domain.FieldBrand:       "Lululemon",
			domain.FieldPrice:       "$38",
			domain.FieldDescription: "Hands-free storage for your essentials with adjustable strap.",
			domain.FieldImageURL:    "https://example.com/image3.jpg",
			domain.FieldCategory:    "Accessories",
			domain.FieldColor:       "Black",
		},
	}
}

func sampleKeys(rows []domain.Product) []string {
	if len(rows) == 0 {
		return []string{}
	}
	keys := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
