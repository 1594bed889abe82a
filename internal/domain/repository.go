package domain

import "context"

// TextGenerator is the boundary to the external text-generation service.
// Implementations never return an error directly; failures are reported
// through GenerationResult.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) GenerationResult
}

// CatalogSource produces a fresh catalog snapshot
type CatalogSource interface {
	Load(ctx context.Context) (*Catalog, error)
}

// CatalogFiles reads and writes whole catalog files
type CatalogFiles interface {
	Read(path string) ([]Product, error)
	Write(path string, products []Product) error
}

// SheetExporter fetches a spreadsheet tab as product rows
type SheetExporter interface {
	Export(ctx context.Context, sheetID, gid string) ([]Product, error)
}
