package usecase

import (
	"context"
	"sync"

	"github.com/stylist/backend/internal/domain"
)

// MockTextGenerator is a mock implementation of domain.TextGenerator
type MockTextGenerator struct {
	mu        sync.Mutex
	results   []domain.GenerationResult
	requests  []domain.GenerationRequest
	fallback  domain.GenerationResult
	callCount int
}

// NewMockTextGenerator returns a generator answering every call with result
func NewMockTextGenerator(result domain.GenerationResult) *MockTextGenerator {
	return &MockTextGenerator{fallback: result}
}

// Queue makes the next calls return the given results in order
func (m *MockTextGenerator) Queue(results ...domain.GenerationResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, results...)
}

func (m *MockTextGenerator) Generate(ctx context.Context, req domain.GenerationRequest) domain.GenerationResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	m.requests = append(m.requests, req)
	if len(m.results) > 0 {
		next := m.results[0]
		m.results = m.results[1:]
		return next
	}
	return m.fallback
}

// MockCatalogFiles is an in-memory implementation of domain.CatalogFiles
type MockCatalogFiles struct {
	files    map[string][]domain.Product
	readErr  error
	writeErr error
}

func NewMockCatalogFiles() *MockCatalogFiles {
	return &MockCatalogFiles{files: make(map[string][]domain.Product)}
}

func (m *MockCatalogFiles) Read(path string) ([]domain.Product, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	products, ok := m.files[path]
	if !ok {
		return nil, domain.ErrCatalogNotFound
	}
	return products, nil
}

func (m *MockCatalogFiles) Write(path string, products []domain.Product) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[path] = products
	return nil
}

// MockSheetExporter is a mock implementation of domain.SheetExporter
type MockSheetExporter struct {
	rows     []domain.Product
	err      error
	gotSheet string
	gotGID   string
}

func (m *MockSheetExporter) Export(ctx context.Context, sheetID, gid string) ([]domain.Product, error) {
	m.gotSheet = sheetID
	m.gotGID = gid
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

// MockCatalogSource is a mock implementation of domain.CatalogSource
type MockCatalogSource struct {
	catalogs []*domain.Catalog
	err      error
	loads    int
}

func (m *MockCatalogSource) Load(ctx context.Context) (*domain.Catalog, error) {
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.catalogs) == 0 {
		return domain.EmptyCatalog(), nil
	}
	next := m.catalogs[0]
	if len(m.catalogs) > 1 {
		m.catalogs = m.catalogs[1:]
	}
	return next, nil
}

// identityShuffle keeps candidates in catalog order
func identityShuffle(int, func(i, j int)) {}

// reverseShuffle reverses candidate order
func reverseShuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

func newTestRecommender(shuffle func(n int, swap func(i, j int))) *Recommender {
	return &Recommender{shuffle: shuffle}
}

// scenarioCatalog is the two-record gym catalog
func scenarioCatalog() *domain.Catalog {
	return domain.NewCatalog([]domain.Product{
		{"name": "A", "brand": "Lululemon", "category": "Tops", "style_tags": []any{"casual"}, "occasion_tags": []any{"gym"}},
		{"name": "B", "brand": "Alo", "category": "Leggings", "style_tags": []any{"sporty"}, "occasion_tags": []any{"gym"}},
	})
}

// wardrobeCatalog covers every outfit slot for casual/everyday
func wardrobeCatalog() *domain.Catalog {
	return domain.NewCatalog([]domain.Product{
		{"name": "Crew Tee", "brand": "Uniqlo", "category": "Tops", "style_tags": []any{"Casual"}, "occasion_tags": []any{"everyday"}},
		{"name": "Slim Chino", "brand": "Uniqlo", "category": "Bottoms", "style_tags": []any{"casual"}, "occasion_tags": []any{"Everyday", "work"}},
		{"name": "Canvas Tote", "brand": "Baggu", "category": "Accessories", "style_tags": []any{"casual"}, "occasion_tags": []any{"everyday"}},
		{"name": "Court Sneaker", "brand": "Veja", "category": "Shoes", "style_tags": []any{"casual", "minimal"}, "occasion_tags": []any{"everyday"}},
		{"name": "Denim Jacket", "brand": "Levi's", "category": "Outerwear", "style_tags": []any{"casual"}, "occasion_tags": []any{"everyday"}},
		{"name": "Silk Blouse", "brand": "Everlane", "category": "Tops", "style_tags": []any{"elegant"}, "occasion_tags": []any{"work"}},
		{"name": "Yoga Mat Strap", "brand": "Alo Yoga", "category": "Gear", "style_tags": []any{"casual"}, "occasion_tags": []any{"everyday"}},
	})
}

func names(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name()
	}
	return out
}
