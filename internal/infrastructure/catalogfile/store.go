package catalogfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/stylist/backend/internal/domain"
)

const catalogFileMode = 0o644

// Store reads and writes catalog files as JSON arrays of objects
type Store struct{}

// NewStore creates a new catalog file store
func NewStore() *Store {
	return &Store{}
}

// Read decodes the catalog at path.
// Numbers are kept as json.Number so unknown columns are written back verbatim.
func (s *Store) Read(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var products []domain.Product
	if err := dec.Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedCatalog, path, err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	for i, p := range products {
		if p == nil {
			return nil, fmt.Errorf("%w: %s: record %d is null", domain.ErrMalformedCatalog, path, i)
		}
	}
	return products, nil
}

// Write replaces the file at path with the given catalog.
// The data is written to a temporary file first and renamed into place, so a
// reader never observes a partially written catalog.
func (s *Store) Write(path string, products []domain.Product) error {
	if products == nil {
		products = []domain.Product{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(products); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	// CreateTemp uses 0600; catalog files are plain readable data files
	if err := tmp.Chmod(catalogFileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set catalog permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace catalog %s: %w", path, err)
	}
	return nil
}
