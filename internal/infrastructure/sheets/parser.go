package sheets

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/stylist/backend/internal/domain"
)

const utf8BOM = "\ufeff"

// Parse reads CSV data with a header row into product records.
// Keys come from the header; missing cells read as "", rows whose cells
// are all empty are dropped and cells past the header width are ignored.
func Parse(r io.Reader) ([]domain.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header row", domain.ErrImportFailed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImportFailed, err)
	}
	keys := headerKeys(header)

	products := []domain.Product{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrImportFailed, err)
		}
		if blankRow(record) {
			continue
		}

		product := make(domain.Product, len(keys))
		for i, key := range keys {
			value := ""
			if i < len(record) {
				value = record[i]
			}
			product[key] = value
		}
		products = append(products, product)
	}

	return products, nil
}

// ReadFile parses a local CSV file
func ReadFile(path string) ([]domain.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImportFailed, err)
	}
	defer f.Close()

	return Parse(f)
}

// headerKeys names blank columns "Unnamed: i" and suffixes repeated
// names with ".1", ".2", ... so no column is silently overwritten.
func headerKeys(header []string) []string {
	keys := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		keys[i] = name
	}
	return keys
}

func blankRow(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}
