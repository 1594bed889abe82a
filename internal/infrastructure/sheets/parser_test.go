package sheets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylist/backend/internal/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []domain.Product
	}{
		{
			name:  "header and rows",
			input: "name,brand,price\nAlign Tank Top,Lululemon,$58\nAirlift Legging,Alo Yoga,$88\n",
			expected: []domain.Product{
				{"name": "Align Tank Top", "brand": "Lululemon", "price": "$58"},
				{"name": "Airlift Legging", "brand": "Alo Yoga", "price": "$88"},
			},
		},
		{
			name:  "missing cells read as empty",
			input: "name,brand,color\nBelt Bag,Lululemon\n",
			expected: []domain.Product{
				{"name": "Belt Bag", "brand": "Lululemon", "color": ""},
			},
		},
		{
			name:  "fully empty rows dropped",
			input: "name,brand\n,\nBelt Bag,Lululemon\n\n,\n",
			expected: []domain.Product{
				{"name": "Belt Bag", "brand": "Lululemon"},
			},
		},
		{
			name:  "quoted commas",
			input: "name,description\nTee,\"Soft, breathable cotton\"\n",
			expected: []domain.Product{
				{"name": "Tee", "description": "Soft, breathable cotton"},
			},
		},
		{
			name:  "extra cells ignored",
			input: "name\nTee,unexpected\n",
			expected: []domain.Product{
				{"name": "Tee"},
			},
		},
		{
			name:     "header only",
			input:    "name,brand\n",
			expected: []domain.Product{},
		},
		{
			name:  "byte order mark stripped",
			input: "\ufeffname,brand\nTee,Uniqlo\n",
			expected: []domain.Product{
				{"name": "Tee", "brand": "Uniqlo"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, products)
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrImportFailed)
}

func TestHeaderKeys(t *testing.T) {
	keys := headerKeys([]string{"name", "", "name", " ", "name"})
	assert.Equal(t, []string{"name", "Unnamed: 1", "name.1", "Unnamed: 3", "name.2"}, keys)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,category\nCrew Tee,Tops\n"), 0o644))

	products, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Crew Tee", products[0].Name())
	assert.Equal(t, "Tops", products[0].Category())
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, domain.ErrImportFailed)
}
