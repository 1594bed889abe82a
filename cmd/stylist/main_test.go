package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylist/backend/config"
	"github.com/stylist/backend/internal/domain"
	"github.com/stylist/backend/internal/infrastructure/catalogfile"
	"github.com/stylist/backend/internal/usecase"
)

// chdir moves into dir for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(original) })
}

func testConfig(dir string) *config.Config {
	return &config.Config{
		Server:     config.ServerConfig{Port: "8080", Environment: "test"},
		Catalog:    config.CatalogConfig{PrimaryPath: filepath.Join(dir, "catalog_enriched.json"), FallbackPath: filepath.Join(dir, "catalog.json")},
		OpenAI:     config.OpenAIConfig{Timeout: time.Second},
		Advice:     config.AdviceConfig{MaxTokens: 400, Temperature: 0.7, SampleSize: 5},
		Enrichment: config.EnrichmentConfig{MaxTokens: 200, Temperature: 0.3, RequestsPerSecond: 1000},
		Sheets:     config.SheetsConfig{ID: "sheet-1", GID: "0", Timeout: time.Second},
	}
}

func TestImportCmd_ArgumentCount(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no path", []string{"import"}},
		{"two paths", []string{"import", "a.csv", "b.csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			root := newRootCmd()
			root.SetOut(&out)
			root.SetErr(&out)
			root.SetArgs(tt.args)

			err := root.Execute()

			require.Error(t, err)
			assert.Contains(t, out.String(), "Usage:")
			assert.Contains(t, out.String(), "stylist import <csv_file_path>")
		})
	}
}

func TestImportCmd_WritesCatalog(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("products.csv",
		[]byte("name,brand,category\nCrew Tee,Uniqlo,Tops\n,,\nSlim Chino,Uniqlo,\n"), 0o644))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"import", "products.csv"})

	require.NoError(t, root.Execute(), out.String())

	products, err := catalogfile.NewStore().Read(filepath.Join(dir, "catalog.json"))
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Crew Tee", products[0].Name())
	assert.Equal(t, "", products[1].Category())
	assert.Contains(t, out.String(), "Successfully imported 2 products")
	assert.Contains(t, out.String(), "brand, category, name")
}

func TestRunImportCSV_MissingFile(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	err := runImportCSV(&out, newApp(testConfig(dir)), filepath.Join(dir, "missing.csv"))

	assert.ErrorIs(t, err, domain.ErrImportFailed)
	assert.NoFileExists(t, filepath.Join(dir, "catalog.json"))
}

func TestRunDemo(t *testing.T) {
	catalog := domain.NewCatalog([]domain.Product{
		{
			"name": "Align Tank Top", "brand": "Lululemon", "category": "Tops", "price": "$58",
			"style_tags": []string{"sporty"}, "occasion_tags": []string{"gym"},
		},
		{
			"name": "Airlift Legging", "brand": "Alo Yoga", "category": "Leggings", "price": "$88",
			"style_tags": []string{"sporty"}, "occasion_tags": []string{"gym"},
		},
		{
			"name": "Everywhere Belt Bag", "brand": "Lululemon", "category": "Accessories", "price": "$38",
			"description": "Hands-free storage for your essentials with adjustable strap and a water-repellent shell.",
			"style_tags": []string{"casual"}, "occasion_tags": []string{"everyday"},
		},
	})

	var out bytes.Buffer
	runDemo(&out, catalog, usecase.NewRecommender())

	text := out.String()
	assert.Contains(t, text, "Loaded 3 products")
	assert.Contains(t, text, "casual, sporty")
	assert.Contains(t, text, "Alo Yoga, Lululemon")
	assert.Contains(t, text, "Lululemon items: 2")
	assert.Contains(t, text, "Leggings: 1")
	assert.Contains(t, text, "Airlift Legging by Alo Yoga - $88")
	assert.Contains(t, text, "1. Everywhere Belt Bag by Lululemon - $38")
	assert.Contains(t, text, "Hands-free storage for your essentials with adjustable strap...")
}

func TestRunDemo_EmptyCatalog(t *testing.T) {
	var out bytes.Buffer
	runDemo(&out, domain.EmptyCatalog(), usecase.NewRecommender())

	text := out.String()
	assert.Contains(t, text, "Loaded 0 products")
	assert.Contains(t, text, "No styles available")
	assert.Contains(t, text, "No occasions available")
	assert.Contains(t, text, "No outfit could be created with current data")
}

func TestRunSetup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("name,brand\nCrew Tee,Uniqlo\n"))
	}))
	defer server.Close()

	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(envExampleFile, []byte("OPENAI_API_KEY=\n"), 0o644))

	cfg := testConfig(dir)
	cfg.Sheets.BaseURL = server.URL

	var out bytes.Buffer
	require.NoError(t, runSetup(context.Background(), &out, newApp(cfg)))

	env, err := os.ReadFile(envFile)
	require.NoError(t, err)
	assert.Equal(t, "OPENAI_API_KEY=\n", string(env))
	assert.FileExists(t, cfg.Catalog.FallbackPath)
	assert.Contains(t, out.String(), "Successfully imported 1 products")
	assert.Contains(t, out.String(), "stylist enrich")

	t.Run("leaves existing files alone", func(t *testing.T) {
		require.NoError(t, os.WriteFile(envFile, []byte("OPENAI_API_KEY=sk-kept\n"), 0o600))

		var again bytes.Buffer
		require.NoError(t, runSetup(context.Background(), &again, newApp(cfg)))

		env, err := os.ReadFile(envFile)
		require.NoError(t, err)
		assert.Equal(t, "OPENAI_API_KEY=sk-kept\n", string(env))
		assert.Contains(t, again.String(), "Product catalog already exists.")
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 60))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "né", truncate("néon", 2))
}
