package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

const (
	envFile        = ".env"
	envExampleFile = ".env.example"
)

// runSetup prepares a working directory: .env from the template, the imported
// catalog, and a hint about enrichment. Existing files are left alone.
func runSetup(ctx context.Context, w io.Writer, a *app) error {
	fmt.Fprintln(w, "Setting up AI Fashion Stylist...")

	created, err := ensureEnvFile()
	switch {
	case err != nil:
		return err
	case created:
		fmt.Fprintln(w, ".env file created. Please add your OpenAI API key.")
	}

	catalogPath := a.cfg.Catalog.FallbackPath
	if exists(catalogPath) {
		fmt.Fprintln(w, "Product catalog already exists.")
	} else {
		fmt.Fprintln(w, "Importing product data...")
		result, err := a.importService().ImportSheet(ctx)
		if err != nil {
			return err
		}
		printImportResult(w, result)
	}

	if exists(a.cfg.Catalog.PrimaryPath) {
		fmt.Fprintln(w, "Enriched catalog already exists.")
	} else {
		fmt.Fprintln(w, "To use AI features, run: stylist enrich")
		fmt.Fprintln(w, "   (Make sure to set OPENAI_API_KEY in .env first)")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Setup complete! Next steps:")
	fmt.Fprintln(w, "1. Add your OpenAI API key to .env")
	fmt.Fprintln(w, "2. Run: stylist enrich (to add AI tags)")
	fmt.Fprintln(w, "3. Run: stylist serve (to start the API)")
	return nil
}

// ensureEnvFile copies .env.example to .env when .env is missing
func ensureEnvFile() (bool, error) {
	if exists(envFile) {
		return false, nil
	}

	content, err := os.ReadFile(envExampleFile)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", envExampleFile, err)
	}

	if err := os.WriteFile(envFile, content, 0o600); err != nil {
		return false, fmt.Errorf("creating %s: %w", envFile, err)
	}
	return true, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
