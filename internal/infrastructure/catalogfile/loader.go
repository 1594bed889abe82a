package catalogfile

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/stylist/backend/internal/domain"
)

// Loader loads the session catalog from the enriched file, falling back to the
// plain import and finally to an empty catalog
type Loader struct {
	files        domain.CatalogFiles
	primaryPath  string
	fallbackPath string
}

// NewLoader creates a new loader
func NewLoader(files domain.CatalogFiles, primaryPath, fallbackPath string) *Loader {
	return &Loader{
		files:        files,
		primaryPath:  primaryPath,
		fallbackPath: fallbackPath,
	}
}

// Load implements domain.CatalogSource.
// Missing files are never an error; a file that exists but cannot be decoded is.
func (l *Loader) Load(ctx context.Context) (*domain.Catalog, error) {
	for _, path := range []string{l.primaryPath, l.fallbackPath} {
		if path == "" {
			continue
		}

		products, err := l.files.Read(path)
		if err == nil {
			log.Debug().Str("component", "catalog").Str("path", path).Int("products", len(products)).Msg("catalog file read")
			return domain.NewCatalog(products), nil
		}
		if !errors.Is(err, domain.ErrCatalogNotFound) {
			return nil, err
		}

		log.Warn().Str("component", "catalog").Str("path", path).Msg("catalog file not found")
	}

	log.Warn().Str("component", "catalog").Msg("no catalog file found, starting with an empty catalog")
	return domain.EmptyCatalog(), nil
}
