package usecase

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/stylist/backend/internal/domain"
)

// Session owns the catalog snapshot a styling session works against.
// Snapshots are immutable; Reload replaces the whole snapshot at once so
// concurrent readers see either the old or the new catalog, never a mix.
type Session struct {
	source  domain.CatalogSource
	current atomic.Pointer[domain.Catalog]
}

// NewSession creates a session and loads its first snapshot
func NewSession(ctx context.Context, source domain.CatalogSource) (*Session, error) {
	s := &Session{source: source}
	s.current.Store(domain.EmptyCatalog())
	if _, err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Catalog returns the current snapshot
func (s *Session) Catalog() *domain.Catalog {
	return s.current.Load()
}

// Reload loads a fresh snapshot from the source and swaps it in.
// On failure the previous snapshot stays active.
func (s *Session) Reload(ctx context.Context) (*domain.Catalog, error) {
	catalog, err := s.source.Load(ctx)
	if err != nil {
		log.Error().Str("component", "session").Err(err).Msg("catalog reload failed")
		return s.Catalog(), err
	}
	if catalog == nil {
		catalog = domain.EmptyCatalog()
	}

	s.current.Store(catalog)
	log.Info().Str("component", "session").Int("products", catalog.Len()).Msg("catalog loaded")
	return catalog, nil
}
