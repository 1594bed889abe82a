package main

import (
	"github.com/stylist/backend/config"
	"github.com/stylist/backend/internal/infrastructure/catalogfile"
	"github.com/stylist/backend/internal/infrastructure/openai"
	"github.com/stylist/backend/internal/infrastructure/sheets"
	"github.com/stylist/backend/internal/usecase"
)

// app wires infrastructure into the use cases every subcommand needs
type app struct {
	cfg       *config.Config
	store     *catalogfile.Store
	generator *openai.Client
	exporter  *sheets.Client
}

func newApp(cfg *config.Config) *app {
	return &app{
		cfg:       cfg,
		store:     catalogfile.NewStore(),
		generator: openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.OpenAI.Timeout),
		exporter:  sheets.NewClient(cfg.Sheets.BaseURL, cfg.Sheets.Timeout),
	}
}

func (a *app) loader() *catalogfile.Loader {
	return catalogfile.NewLoader(a.store, a.cfg.Catalog.PrimaryPath, a.cfg.Catalog.FallbackPath)
}

func (a *app) importService() *usecase.ImportService {
	return usecase.NewImportService(a.store, a.exporter, usecase.ImportConfig{
		OutputPath: a.cfg.Catalog.FallbackPath,
		SheetID:    a.cfg.Sheets.ID,
		SheetGID:   a.cfg.Sheets.GID,
	})
}

func (a *app) enrichmentService() *usecase.EnrichmentService {
	return usecase.NewEnrichmentService(a.generator, a.store, usecase.EnrichmentConfig{
		InputPath:         a.cfg.Catalog.FallbackPath,
		OutputPath:        a.cfg.Catalog.PrimaryPath,
		MaxTokens:         a.cfg.Enrichment.MaxTokens,
		Temperature:       a.cfg.Enrichment.Temperature,
		RequestsPerSecond: a.cfg.Enrichment.RequestsPerSecond,
	})
}

func (a *app) adviceService() *usecase.AdviceService {
	return usecase.NewAdviceService(a.generator, usecase.AdviceConfig{
		MaxTokens:   a.cfg.Advice.MaxTokens,
		Temperature: a.cfg.Advice.Temperature,
		SampleSize:  a.cfg.Advice.SampleSize,
	})
}
