package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stylist/backend/config"
	httpDelivery "github.com/stylist/backend/internal/delivery/http"
	"github.com/stylist/backend/internal/infrastructure/sheets"
	"github.com/stylist/backend/internal/logging"
	"github.com/stylist/backend/internal/usecase"
)

const version = "1.0.0"

func newRootCmd() *cobra.Command {
	var a *app

	root := &cobra.Command{
		Use:     "stylist",
		Short:   "AI fashion stylist over a tagged product catalog",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid by now; later failures don't need the usage text
			cmd.SilenceUsage = true

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logging.Setup(cfg.Server.Environment)
			a = newApp(cfg)
			return nil
		},
	}

	appFn := func() *app { return a }
	root.AddCommand(
		newServeCmd(appFn),
		newImportCmd(appFn),
		newImportSheetsCmd(appFn),
		newEnrichCmd(appFn),
		newDemoCmd(appFn),
		newSetupCmd(appFn),
	)

	return root
}

func newServeCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the stylist HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), a())
		},
	}
}

func runServe(ctx context.Context, a *app) error {
	cfg := a.cfg
	log.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("model", cfg.OpenAI.Model).
		Msg("starting stylist backend")
	if cfg.OpenAI.APIKey == "" {
		log.Warn().Msg("OpenAI API key not configured, advice will use the fallback message and enrichment default tags")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := usecase.NewSession(ctx, a.loader())
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	handler := httpDelivery.NewHandler(
		session,
		usecase.NewRecommender(),
		a.adviceService(),
		a.enrichmentService(),
		a.importService(),
	)
	router := httpDelivery.SetupRouter(cfg, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newImportCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:     "import <csv_file_path>",
		Short:   "Import products from a local CSV file into the catalog file",
		Example: "  stylist import products.csv",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportCSV(cmd.OutOrStdout(), a(), args[0])
		},
	}
}

func runImportCSV(w io.Writer, a *app, path string) error {
	fmt.Fprintf(w, "Importing data from %s...\n", path)

	rows, err := sheets.ReadFile(path)
	if err != nil {
		return fmt.Errorf("importing from CSV: %w", err)
	}

	result, err := a.importService().ImportRows(rows)
	if err != nil {
		return err
	}

	printImportResult(w, result)
	return nil
}

func newImportSheetsCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import-sheets",
		Short: "Import products from the configured public spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a().importService().ImportSheet(cmd.Context())
			if err != nil {
				return err
			}
			printImportResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func printImportResult(w io.Writer, result usecase.ImportResult) {
	if result.UsedSample {
		fmt.Fprintln(w, "Spreadsheet unavailable, wrote the sample catalog instead.")
	}
	fmt.Fprintf(w, "Successfully imported %d products to %s\n", result.Count, result.Output)
	if len(result.Keys) == 0 {
		fmt.Fprintln(w, "Sample product keys: No products found")
		return
	}
	fmt.Fprintf(w, "Sample product keys: %s\n", strings.Join(result.Keys, ", "))
}

func newEnrichCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "enrich",
		Short: "Generate style and occasion tags for every product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := a().enrichmentService().EnrichFile(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Enriched %d of %d products (%d with default tags), saved to %s\n",
				report.Enriched, report.Total, report.Defaulted, report.Output)
			return nil
		},
	}
}

func newDemoCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Print facets, sample filters and a sample outfit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a().loader().Load(cmd.Context())
			if err != nil {
				return err
			}
			runDemo(cmd.OutOrStdout(), catalog, usecase.NewRecommender())
			return nil
		},
	}
}

func newSetupCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create .env and import the catalog when missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd.Context(), cmd.OutOrStdout(), a())
		},
	}
}
