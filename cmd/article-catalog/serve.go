// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-catalog/internal/api"
	"github.com/pdiddy/article-catalog/internal/logging"
	"github.com/pdiddy/article-catalog/internal/recommend"
	"github.com/pdiddy/article-catalog/internal/search"
	"github.com/pdiddy/article-catalog/internal/store"
	"github.com/pdiddy/article-catalog/internal/usage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog HTTP API",
	Long: `Serve opens the catalog database, loads the similarity matrix pair,
and serves the API: article search, mark-read with recommendations,
usage-event recording, and a health check.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := catalogConfig()
	log := logging.New(cfg.Logging)

	s, err := store.New(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	titles, overviews, err := recommend.LoadPair(
		cfg.Similarity.TitleMatrixPath, cfg.Similarity.OverviewMatrixPath)
	if err != nil {
		return fmt.Errorf("loading similarity matrices: %w", err)
	}

	recommender, err := recommend.NewEngine(titles, overviews, s, log)
	if err != nil {
		return err
	}

	engine := search.NewEngine(s, log)
	usageLog := usage.NewLogger(s, recommender, log)
	handler := api.NewHandler(engine, usageLog, s, log)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.NewRouter(handler, cfg.Server, log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Int("articles", titles.Size()).Msg("serving catalog API")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
	}
	return nil
}
