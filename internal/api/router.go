// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api exposes the catalog over HTTP: article search, the
// mark-read flow (detail plus recommendations), usage-event recording,
// and a health check. The router mounts everything under /api with CORS
// open to the configured origins.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/pdiddy/article-catalog/pkg/types"
)

// NewRouter wires the handler's routes with the shared middleware stack.
func NewRouter(h *Handler, cfg types.ServerConfig, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/articles", h.SearchArticles)
		r.Post("/articles/logs/read", h.MarkRead)
		r.Post("/articles/logs/download", h.RecordDownload)
		r.Post("/articles/logs", h.RecordEvent)
		r.Get("/check", h.Check)
	})

	return r
}

// requestLogger emits one structured line per request.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
