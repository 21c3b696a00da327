// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pdiddy/article-catalog/internal/search"
	"github.com/pdiddy/article-catalog/internal/usage"
	"github.com/pdiddy/article-catalog/pkg/types"
)

// Searcher is the search engine surface the handlers consume.
type Searcher interface {
	Search(ctx context.Context, q types.SearchQuery) (types.SearchResults, error)
}

// UsageLogger is the usage-event surface the handlers consume.
type UsageLogger interface {
	Record(ctx context.Context, articleID, actorID string, kind types.EventKind) error
	MarkRead(ctx context.Context, articleID, actorID string) (usage.ReadReceipt, error)
}

// Pinger reports store liveness for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the catalog API.
type Handler struct {
	search Searcher
	usage  UsageLogger
	store  Pinger
	log    zerolog.Logger
}

// NewHandler returns a Handler over the given collaborators.
func NewHandler(s Searcher, u UsageLogger, p Pinger, log zerolog.Logger) *Handler {
	return &Handler{search: s, usage: u, store: p, log: log}
}

// searchRequest is the search body: comma-separated input plus optional
// date and journal filters. The sort mode comes from the query string.
type searchRequest struct {
	Input   string   `json:"input"`
	Dates   []string `json:"dates"`
	Journal string   `json:"journal"`
}

// logRequest is the body for the event-recording routes.
type logRequest struct {
	ArticleID string `json:"article_id"`
	ActorID   string `json:"actor_id"`
	Type      string `json:"type"`
}

// SearchArticles handles POST /api/articles. Zero qualifying articles is
// a successful response carrying only the hint message; store failures
// surface as a generic error, never the underlying cause.
func (h *Handler) SearchArticles(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	query := types.SearchQuery{
		Input:   req.Input,
		Dates:   req.Dates,
		Journal: req.Journal,
		Sort:    types.SortMode(r.URL.Query().Get("sort")),
	}

	results, err := h.search.Search(r.Context(), query)
	if err != nil {
		var noResults *search.NoResultsError
		switch {
		case errors.As(err, &noResults):
			writeJSON(w, http.StatusOK, messageBody{Message: noResults.Error()})
		case errors.Is(err, search.ErrEmptyQuery):
			writeJSON(w, http.StatusBadRequest, errorBody{Error: search.ErrEmptyQuery.Error()})
		default:
			h.log.Error().Err(err).Msg("search failed")
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: "An error occurred while fetching article data."})
		}
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// readResponse pairs the freshly fetched detail with the recommendation
// list. The engine ranks the source article first; the response drops
// that head entry so clients see only other articles.
type readResponse struct {
	Message         string               `json:"message"`
	Recommendations []types.RankedResult `json:"recommendations"`
	SelectedArticle types.ArticleDetail  `json:"selected_article"`
}

// MarkRead handles POST /api/articles/logs/read: append the read event,
// fetch the enriched detail, and compute recommendations. A missing
// identifier fails distinctly from a store error.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLogRequest(w, r)
	if !ok {
		return
	}

	receipt, err := h.usage.MarkRead(r.Context(), req.ArticleID, req.ActorID)
	if err != nil {
		h.writeUsageError(w, err, "Error inserting read history.")
		return
	}

	recommendations := receipt.Recommendations
	if len(recommendations) > 0 {
		recommendations = recommendations[1:]
	}

	writeJSON(w, http.StatusOK, readResponse{
		Message:         fmt.Sprintf("%s is successfully inserted to read logs of user %s", req.ArticleID, req.ActorID),
		Recommendations: recommendations,
		SelectedArticle: receipt.Detail,
	})
}

// RecordDownload handles POST /api/articles/logs/download.
func (h *Handler) RecordDownload(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLogRequest(w, r)
	if !ok {
		return
	}

	if err := h.usage.Record(r.Context(), req.ArticleID, req.ActorID, types.EventDownload); err != nil {
		h.writeUsageError(w, err, "Error inserting download log.")
		return
	}

	writeJSON(w, http.StatusOK, messageBody{
		Message: fmt.Sprintf("%s is successfully inserted to downloads log of user %s", req.ArticleID, req.ActorID),
	})
}

// RecordEvent handles POST /api/articles/logs for citation and other
// events. An unrecognized or absent type records as "other".
func (h *Handler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLogRequest(w, r)
	if !ok {
		return
	}

	kind := types.EventKind(req.Type)
	if !types.ValidKind(kind) {
		kind = types.EventOther
	}

	if err := h.usage.Record(r.Context(), req.ArticleID, req.ActorID, kind); err != nil {
		h.writeUsageError(w, err, "Error inserting usage log.")
		return
	}

	writeJSON(w, http.StatusOK, messageBody{
		Message: fmt.Sprintf("%s successfully inserted to %s log for %s", req.ArticleID, kind, req.ActorID),
	})
}

// Check handles GET /api/check: store liveness.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "database unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeLogRequest(w http.ResponseWriter, r *http.Request) (logRequest, bool) {
	var req logRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return logRequest{}, false
	}
	if req.ArticleID == "" {
		writeJSON(w, http.StatusBadRequest, messageBody{Message: "Article_id must be provided."})
		return logRequest{}, false
	}
	return req, true
}
