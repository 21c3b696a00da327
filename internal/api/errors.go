// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pdiddy/article-catalog/internal/recommend"
	"github.com/pdiddy/article-catalog/internal/store"
	"github.com/pdiddy/article-catalog/internal/usage"
)

// messageBody is a success or hint response carrying only text.
type messageBody struct {
	Message string `json:"message"`
}

// errorBody is a failure response. Store failures carry a generic
// message; the underlying error text stays in the server log.
type errorBody struct {
	Error string `json:"error"`
}

// writeUsageError maps a usage-path failure to its status class:
// validation → 400, unknown article (store or similarity index) → 404,
// anything else → 500 with the generic message.
func (h *Handler) writeUsageError(w http.ResponseWriter, err error, generic string) {
	switch {
	case errors.Is(err, usage.ErrMissingArticleID):
		writeJSON(w, http.StatusBadRequest, messageBody{Message: "Article_id must be provided."})
	case errors.Is(err, store.ErrNotFound), errors.Is(err, recommend.ErrUnknownArticle):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "article not found"})
	default:
		h.log.Error().Err(err).Msg("usage operation failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: generic})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
