// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search turns a raw catalog query into a ranked result set:
// comma-separated terms are normalized, filtered against the store, and
// ordered by the requested sort mode or by relevance (count of distinct
// terms matched).
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/article-catalog/internal/store"
	"github.com/pdiddy/article-catalog/pkg/types"
)

// ErrEmptyQuery reports a query whose input normalized to zero terms.
// The term disjunction needs at least one term to be meaningful, so this
// is rejected before any store work.
var ErrEmptyQuery = errors.New("search input must contain at least one term")

// NoResultsError reports that filtering matched zero articles. This is a
// successful outcome carrying a human-readable hint, not a failure.
type NoResultsError struct {
	Input string
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("No results found for %s . Try to use comma to separate keywords", e.Input)
}

// Querier is the store surface the engine consumes.
type Querier interface {
	QueryArticles(ctx context.Context, f store.Filters, sort types.SortMode) ([]types.RankedResult, error)
}

// Engine executes catalog searches against a Querier.
type Engine struct {
	store Querier
	log   zerolog.Logger
}

// NewEngine returns a search engine backed by q.
func NewEngine(q Querier, log zerolog.Logger) *Engine {
	return &Engine{store: q, log: log}
}

// Search runs the query and returns ranked results. It returns
// ErrEmptyQuery for term-less input and a *NoResultsError when filtering
// matches nothing. Store failures are returned wrapped; the transport
// boundary decides how much of them to expose.
func (e *Engine) Search(ctx context.Context, q types.SearchQuery) (types.SearchResults, error) {
	terms := q.Terms()
	if len(terms) == 0 {
		return types.SearchResults{}, ErrEmptyQuery
	}

	// Unrecognized sort parameters fall back to relevance ordering.
	mode := q.Sort
	if !mode.Known() {
		mode = types.SortRelevance
	}

	normalized := store.Filters{
		Terms:   terms,
		Journal: strings.TrimSpace(q.Journal),
	}
	for _, d := range q.Dates {
		if d = strings.TrimSpace(d); d != "" {
			normalized.Dates = append(normalized.Dates, d)
		}
	}

	results, err := e.store.QueryArticles(ctx, normalized, mode)
	if err != nil {
		return types.SearchResults{}, fmt.Errorf("fetching articles: %w", err)
	}
	if len(results) == 0 {
		return types.SearchResults{}, &NoResultsError{Input: q.Input}
	}

	annotateMatches(results, terms)

	// Field-based sort modes keep the store ordering. The default mode
	// re-ranks by matched-term count; the stable sort keeps store fetch
	// order for equally relevant articles.
	if mode == types.SortRelevance {
		sort.SliceStable(results, func(i, j int) bool {
			return len(results[i].Contains) > len(results[j].Contains)
		})
	}

	e.log.Debug().
		Int("terms", len(terms)).
		Int("results", len(results)).
		Str("sort", string(mode)).
		Msg("search completed")

	return types.SearchResults{Results: results, Total: len(results)}, nil
}

// annotateMatches records, per result, which query terms occur in the
// concatenated title, author, and keyword fields. Each term is tested
// independently as a case-insensitive substring.
func annotateMatches(results []types.RankedResult, terms []string) {
	for i := range results {
		haystack := strings.ToLower(results[i].Title + results[i].Author + results[i].Keyword)
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				results[i].Contains = append(results[i].Contains, term)
			}
		}
	}
}
