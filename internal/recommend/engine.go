// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/pdiddy/article-catalog/pkg/types"
)

// ErrUnknownArticle reports an identifier absent from the similarity
// index space. Callers receive this rather than an empty list so a
// missing article is never mistaken for "no similar articles".
var ErrUnknownArticle = errors.New("article not in similarity index")

// Neighbor is one scored entry of a recommendation ranking.
type Neighbor struct {
	ID    string  `json:"article_id"`
	Score float64 `json:"score"`
}

// Fetcher maps ordered identifier lists back to catalog records.
type Fetcher interface {
	FetchArticlesByID(ctx context.Context, ids []string) ([]types.RankedResult, error)
}

// Engine ranks articles by combined title and overview similarity.
type Engine struct {
	titles    *Matrix
	overviews *Matrix
	store     Fetcher
	log       zerolog.Logger
}

// NewEngine builds an engine over an aligned matrix pair (use LoadPair).
func NewEngine(titles, overviews *Matrix, store Fetcher, log zerolog.Logger) (*Engine, error) {
	if titles.Size() != overviews.Size() {
		return nil, fmt.Errorf("matrix dimensions differ: %d vs %d", titles.Size(), overviews.Size())
	}
	return &Engine{titles: titles, overviews: overviews, store: store, log: log}, nil
}

// combined merges the two similarity signals for row i, column j. The
// combination is the arithmetic mean of the title and overview scores, a
// fixed choice kept consistent across runs. It inherits symmetry from
// the matrices and scores the diagonal 1.0.
func (e *Engine) combined(i, j int) float64 {
	return (e.titles.At(i, j) + e.overviews.At(i, j)) / 2
}

// Neighbors returns every article in the index space ranked by combined
// similarity to articleID, most similar first. The source article itself
// is always the head entry (score 1.0); callers that want only other
// articles drop it. Ties among the remainder keep original index order.
func (e *Engine) Neighbors(articleID string) ([]Neighbor, error) {
	row, ok := e.titles.IndexOf(articleID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownArticle, articleID)
	}

	n := e.titles.Size()
	rest := make([]int, 0, n-1)
	for j := 0; j < n; j++ {
		if j != row {
			rest = append(rest, j)
		}
	}
	sort.SliceStable(rest, func(a, b int) bool {
		return e.combined(row, rest[a]) > e.combined(row, rest[b])
	})

	neighbors := make([]Neighbor, 0, n)
	neighbors = append(neighbors, Neighbor{ID: articleID, Score: e.combined(row, row)})
	for _, j := range rest {
		neighbors = append(neighbors, Neighbor{ID: e.titles.IDAt(j), Score: e.combined(row, j)})
	}
	return neighbors, nil
}

// Recommend maps the neighbor ranking back to full catalog records in
// ranked order. Identifiers no longer present in the store are skipped,
// but an identifier missing from the index space is an error.
func (e *Engine) Recommend(ctx context.Context, articleID string) ([]types.RankedResult, error) {
	neighbors, err := e.Neighbors(articleID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(neighbors))
	for i, nb := range neighbors {
		ids[i] = nb.ID
	}

	articles, err := e.store.FetchArticlesByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetching recommended articles: %w", err)
	}

	e.log.Debug().
		Str("article_id", articleID).
		Int("neighbors", len(neighbors)).
		Int("resolved", len(articles)).
		Msg("recommendations computed")

	return articles, nil
}
