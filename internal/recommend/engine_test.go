// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pdiddy/article-catalog/pkg/types"
)

// fakeFetcher resolves identifiers to bare articles, skipping a
// configurable set of missing ones.
type fakeFetcher struct {
	missing map[string]bool
	gotIDs  []string
}

func (f *fakeFetcher) FetchArticlesByID(_ context.Context, ids []string) ([]types.RankedResult, error) {
	f.gotIDs = ids
	var out []types.RankedResult
	for _, id := range ids {
		if f.missing[id] {
			continue
		}
		out = append(out, types.RankedResult{Article: types.Article{ID: id}})
	}
	return out, nil
}

func mustMatrix(t *testing.T, ids []string, rows [][]float64) *Matrix {
	t.Helper()
	m, err := newMatrix(ids, rows)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func testEngines(t *testing.T) (*Engine, *fakeFetcher) {
	t.Helper()
	ids := []string{"a", "b", "c", "d"}
	titles := mustMatrix(t, ids, [][]float64{
		{1.0, 0.2, 0.8, 0.4},
		{0.2, 1.0, 0.6, 0.4},
		{0.8, 0.6, 1.0, 0.0},
		{0.4, 0.4, 0.0, 1.0},
	})
	overviews := mustMatrix(t, ids, [][]float64{
		{1.0, 0.6, 0.4, 0.4},
		{0.6, 1.0, 0.2, 0.4},
		{0.4, 0.2, 1.0, 0.8},
		{0.4, 0.4, 0.8, 1.0},
	})

	fetcher := &fakeFetcher{missing: map[string]bool{}}
	e, err := NewEngine(titles, overviews, fetcher, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	return e, fetcher
}

func TestNeighborsSelfFirst(t *testing.T) {
	e, _ := testEngines(t)

	for _, id := range []string{"a", "b", "c", "d"} {
		neighbors, err := e.Neighbors(id)
		if err != nil {
			t.Fatal(err)
		}
		if neighbors[0].ID != id {
			t.Errorf("Neighbors(%s)[0] = %s, want self", id, neighbors[0].ID)
		}
		if neighbors[0].Score != 1.0 {
			t.Errorf("self score = %v, want 1.0", neighbors[0].Score)
		}
		if len(neighbors) != 4 {
			t.Errorf("len = %d, want 4", len(neighbors))
		}
	}
}

func TestNeighborsOrdering(t *testing.T) {
	e, _ := testEngines(t)

	// Combined scores from a: b=0.4, c=0.6, d=0.4. Descending with
	// index-order ties: c, then b before d.
	neighbors, err := e.Neighbors("a")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a", "c", "b", "d"}
	for i, id := range want {
		if neighbors[i].ID != id {
			t.Fatalf("order = %v, want %v", neighborIDs(neighbors), want)
		}
	}

	// Tail is descending by combined score.
	for i := 2; i < len(neighbors); i++ {
		if neighbors[i].Score > neighbors[i-1].Score {
			t.Errorf("score[%d]=%v > score[%d]=%v", i, neighbors[i].Score, i-1, neighbors[i-1].Score)
		}
	}
}

func TestCombinedScoreSymmetry(t *testing.T) {
	e, _ := testEngines(t)

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(e.combined(i, j)-e.combined(j, i)) > 1e-12 {
				t.Errorf("combined(%d,%d) != combined(%d,%d)", i, j, j, i)
			}
		}
	}
}

func TestNeighborsUnknownArticle(t *testing.T) {
	e, _ := testEngines(t)

	_, err := e.Neighbors("nope")
	if !errors.Is(err, ErrUnknownArticle) {
		t.Fatalf("err = %v, want ErrUnknownArticle", err)
	}
}

func TestRecommend(t *testing.T) {
	e, fetcher := testEngines(t)

	articles, err := e.Recommend(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}

	if len(articles) != 4 {
		t.Fatalf("len = %d", len(articles))
	}
	if articles[0].ID != "a" {
		t.Errorf("head = %s, want the source article", articles[0].ID)
	}
	if len(fetcher.gotIDs) != 4 || fetcher.gotIDs[0] != "a" {
		t.Errorf("fetch ids = %v", fetcher.gotIDs)
	}
}

func TestRecommendSkipsMissingStoreRows(t *testing.T) {
	e, fetcher := testEngines(t)
	fetcher.missing["b"] = true

	articles, err := e.Recommend(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range articles {
		if a.ID == "b" {
			t.Error("missing article returned")
		}
	}
	if len(articles) != 3 {
		t.Errorf("len = %d, want 3", len(articles))
	}
}

func TestRecommendUnknownArticle(t *testing.T) {
	e, _ := testEngines(t)

	articles, err := e.Recommend(context.Background(), "nope")
	if !errors.Is(err, ErrUnknownArticle) {
		t.Fatalf("err = %v, want ErrUnknownArticle", err)
	}
	if articles != nil {
		t.Error("expected no articles with the error")
	}
}

func neighborIDs(neighbors []Neighbor) []string {
	ids := make([]string, len(neighbors))
	for i, n := range neighbors {
		ids[i] = n.ID
	}
	return ids
}
