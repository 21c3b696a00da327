// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/pdiddy/article-catalog/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	cfg := types.StoreConfig{
		Path:         filepath.Join(t.TempDir(), "catalog.db"),
		QueryTimeout: 5 * time.Second,
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// sampleCatalog holds three published articles and one unpublished. The
// first matches "lung" in the title and "cancer" in the keyword field,
// the second matches only "cancer", the third matches neither.
func sampleCatalog() SeedData {
	return SeedData{
		Journals: []Journal{
			{ID: "j1", Name: "Journal of Oncology"},
			{ID: "j2", Name: "Annals of Botany"},
		},
		Articles: []types.Article{
			{
				ID: "art-1", Title: "Early detection of lung tumours",
				Author: "Ferreira, Santos", Keyword: "cancer;screening",
				PublicationDate: "2021-03-15", DateAdded: "2022-01-10",
				Status: types.StatusPublished, JournalID: "j1",
				FileName: "art-1.pdf",
			},
			{
				ID: "art-2", Title: "Advances in cancer immunotherapy",
				Author: "Okafor", Keyword: "immunology",
				PublicationDate: "2019-07-01", DateAdded: "2022-02-20",
				Status: types.StatusPublished, JournalID: "j1",
			},
			{
				ID: "art-3", Title: "Growth patterns of alpine mosses",
				Author: "Lindqvist", Keyword: "botany",
				PublicationDate: "2020-11-30", DateAdded: "2022-03-05",
				Status: types.StatusPublished, JournalID: "j2",
			},
			{
				ID: "art-4", Title: "Suppressed trial on lung cancer",
				Author: "Nobody", Keyword: "cancer",
				PublicationDate: "2021-05-01", DateAdded: "2022-04-01",
				Status: types.StatusUnpublished, JournalID: "j1",
			},
		},
		Contributors: []types.Contributor{
			{ArticleID: "art-1", FirstName: "Ana", LastName: "Ferreira", ORCID: "0000-0001"},
			{ArticleID: "art-1", FirstName: "Rui", LastName: "Santos", ORCID: "0000-0002"},
			{ArticleID: "art-2", FirstName: "Chidi", LastName: "Okafor", ORCID: "0000-0003"},
		},
	}
}

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := testStore(t)
	if err := s.Seed(context.Background(), sampleCatalog()); err != nil {
		t.Fatal(err)
	}
	return s
}

func recordEvents(t *testing.T, s *Store, articleID string, kind types.EventKind, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := s.InsertEvent(context.Background(), articleID, "actor-1", kind); err != nil {
			t.Fatal(err)
		}
	}
}

func resultIDs(results []types.RankedResult) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// --- schema tests ---

func TestNewStoreCreatesSchema(t *testing.T) {
	s := testStore(t)

	tables := []string{"journals", "articles", "article_files", "contributors", "logs"}
	for _, table := range tables {
		var count int
		err := s.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type='table' AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("checking table %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("table %s does not exist", table)
		}
	}
}

// --- query tests ---

func TestQueryArticlesRequiresTerms(t *testing.T) {
	s := seededStore(t)

	_, err := s.QueryArticles(context.Background(), Filters{}, types.SortRelevance)
	if err == nil {
		t.Fatal("expected error for empty term list")
	}
}

func TestQueryArticlesTermFilter(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		wantIDs []string
	}{
		{
			name:    "term matches title and keyword across articles",
			filters: Filters{Terms: []string{"cancer"}},
			wantIDs: []string{"art-1", "art-2"},
		},
		{
			name:    "term matches author field",
			filters: Filters{Terms: []string{"lindqvist"}},
			wantIDs: []string{"art-3"},
		},
		{
			name:    "term matches article identifier",
			filters: Filters{Terms: []string{"art-2"}},
			wantIDs: []string{"art-2"},
		},
		{
			name:    "substring containment, not token boundary",
			filters: Filters{Terms: []string{"immuno"}},
			wantIDs: []string{"art-2"},
		},
		{
			name:    "journal filter narrows results",
			filters: Filters{Terms: []string{"cancer", "moss"}, Journal: "j2"},
			wantIDs: []string{"art-3"},
		},
		{
			name:    "date fragments are OR-combined",
			filters: Filters{Terms: []string{"cancer", "moss"}, Dates: []string{"2021", "2020"}},
			wantIDs: []string{"art-1", "art-3"},
		},
		{
			name:    "no match",
			filters: Filters{Terms: []string{"zzzz"}},
			wantIDs: nil,
		},
	}

	s := seededStore(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.QueryArticles(context.Background(), tt.filters, types.SortTitle)
			if err != nil {
				t.Fatal(err)
			}
			got := resultIDs(results)
			sort.Strings(got)
			want := append([]string(nil), tt.wantIDs...)
			sort.Strings(want)
			if !equalIDs(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestQueryArticlesExcludesUnpublished(t *testing.T) {
	s := seededStore(t)

	// art-4 matches "lung" but is unpublished.
	results, err := s.QueryArticles(context.Background(),
		Filters{Terms: []string{"lung"}}, types.SortRelevance)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range results {
		if r.ID == "art-4" {
			t.Error("unpublished article returned")
		}
		if r.Status != types.StatusPublished {
			t.Errorf("article %s has status %d", r.ID, r.Status)
		}
	}
}

func TestQueryArticlesSortModes(t *testing.T) {
	s := seededStore(t)
	recordEvents(t, s, "art-2", types.EventRead, 3)
	recordEvents(t, s, "art-2", types.EventDownload, 2)
	recordEvents(t, s, "art-3", types.EventRead, 1)

	terms := Filters{Terms: []string{"cancer", "moss"}}
	tests := []struct {
		name    string
		sort    types.SortMode
		wantIDs []string
	}{
		{"title ascending", types.SortTitle, []string{"art-2", "art-1", "art-3"}},
		{"publication date ascending", types.SortPublicationDate, []string{"art-2", "art-3", "art-1"}},
		{"recently added descending", types.SortRecentlyAdded, []string{"art-3", "art-2", "art-1"}},
		{"popularity descending", types.SortPopularity, []string{"art-2", "art-3", "art-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.QueryArticles(context.Background(), terms, tt.sort)
			if err != nil {
				t.Fatal(err)
			}
			if got := resultIDs(results); !equalIDs(got, tt.wantIDs) {
				t.Errorf("got %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func TestQueryArticlesAggregates(t *testing.T) {
	s := seededStore(t)
	recordEvents(t, s, "art-1", types.EventRead, 2)
	recordEvents(t, s, "art-1", types.EventDownload, 1)
	recordEvents(t, s, "art-1", types.EventCitation, 3)
	recordEvents(t, s, "art-1", types.EventOther, 1)

	results, err := s.QueryArticles(context.Background(),
		Filters{Terms: []string{"lung"}}, types.SortRelevance)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		// Two contributors and several log rows must still collapse to
		// one row for the article.
		t.Fatalf("got %d rows, want 1", len(results))
	}

	r := results[0]
	if r.Reads != 2 || r.Downloads != 1 || r.Citations != 3 {
		t.Errorf("counts = %d/%d/%d, want 2/1/3", r.Reads, r.Downloads, r.Citations)
	}
	if r.Journal != "Journal of Oncology" {
		t.Errorf("journal = %q", r.Journal)
	}
	if r.FileName != "art-1.pdf" {
		t.Errorf("file name = %q", r.FileName)
	}
	want := "Ana Ferreira->0000-0001, Rui Santos->0000-0002"
	if r.Contributors != want {
		t.Errorf("contributors = %q, want %q", r.Contributors, want)
	}
}

// --- detail tests ---

func TestFetchArticleDetail(t *testing.T) {
	s := seededStore(t)
	recordEvents(t, s, "art-1", types.EventRead, 1)

	d, err := s.FetchArticleDetail(context.Background(), "art-1")
	if err != nil {
		t.Fatal(err)
	}

	if d.ID != "art-1" || d.Title != "Early detection of lung tumours" {
		t.Errorf("unexpected article: %+v", d.Article)
	}
	if d.Reads != 1 {
		t.Errorf("reads = %d, want 1", d.Reads)
	}
	if want := "Ferreira, A.0000-0001 ; Santos, R.0000-0002"; d.Contributors != want {
		t.Errorf("contributors = %q, want %q", d.Contributors, want)
	}
	if want := "Ferreira, Ana ; Santos, Rui"; d.ContributorsFull != want {
		t.Errorf("contributors_full = %q, want %q", d.ContributorsFull, want)
	}
	if want := "Ferreira, A. ; Santos, R."; d.ContributorsShort != want {
		t.Errorf("contributors_short = %q, want %q", d.ContributorsShort, want)
	}
}

func TestFetchArticleDetailNotFound(t *testing.T) {
	s := seededStore(t)

	_, err := s.FetchArticleDetail(context.Background(), "missing")
	if err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFetchArticlesByID(t *testing.T) {
	s := seededStore(t)

	ids := []string{"art-3", "missing", "art-1"}
	results, err := s.FetchArticlesByID(context.Background(), ids)
	if err != nil {
		t.Fatal(err)
	}

	// Input order preserved, unknown identifier skipped.
	if got := resultIDs(results); !equalIDs(got, []string{"art-3", "art-1"}) {
		t.Errorf("got %v", got)
	}
}

// --- event tests ---

func TestInsertEvent(t *testing.T) {
	s := seededStore(t)

	if err := s.InsertEvent(context.Background(), "art-1", "actor-7", types.EventRead); err != nil {
		t.Fatal(err)
	}
	// Appends are unconditional: a duplicate submission counts twice.
	if err := s.InsertEvent(context.Background(), "art-1", "actor-7", types.EventRead); err != nil {
		t.Fatal(err)
	}

	d, err := s.FetchArticleDetail(context.Background(), "art-1")
	if err != nil {
		t.Fatal(err)
	}
	if d.Reads != 2 {
		t.Errorf("reads = %d, want 2", d.Reads)
	}
}

func TestInsertEventUnknownArticle(t *testing.T) {
	s := seededStore(t)

	err := s.InsertEvent(context.Background(), "missing", "actor-7", types.EventRead)
	if err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestInsertEventInvalidKind(t *testing.T) {
	s := seededStore(t)

	if err := s.InsertEvent(context.Background(), "art-1", "actor-7", "bogus"); err == nil {
		t.Fatal("expected error for invalid kind")
	}
}

// --- export tests ---

func TestExportYAML(t *testing.T) {
	s := seededStore(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")

	if err := s.ExportYAML(context.Background(), path); err != nil {
		t.Fatal(err)
	}

	entries, err := s.exportEntries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// Published articles only, ordered by identifier.
	if got := resultIDs(entries); !equalIDs(got, []string{"art-1", "art-2", "art-3"}) {
		t.Errorf("got %v", got)
	}
}
