// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/article-catalog/pkg/types"
)

// Filters holds the search filter dimensions. Terms must be normalized
// (lower-cased, trimmed) by the caller; matching is case-insensitive
// substring containment on every dimension.
type Filters struct {
	// Terms is the disjunction over title, keyword, author, and
	// identifier. At least one term is required.
	Terms []string

	// Dates restricts publication dates; fragments are OR-combined.
	// Empty means no date restriction.
	Dates []string

	// Journal restricts the journal reference. Empty matches all.
	Journal string
}

// listProjection is the shared column list for catalog listings: the
// article row, its journal and file, usage aggregates, and the
// contributor display string. Aggregates come from grouped subqueries so
// one-to-many joins never inflate counts or duplicate article rows.
const listProjection = `
	SELECT a.article_id, a.title, a.author, a.keyword, a.publication_date,
		a.date_added, a.status, a.journal_id,
		COALESCE(j.journal, ''), COALESCE(f.file_name, ''),
		COALESCE(l.total_reads, 0), COALESCE(l.total_downloads, 0),
		COALESCE(l.total_citations, 0),
		COALESCE(c.contributors, '')
	FROM articles a
	LEFT JOIN journals j ON a.journal_id = j.journal_id
	LEFT JOIN article_files f ON a.article_id = f.article_id
	LEFT JOIN (
		SELECT article_id,
			SUM(kind = 'read') AS total_reads,
			SUM(kind = 'download') AS total_downloads,
			SUM(kind = 'citation') AS total_citations
		FROM logs GROUP BY article_id
	) l ON a.article_id = l.article_id
	LEFT JOIN (
		SELECT article_id,
			group_concat(firstname || ' ' || lastname || '->' || orcid, ', ') AS contributors
		FROM contributors GROUP BY article_id
	) c ON a.article_id = c.article_id`

// QueryArticles returns the published articles matching f, ordered by
// sort. Relevance mode returns rows in store order; the search engine
// re-ranks them. Clause text and parameters are derived together from
// the normalized inputs, so placeholder and argument counts cannot drift.
func (s *Store) QueryArticles(ctx context.Context, f Filters, sort types.SortMode) ([]types.RankedResult, error) {
	if len(f.Terms) == 0 {
		return nil, fmt.Errorf("at least one search term is required")
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(listProjection)
	qb.WriteString("\n\tWHERE ")

	if len(f.Dates) == 0 {
		qb.WriteString("1=1")
	} else {
		qb.WriteString("(")
		for i, d := range f.Dates {
			if i > 0 {
				qb.WriteString(" OR ")
			}
			qb.WriteString("a.publication_date LIKE ?")
			args = append(args, contains(d))
		}
		qb.WriteString(")")
	}

	qb.WriteString("\n\tAND a.journal_id LIKE ?")
	args = append(args, contains(f.Journal))

	qb.WriteString("\n\tAND (")
	for i, term := range f.Terms {
		if i > 0 {
			qb.WriteString(" OR ")
		}
		qb.WriteString("(a.title LIKE ? OR a.keyword LIKE ? OR a.author LIKE ? OR a.article_id LIKE ?)")
		p := contains(term)
		args = append(args, p, p, p, p)
	}
	qb.WriteString(")")

	qb.WriteString("\n\tAND a.status = 1")

	switch sort {
	case types.SortTitle:
		qb.WriteString("\n\tORDER BY a.title ASC")
	case types.SortPublicationDate:
		qb.WriteString("\n\tORDER BY a.publication_date ASC")
	case types.SortRecentlyAdded:
		qb.WriteString("\n\tORDER BY a.date_added DESC")
	case types.SortPopularity:
		qb.WriteString("\n\tORDER BY (COALESCE(l.total_reads, 0) + COALESCE(l.total_downloads, 0)) DESC")
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// contains wraps a fragment in LIKE wildcards. SQLite LIKE is
// case-insensitive for ASCII, matching the normalized lower-case terms.
func contains(fragment string) string {
	return "%" + fragment + "%"
}
