// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/article-catalog/pkg/types"
)

// FetchArticleDetail returns the enriched projection for one article:
// journal, file, usage aggregates, and the contributor display string in
// all three formats. Returns ErrNotFound when the identifier is absent.
func (s *Store) FetchArticleDetail(ctx context.Context, articleID string) (types.ArticleDetail, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	const q = `
	SELECT a.article_id, a.title, a.author, a.keyword, a.publication_date,
		a.date_added, a.status, a.journal_id,
		COALESCE(j.journal, ''), COALESCE(f.file_name, ''),
		COALESCE(l.total_reads, 0), COALESCE(l.total_downloads, 0),
		COALESCE(l.total_citations, 0),
		COALESCE(c.contributors, ''), COALESCE(c.contributors_full, ''),
		COALESCE(c.contributors_short, '')
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
			group_concat(lastname || ', ' || substr(firstname, 1, 1) || '.' || orcid, ' ; ') AS contributors,
			group_concat(lastname || ', ' || firstname, ' ; ') AS contributors_full,
			group_concat(lastname || ', ' || substr(firstname, 1, 1) || '.', ' ; ') AS contributors_short
		FROM contributors GROUP BY article_id
	) c ON a.article_id = c.article_id
	WHERE a.article_id = ?`

	var d types.ArticleDetail
	err := s.db.QueryRowContext(ctx, q, articleID).Scan(
		&d.ID, &d.Title, &d.Author, &d.Keyword, &d.PublicationDate,
		&d.DateAdded, &d.Status, &d.JournalID,
		&d.Journal, &d.FileName,
		&d.Reads, &d.Downloads, &d.Citations,
		&d.Contributors, &d.ContributorsFull, &d.ContributorsShort,
	)
	if err == sql.ErrNoRows {
		return types.ArticleDetail{}, ErrNotFound
	}
	if err != nil {
		return types.ArticleDetail{}, fmt.Errorf("fetching article %s: %w", articleID, err)
	}
	return d, nil
}

// FetchArticlesByID returns the listed articles in the order of ids.
// Identifiers absent from the catalog are skipped; the recommendation
// index space may cover articles since removed from the store.
func (s *Store) FetchArticlesByID(ctx context.Context, ids []string) ([]types.RankedResult, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	q := listProjection + "\n\tWHERE a.article_id IN (" + placeholders + ")"
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying articles by id: %w", err)
	}
	defer rows.Close()

	fetched, err := scanResults(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]types.RankedResult, len(fetched))
	for _, r := range fetched {
		byID[r.ID] = r
	}

	ordered := make([]types.RankedResult, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered, nil
}

// scanResults reads listing rows into RankedResults.
func scanResults(rows *sql.Rows) ([]types.RankedResult, error) {
	var results []types.RankedResult
	for rows.Next() {
		var r types.RankedResult
		if err := rows.Scan(
			&r.ID, &r.Title, &r.Author, &r.Keyword, &r.PublicationDate,
			&r.DateAdded, &r.Status, &r.JournalID,
			&r.Journal, &r.FileName,
			&r.Reads, &r.Downloads, &r.Citations,
			&r.Contributors,
		); err != nil {
			return nil, fmt.Errorf("scanning article row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
