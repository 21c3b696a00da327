// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pdiddy/article-catalog/pkg/types"
)

// InsertEvent appends one usage event. Events are append-only: there is
// no update or delete path, and duplicate submissions produce duplicate
// counted events. Returns ErrNotFound when the article does not exist.
func (s *Store) InsertEvent(ctx context.Context, articleID, actorID string, kind types.EventKind) error {
	if !types.ValidKind(kind) {
		return fmt.Errorf("invalid event kind %q", kind)
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM articles WHERE article_id = ?`, articleID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking article %s: %w", articleID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO logs (article_id, actor_id, kind) VALUES (?, ?, ?)`,
		articleID, actorID, string(kind),
	)
	if err != nil {
		return fmt.Errorf("inserting %s event for %s: %w", kind, articleID, err)
	}
	return nil
}
