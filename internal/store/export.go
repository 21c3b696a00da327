// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/article-catalog/pkg/types"
)

// ExportYAML writes every published article, with aggregates and
// contributor strings, to path as YAML ordered by identifier.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context) ([]types.RankedResult, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	q := listProjection + "\n\tWHERE a.status = 1\n\tORDER BY a.article_id"
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}
