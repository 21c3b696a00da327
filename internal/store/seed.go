// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/article-catalog/pkg/types"
)

// Journal is one journal record for seeding.
type Journal struct {
	ID   string `yaml:"journal_id"`
	Name string `yaml:"journal"`
}

// SeedData is the YAML seed file layout consumed by `initdb --seed`.
// An article's FileName, when set, becomes its article_files row.
type SeedData struct {
	Journals     []Journal           `yaml:"journals"`
	Articles     []types.Article     `yaml:"articles"`
	Contributors []types.Contributor `yaml:"contributors"`
}

// LoadSeed reads and parses a YAML seed file.
func LoadSeed(path string) (SeedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SeedData{}, fmt.Errorf("reading seed file: %w", err)
	}
	var seed SeedData
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return SeedData{}, fmt.Errorf("parsing seed file: %w", err)
	}
	return seed, nil
}

// Seed inserts journals, articles, files, and contributors in one
// transaction. Existing rows with the same identifier are replaced.
func (s *Store) Seed(ctx context.Context, seed SeedData) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, j := range seed.Journals {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO journals (journal_id, journal) VALUES (?, ?)`,
			j.ID, j.Name,
		); err != nil {
			return fmt.Errorf("inserting journal %s: %w", j.ID, err)
		}
	}

	for _, a := range seed.Articles {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO articles
				(article_id, title, author, keyword, publication_date, date_added, status, journal_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.Title, a.Author, a.Keyword, a.PublicationDate,
			a.DateAdded, int(a.Status), a.JournalID,
		); err != nil {
			return fmt.Errorf("inserting article %s: %w", a.ID, err)
		}
		if a.FileName != "" {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO article_files (article_id, file_name) VALUES (?, ?)`,
				a.ID, a.FileName,
			); err != nil {
				return fmt.Errorf("inserting file for %s: %w", a.ID, err)
			}
		}
	}

	for _, c := range seed.Contributors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO contributors (article_id, firstname, lastname, orcid) VALUES (?, ?, ?, ?)`,
			c.ArticleID, c.FirstName, c.LastName, c.ORCID,
		); err != nil {
			return fmt.Errorf("inserting contributor for %s: %w", c.ArticleID, err)
		}
	}

	return tx.Commit()
}
