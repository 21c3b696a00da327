// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recommend serves related-article recommendations from two
// precomputed similarity matrices (title-based and overview-based)
// sharing one article ordering. Matrices are loaded once at startup and
// are read-only afterwards, so any number of requests may read them
// concurrently without synchronization.
package recommend

import (
	"fmt"
	"math"
	"os"

	"go.yaml.in/yaml/v3"
)

// tolerance for the unit-diagonal and symmetry checks.
const epsilon = 1e-6

// Matrix is a square, symmetric similarity matrix over a fixed article
// ordering. Position i refers to the article at ArticleIDs[i].
type Matrix struct {
	ids   []string
	index map[string]int
	rows  [][]float64
}

// matrixFile is the on-disk YAML layout.
type matrixFile struct {
	ArticleIDs []string    `yaml:"article_ids"`
	Rows       [][]float64 `yaml:"rows"`
}

// LoadMatrix reads and validates a similarity matrix from a YAML file:
// square, one row per article identifier, unit diagonal, symmetric.
func LoadMatrix(path string) (*Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading matrix file: %w", err)
	}

	var mf matrixFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parsing matrix file %s: %w", path, err)
	}

	m, err := newMatrix(mf.ArticleIDs, mf.Rows)
	if err != nil {
		return nil, fmt.Errorf("matrix %s: %w", path, err)
	}
	return m, nil
}

// newMatrix validates the raw data and builds the identifier index.
func newMatrix(ids []string, rows [][]float64) (*Matrix, error) {
	n := len(ids)
	if n == 0 {
		return nil, fmt.Errorf("no article identifiers")
	}
	if len(rows) != n {
		return nil, fmt.Errorf("%d rows for %d article identifiers", len(rows), n)
	}

	index := make(map[string]int, n)
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("empty article identifier at position %d", i)
		}
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("duplicate article identifier %s", id)
		}
		index[id] = i
	}

	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d entries, want %d", i, len(row), n)
		}
		if math.Abs(row[i]-1.0) > epsilon {
			return nil, fmt.Errorf("diagonal entry (%d,%d) is %v, want 1.0", i, i, row[i])
		}
		for j := 0; j < i; j++ {
			if math.Abs(row[j]-rows[j][i]) > epsilon {
				return nil, fmt.Errorf("asymmetric entries at (%d,%d)", i, j)
			}
		}
	}

	return &Matrix{ids: ids, index: index, rows: rows}, nil
}

// LoadPair loads the title and overview matrices and verifies they cover
// the identical article ordering: position i in one must refer to the
// same article as position i in the other.
func LoadPair(titlePath, overviewPath string) (titles, overviews *Matrix, err error) {
	titles, err = LoadMatrix(titlePath)
	if err != nil {
		return nil, nil, fmt.Errorf("title matrix: %w", err)
	}
	overviews, err = LoadMatrix(overviewPath)
	if err != nil {
		return nil, nil, fmt.Errorf("overview matrix: %w", err)
	}

	if len(titles.ids) != len(overviews.ids) {
		return nil, nil, fmt.Errorf("matrix dimensions differ: %d vs %d", len(titles.ids), len(overviews.ids))
	}
	for i, id := range titles.ids {
		if overviews.ids[i] != id {
			return nil, nil, fmt.Errorf("matrices disagree at position %d: %s vs %s", i, id, overviews.ids[i])
		}
	}
	return titles, overviews, nil
}

// Size returns the number of articles in the index space.
func (m *Matrix) Size() int { return len(m.ids) }

// IndexOf returns the row index for an article identifier.
func (m *Matrix) IndexOf(id string) (int, bool) {
	i, ok := m.index[id]
	return i, ok
}

// IDAt returns the article identifier at position i.
func (m *Matrix) IDAt(i int) string { return m.ids[i] }

// At returns the similarity score at (i, j).
func (m *Matrix) At(i, j int) float64 { return m.rows[i][j] }
