// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestSearchQueryTerms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single term", "Cancer", []string{"cancer"}},
		{"comma separated", "cancer, Lung", []string{"cancer", "lung"}},
		{"empty fragments dropped", " , cancer,, ", []string{"cancer"}},
		{"all empty", " , ,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchQuery{Input: tt.input}.Terms()
			if len(got) != len(tt.want) {
				t.Fatalf("Terms() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Terms()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestUsageCountsPopularity(t *testing.T) {
	c := UsageCounts{Reads: 3, Downloads: 2, Citations: 9}
	// Citations do not contribute to popularity.
	if got := c.Popularity(); got != 5 {
		t.Errorf("Popularity() = %d, want 5", got)
	}
}

func TestSortModeKnown(t *testing.T) {
	for _, m := range []SortMode{SortRelevance, SortTitle, SortPublicationDate, SortRecentlyAdded, SortPopularity} {
		if !m.Known() {
			t.Errorf("%q not recognized", m)
		}
	}
	if SortMode("bogus").Known() {
		t.Error("bogus mode recognized")
	}
}
