// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/article-catalog/pkg/types"
)

// FormatTable writes results as a human-readable table to w.
func FormatTable(out types.SearchResults, w io.Writer) {
	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-12s  %-50s  %-12s  %-6s  %-6s\n",
		"Rank", "ID", "Title", "Published", "Reads", "Terms")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, r := range out.Results {
		title := r.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-12s  %-50s  %-12s  %-6d  %-6d\n",
			i+1, r.ID, title, r.PublicationDate, r.Reads, len(r.Contains))
	}

	fmt.Fprintf(w, "\n%d results\n", out.Total)
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(out types.SearchResults, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
