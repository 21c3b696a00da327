// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-catalog/internal/logging"
	"github.com/pdiddy/article-catalog/internal/search"
	"github.com/pdiddy/article-catalog/internal/store"
	"github.com/pdiddy/article-catalog/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [terms]",
	Short: "Search the catalog from the command line",
	Long: `Search runs a catalog query directly against the database. Terms are
comma-separated; matching is case-insensitive substring containment over
title, keyword, author, and identifier. The default ordering is by the
number of distinct terms matched.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("dates", "", "publication date fragments (comma-separated)")
	searchCmd.Flags().String("journal", "", "journal filter fragment")
	searchCmd.Flags().String("sort", "", "sort mode: title, publication-date, recently-added, popular")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := catalogConfig()
	log := logging.New(cfg.Logging)

	s, err := store.New(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	dates, _ := cmd.Flags().GetString("dates")
	journal, _ := cmd.Flags().GetString("journal")
	sortMode, _ := cmd.Flags().GetString("sort")
	asJSON, _ := cmd.Flags().GetBool("json")

	query := types.SearchQuery{
		Input:   args[0],
		Journal: journal,
		Sort:    types.SortMode(sortMode),
	}
	for _, d := range strings.Split(dates, ",") {
		if d = strings.TrimSpace(d); d != "" {
			query.Dates = append(query.Dates, d)
		}
	}

	engine := search.NewEngine(s, log)
	results, err := engine.Search(context.Background(), query)

	var noResults *search.NoResultsError
	if errors.As(err, &noResults) {
		fmt.Println(noResults.Error())
		return nil
	}
	if err != nil {
		return err
	}

	if asJSON {
		return search.FormatJSON(results, os.Stdout)
	}
	search.FormatTable(results, os.Stdout)
	return nil
}
