// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the article catalog:
// articles and contributors, usage events and their aggregates, search
// queries and ranked results, and the service configuration.
package types

import "strings"

// SortMode selects the ordering of search results.
type SortMode string

const (
	// SortRelevance orders by the number of distinct query terms matched
	// (descending). It is the default when no sort parameter is given.
	SortRelevance SortMode = ""

	// SortTitle orders by title, ascending.
	SortTitle SortMode = "title"

	// SortPublicationDate orders by publication date, ascending.
	SortPublicationDate SortMode = "publication-date"

	// SortRecentlyAdded orders by catalog ingestion date, descending.
	SortRecentlyAdded SortMode = "recently-added"

	// SortPopularity orders by reads+downloads, descending.
	SortPopularity SortMode = "popular"
)

// Known reports whether m is one of the defined sort modes.
func (m SortMode) Known() bool {
	switch m {
	case SortRelevance, SortTitle, SortPublicationDate, SortRecentlyAdded, SortPopularity:
		return true
	}
	return false
}

// SearchQuery holds one search request. Input is a comma-separated term
// list; Dates and Journal are optional substring filters.
type SearchQuery struct {
	// Input is the raw free-text query, comma-separated.
	Input string `json:"input"`

	// Dates filters on publication date fragments, OR-combined. Empty
	// means no date restriction.
	Dates []string `json:"dates"`

	// Journal filters on the journal reference. Empty matches all.
	Journal string `json:"journal"`

	// Sort selects the result ordering.
	Sort SortMode `json:"-"`
}

// Terms returns the normalized term list: split on commas, lower-cased,
// trimmed, empties dropped.
func (q SearchQuery) Terms() []string {
	var terms []string
	for _, t := range strings.Split(q.Input, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// RankedResult is an Article enriched with usage aggregates and, for
// relevance ordering, the subset of query terms it matched.
type RankedResult struct {
	Article     `yaml:",inline"`
	UsageCounts `yaml:",inline"`

	// Contributors is "firstname lastname->orcid" entries joined by ", ".
	Contributors string `json:"contributors" yaml:"contributors"`

	// Contains lists the query terms this article matched. Populated by
	// the search engine for relevance ranking only.
	Contains []string `json:"article_contains" yaml:"article_contains,omitempty"`
}

// SearchResults is the successful search response body.
type SearchResults struct {
	Results []RankedResult `json:"results"`
	Total   int            `json:"total"`
}
