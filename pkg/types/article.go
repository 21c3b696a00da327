// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ArticleStatus marks whether an article is visible to readers.
type ArticleStatus int

const (
	StatusUnpublished ArticleStatus = 0
	StatusPublished   ArticleStatus = 1
)

// Article is one catalog entry for a scholarly work. Records are written
// by the ingestion tooling and are read-only to the search and
// recommendation engines.
type Article struct {
	// ID is the stable, unique article identifier.
	ID string `json:"article_id" yaml:"article_id"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Author is the author display field as ingested (free text).
	Author string `json:"author" yaml:"author"`

	// Keyword is the delimited keyword field as ingested.
	Keyword string `json:"keyword" yaml:"keyword"`

	// PublicationDate is the publication date as stored (text, matched
	// by substring in date filters).
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// DateAdded is the catalog ingestion date.
	DateAdded string `json:"date_added" yaml:"date_added"`

	// Status is published/unpublished; only published articles are served.
	Status ArticleStatus `json:"status" yaml:"status"`

	// JournalID references the owning journal.
	JournalID string `json:"journal_id" yaml:"journal_id"`

	// Journal is the journal display name (joined in by the store).
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// FileName is the attached file name, if any.
	FileName string `json:"file_name,omitempty" yaml:"file_name,omitempty"`
}

// Contributor is one named contributor of an article, with a persistent
// identifier. Contributors belong to exactly one article.
type Contributor struct {
	ArticleID string `json:"article_id" yaml:"article_id"`
	FirstName string `json:"firstname" yaml:"firstname"`
	LastName  string `json:"lastname" yaml:"lastname"`
	ORCID     string `json:"orcid" yaml:"orcid"`
}

// EventKind classifies a usage event.
type EventKind string

const (
	EventRead     EventKind = "read"
	EventDownload EventKind = "download"
	EventCitation EventKind = "citation"
	EventOther    EventKind = "other"
)

// ValidKind reports whether k is one of the four recognized event kinds.
func ValidKind(k EventKind) bool {
	switch k {
	case EventRead, EventDownload, EventCitation, EventOther:
		return true
	}
	return false
}

// UsageCounts holds per-article aggregate event counts by kind.
type UsageCounts struct {
	Reads     int `json:"total_reads" yaml:"total_reads"`
	Downloads int `json:"total_downloads" yaml:"total_downloads"`
	Citations int `json:"total_citations" yaml:"total_citations"`
}

// Popularity is the sort key for the popularity ordering.
func (c UsageCounts) Popularity() int { return c.Reads + c.Downloads }

// ArticleDetail is the enriched one-article projection returned for a
// read event: the article plus usage aggregates and the contributor
// display strings in three formats.
type ArticleDetail struct {
	Article     `yaml:",inline"`
	UsageCounts `yaml:",inline"`

	// Contributors is "lastname, F.orcid" entries joined by " ; ".
	Contributors string `json:"contributors" yaml:"contributors"`

	// ContributorsFull is "lastname, firstname" entries joined by " ; ".
	ContributorsFull string `json:"contributors_full" yaml:"contributors_full"`

	// ContributorsShort is "lastname, F." entries joined by " ; ".
	ContributorsShort string `json:"contributors_short" yaml:"contributors_short"`
}
