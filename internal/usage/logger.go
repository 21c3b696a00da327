// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package usage records read/download/citation events against the
// catalog and orchestrates the read flow: append the event, fetch the
// enriched article detail, then compute recommendations.
package usage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pdiddy/article-catalog/pkg/types"
)

// ErrMissingArticleID reports a request without the required article
// identifier. It is rejected before any store work.
var ErrMissingArticleID = errors.New("article_id must be provided")

// Store is the persistence surface the logger consumes.
type Store interface {
	InsertEvent(ctx context.Context, articleID, actorID string, kind types.EventKind) error
	FetchArticleDetail(ctx context.Context, articleID string) (types.ArticleDetail, error)
}

// Recommender computes the related-article ranking for a source article.
type Recommender interface {
	Recommend(ctx context.Context, articleID string) ([]types.RankedResult, error)
}

// Logger appends usage events. Appends are unconditional: duplicate
// submissions produce duplicate counted events.
type Logger struct {
	store Store
	rec   Recommender
	log   zerolog.Logger

	// mu guards locks; one mutex per article keeps the read flow
	// (append, detail, recommend) sequenced per article. Entries are
	// never freed; the catalog bounds the map size.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLogger returns a usage logger over store, with rec serving the
// read-triggered recommendations.
func NewLogger(store Store, rec Recommender, log zerolog.Logger) *Logger {
	return &Logger{
		store: store,
		rec:   rec,
		log:   log,
		locks: make(map[string]*sync.Mutex),
	}
}

// Record appends one usage event of the given kind.
func (l *Logger) Record(ctx context.Context, articleID, actorID string, kind types.EventKind) error {
	if articleID == "" {
		return ErrMissingArticleID
	}
	if err := l.store.InsertEvent(ctx, articleID, actorID, kind); err != nil {
		return fmt.Errorf("recording %s event: %w", kind, err)
	}
	l.log.Info().
		Str("article_id", articleID).
		Str("actor_id", actorID).
		Str("kind", string(kind)).
		Msg("usage event recorded")
	return nil
}

// ReadReceipt is the outcome of a mark-read operation: the enriched
// article detail and the full recommendation ranking. The source article
// is the head of Recommendations; display layers drop it.
type ReadReceipt struct {
	Detail          types.ArticleDetail
	Recommendations []types.RankedResult
}

// MarkRead appends a read event, fetches the article detail, and
// computes recommendations, in that order. If the append fails nothing
// else runs, so the counts a subsequent consumer sees always include the
// event just written. The sequence holds the per-article lock so
// concurrent reads of the same article do not interleave.
func (l *Logger) MarkRead(ctx context.Context, articleID, actorID string) (ReadReceipt, error) {
	if articleID == "" {
		return ReadReceipt{}, ErrMissingArticleID
	}

	lock := l.articleLock(articleID)
	lock.Lock()
	defer lock.Unlock()

	if err := l.store.InsertEvent(ctx, articleID, actorID, types.EventRead); err != nil {
		return ReadReceipt{}, fmt.Errorf("recording read event: %w", err)
	}

	detail, err := l.store.FetchArticleDetail(ctx, articleID)
	if err != nil {
		return ReadReceipt{}, fmt.Errorf("fetching article detail: %w", err)
	}

	recs, err := l.rec.Recommend(ctx, articleID)
	if err != nil {
		return ReadReceipt{}, err
	}

	l.log.Info().
		Str("article_id", articleID).
		Str("actor_id", actorID).
		Int("recommendations", len(recs)).
		Msg("read recorded")

	return ReadReceipt{Detail: detail, Recommendations: recs}, nil
}

func (l *Logger) articleLock(articleID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[articleID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[articleID] = lock
	}
	return lock
}
