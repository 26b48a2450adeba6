package handlers

import (
	"context"
	"time"

	"media-catalog/internal/media"
	"media-catalog/internal/metastore"
)

// TagSource reports tag usage. *metastore.Store satisfies it.
type TagSource interface {
	TagCounts(ctx context.Context) ([]metastore.TagCount, error)
	Ping(ctx context.Context) error
}

// Handlers serves the catalog API.
type Handlers struct {
	manager        *media.Manager
	tags           TagSource
	maxUploadBytes int64
	startTime      time.Time
}

// New builds the handlers. tags may be nil when no metadata store is
// configured.
func New(manager *media.Manager, tags TagSource, maxUploadBytes int64) *Handlers {
	return &Handlers{
		manager:        manager,
		tags:           tags,
		maxUploadBytes: maxUploadBytes,
		startTime:      time.Now(),
	}
}
