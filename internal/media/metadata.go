package media

import (
	"context"
	"strings"
)

// Metadata is what a MetadataStore keeps per identifier.
type Metadata struct {
	Title string
	Tags  string
}

// MetadataStore persists titles and tags outside the media files. The
// Manager works without one; with one configured it reads titles and tags
// from it, writes them on create/update, drops them on delete and enforces
// qualifier tag filtering.
type MetadataStore interface {
	// Load returns the metadata for id. ok is false when nothing is stored.
	Load(ctx context.Context, id string) (md Metadata, ok bool, err error)
	Save(ctx context.Context, id string, md Metadata) error
	Delete(ctx context.Context, id string) error
}

// NormalizeTag trims and lower-cases a tag.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// SplitTags splits a comma separated tag string into normalized tags,
// dropping empties and duplicates while keeping first-seen order.
func SplitTags(tags string) []string {
	return normalizeTags(strings.Split(tags, ","))
}

// JoinTags is the inverse of SplitTags.
func JoinTags(tags []string) string {
	return strings.Join(normalizeTags(tags), ",")
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = NormalizeTag(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
