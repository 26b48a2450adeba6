package media

import (
	"time"

	"media-catalog/internal/mediatypes"
)

// MediaItem is one media file as seen by a listing or accessor. Items are
// built per call and never cached.
type MediaItem struct {
	Title string
	// ID is the externally addressable identifier (see IDScheme).
	ID   string
	Date time.Time
	// Tags is the free-form tag string from the metadata store, if any.
	Tags string
}

// Type derives the media type from the identifier. It is not stored, so
// changing the identifier's suffix changes the type.
func (m MediaItem) Type() mediatypes.MediaType {
	return mediatypes.Classify(m.ID)
}

// MediaGroup is a labelled run of items sharing a calendar day or leading
// letter. A group always holds at least one item.
type MediaGroup struct {
	Title string
	Items []MediaItem
}
