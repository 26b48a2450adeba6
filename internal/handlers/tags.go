package handlers

import (
	"net/http"

	"media-catalog/internal/metastore"
)

// GetTags returns every tag in use with its item count. Without a metadata
// store the list is empty.
func (h *Handlers) GetTags(w http.ResponseWriter, r *http.Request) {
	tags := []metastore.TagCount{}
	if h.tags != nil {
		counts, err := h.tags.TagCounts(r.Context())
		if err != nil {
			writeCatalogError(w, "list tags", err)
			return
		}
		tags = append(tags, counts...)
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, tags)
}
