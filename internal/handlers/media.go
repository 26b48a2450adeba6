package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"media-catalog/internal/logging"
	"media-catalog/internal/media"
	"media-catalog/internal/mediatypes"
)

// ItemResponse is the JSON form of a media item.
type ItemResponse struct {
	Title    string               `json:"title"`
	ID       string               `json:"id"`
	Date     time.Time            `json:"date"`
	Tags     string               `json:"tags"`
	Type     mediatypes.MediaType `json:"type"`
	MimeType string               `json:"mimeType"`
}

// GroupResponse is the JSON form of a media group.
type GroupResponse struct {
	Title string         `json:"title"`
	Items []ItemResponse `json:"items"`
}

// UpdateRequest carries the fields of an item update. Omitted fields keep
// their current value.
type UpdateRequest struct {
	Title *string    `json:"title"`
	Date  *time.Time `json:"date"`
	Tags  *string    `json:"tags"`
}

// uploadMatcher accepts only names a listing would show.
var uploadMatcher = media.NewMatcher(media.NewQualifier().WithTypes(mediatypes.Listable...))

func toItemResponse(item media.MediaItem) ItemResponse {
	return ItemResponse{
		Title:    item.Title,
		ID:       item.ID,
		Date:     item.Date,
		Tags:     item.Tags,
		Type:     item.Type(),
		MimeType: mediatypes.MimeType(item.ID),
	}
}

// parseQualifier builds a qualifier from the types, tags and sort query
// parameters. Without a types parameter every listable type is selected.
func parseQualifier(r *http.Request) (media.Qualifier, error) {
	q := media.NewQualifier()
	query := r.URL.Query()

	if raw := query.Get("types"); raw != "" {
		var types []mediatypes.MediaType
		for _, name := range strings.Split(raw, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			t, err := mediatypes.ParseMediaType(name)
			if err != nil {
				return q, err
			}
			types = append(types, t)
		}
		q = q.WithTypes(types...)
	} else {
		q = q.WithTypes(mediatypes.Listable...)
	}

	if raw := query.Get("tags"); raw != "" {
		q = q.WithTags(strings.Split(raw, ",")...)
	}

	if raw := query.Get("sort"); raw != "" {
		order, err := media.ParseSortOrder(raw)
		if err != nil {
			return q, err
		}
		q = q.WithSortOrder(order)
	}

	return q, nil
}

// ListMedia returns the grouped listing for the requested qualifier.
func (h *Handlers) ListMedia(w http.ResponseWriter, r *http.Request) {
	q, err := parseQualifier(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	groups, err := h.manager.ListMediaItems(r.Context(), q)
	if err != nil {
		writeCatalogError(w, "list media", err)
		return
	}

	response := make([]GroupResponse, len(groups))
	for i, g := range groups {
		items := make([]ItemResponse, len(g.Items))
		for j, item := range g.Items {
			items[j] = toItemResponse(item)
		}
		response[i] = GroupResponse{Title: g.Title, Items: items}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, response)
}

func requireID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSONError(w, "id is required", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

// GetItem returns a single item.
func (h *Handlers) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	item, err := h.manager.GetMediaItem(r.Context(), id)
	if err != nil {
		writeCatalogError(w, "get item", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, toItemResponse(item))
}

// UpdateItem applies an UpdateRequest and returns the updated item.
func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.manager.GetMediaItem(r.Context(), id)
	if err != nil {
		writeCatalogError(w, "update item", err)
		return
	}

	// The stored date is the current one; only a new date touches the file.
	update := media.MediaItem{ID: item.ID, Title: item.Title, Tags: item.Tags}
	if req.Title != nil {
		update.Title = *req.Title
	}
	if req.Tags != nil {
		update.Tags = *req.Tags
	}
	if req.Date != nil {
		update.Date = *req.Date
	}

	if err := h.manager.UpdateMediaItem(r.Context(), update); err != nil {
		writeCatalogError(w, "update item", err)
		return
	}

	updated, err := h.manager.GetMediaItem(r.Context(), item.ID)
	if err != nil {
		writeCatalogError(w, "update item", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, toItemResponse(updated))
}

// DeleteItem removes an item. Missing items are not an error.
func (h *Handlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	if err := h.manager.DeleteMediaItem(r.Context(), id); err != nil {
		writeCatalogError(w, "delete item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateItem stores an uploaded file. The multipart form carries the file
// in "file" and optionally "name", "title", "tags" and "date" (RFC 3339).
func (h *Handlers) CreateItem(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadBytes > 0 {
		if r.ContentLength > h.maxUploadBytes {
			writeJSONError(w, "Upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSONError(w, "Upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		writeJSONError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			logging.Warn("failed to remove multipart temp files: %v", err)
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, "file is required", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		name = header.Filename
	}
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if !uploadMatcher.MatchName(name) {
		writeJSONError(w, "Unsupported media type", http.StatusUnsupportedMediaType)
		return
	}

	item := &media.MediaItem{
		ID:    name,
		Title: r.FormValue("title"),
		Tags:  r.FormValue("tags"),
	}
	if item.Title == "" {
		item.Title = name
	}
	if raw := r.FormValue("date"); raw != "" {
		date, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeJSONError(w, "date must be RFC 3339", http.StatusBadRequest)
			return
		}
		item.Date = date
	}

	if err := h.manager.CreateMediaItem(r.Context(), item, file); err != nil {
		writeCatalogError(w, "create item", err)
		return
	}

	created, err := h.manager.GetMediaItem(r.Context(), item.ID)
	if err != nil {
		writeCatalogError(w, "create item", err)
		return
	}

	w.Header().Set("Location", "/api/item?id="+url.QueryEscape(created.ID))
	writeJSONStatus(w, http.StatusCreated, toItemResponse(created))
}

// GetContent streams the file behind an item. Range and conditional
// requests are handled by http.ServeContent.
func (h *Handlers) GetContent(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	f, item, err := h.manager.OpenContent(r.Context(), id)
	if err != nil {
		writeCatalogError(w, "read content", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn("failed to close %s: %v", id, err)
		}
	}()

	w.Header().Set("Content-Type", mediatypes.MimeType(item.ID))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	http.ServeContent(w, r, path.Base(item.ID), item.Date, f)
}
