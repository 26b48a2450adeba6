package handlers

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"media-catalog/internal/logging"
	"media-catalog/internal/media"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONStatus writes v with the given status code.
func writeJSONStatus(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, v)
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSONStatus(w, statusCode, map[string]string{"error": message})
}

// writeCatalogError maps catalog errors to HTTP status codes.
func writeCatalogError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, media.ErrNotFound):
		writeJSONError(w, "Item not found", http.StatusNotFound)
	case errors.Is(err, fs.ErrExist):
		writeJSONError(w, "An item with that name already exists", http.StatusConflict)
	default:
		logging.Error("%s failed: %v", op, err)
		writeJSONError(w, "Failed to "+op, http.StatusInternalServerError)
	}
}
