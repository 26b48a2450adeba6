package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

var errNotDirectory = errors.New("media directory is not a directory")

// Router registers every route on a new mux.Router. Middleware is left to
// the caller.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()

	// Full paths on the root router so a known path with the wrong method
	// answers 405 rather than 404.
	r.HandleFunc("/api/media", h.ListMedia).Methods(http.MethodGet).Name("list-media")
	r.HandleFunc("/api/item", h.GetItem).Methods(http.MethodGet).Name("get-item")
	r.HandleFunc("/api/item", h.UpdateItem).Methods(http.MethodPut).Name("update-item")
	r.HandleFunc("/api/item", h.DeleteItem).Methods(http.MethodDelete).Name("delete-item")
	r.HandleFunc("/api/items", h.CreateItem).Methods(http.MethodPost).Name("create-item")
	r.HandleFunc("/api/content", h.GetContent).Methods(http.MethodGet, http.MethodHead).Name("content")
	r.HandleFunc("/api/tags", h.GetTags).Methods(http.MethodGet).Name("tags")

	r.HandleFunc("/healthz", h.HealthCheck).Methods(http.MethodGet).Name("health")
	r.HandleFunc("/livez", h.LivenessCheck).Methods(http.MethodGet, http.MethodHead).Name("liveness")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods(http.MethodGet).Name("readiness")
	r.HandleFunc("/version", h.GetVersion).Methods(http.MethodGet).Name("version")

	return r
}
