package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"media-catalog/internal/filesystem"
	"media-catalog/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// readinessTimeout bounds the metadata store ping.
const readinessTimeout = 2 * time.Second

// HealthResponse contains the health check response
type HealthResponse struct {
	Status        string         `json:"status"`
	Ready         bool           `json:"ready"`
	Version       string         `json:"version"`
	Uptime        string         `json:"uptime"`
	MediaDir      string         `json:"mediaDir"`
	MetadataStore bool           `json:"metadataStore"`
	Error         string         `json:"error,omitempty"`
	MediaFiles    map[string]int `json:"mediaFiles,omitempty"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// checkReady verifies that the media root is a readable directory and the
// metadata store, if any, answers.
func (h *Handlers) checkReady(ctx context.Context) error {
	info, err := filesystem.StatWithRetry(h.manager.Root(), filesystem.DefaultRetryConfig())
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errNotDirectory
	}
	if h.tags != nil {
		ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
		defer cancel()
		if err := h.tags.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

// HealthCheck returns the health status of the service
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:        statusHealthy,
		Ready:         true,
		Version:       startup.Version,
		Uptime:        time.Since(h.startTime).Round(time.Second).String(),
		MediaDir:      h.manager.Root(),
		MetadataStore: h.manager.HasMetadataStore(),
		GoVersion:     runtime.Version(),
		NumCPU:        runtime.NumCPU(),
		NumGoroutine:  runtime.NumGoroutine(),
	}

	if err := h.checkReady(r.Context()); err != nil {
		response.Status = statusDegraded
		response.Ready = false
		response.Error = err.Error()
		writeJSONStatus(w, http.StatusServiceUnavailable, response)
		return
	}

	if counts, err := h.manager.CountByType(r.Context()); err == nil {
		response.MediaFiles = counts
	}

	writeJSONStatus(w, http.StatusOK, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{
			"status": "alive",
		})
	}
}

// ReadinessCheck returns 200 only when the service is ready to accept traffic
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.checkReady(r.Context()); err != nil {
		writeJSONStatus(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSONStatus(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
