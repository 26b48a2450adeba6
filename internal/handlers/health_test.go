package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-catalog/internal/startup"
)

func TestHealthCheck(t *testing.T) {
	env := setupTestEnv(t, true)

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, statusHealthy, resp.Status)
	assert.True(t, resp.Ready)
	assert.True(t, resp.MetadataStore)
	assert.Equal(t, env.root, resp.MediaDir)
	assert.Equal(t, 2, resp.MediaFiles["image"])
	assert.Equal(t, 1, resp.MediaFiles["mp4"])
}

func TestHealthCheckDegradedWhenRootMissing(t *testing.T) {
	env := setupTestEnv(t, false)
	require.NoError(t, os.RemoveAll(env.root))

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, statusDegraded, resp.Status)
	assert.False(t, resp.Ready)
	assert.NotEmpty(t, resp.Error)

	rr = env.do(t, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestReadinessCheckClosedStore(t *testing.T) {
	env := setupTestEnv(t, true)

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	require.NoError(t, env.store.Close())
	rr = env.do(t, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestLivenessCheck(t *testing.T) {
	env := setupTestEnv(t, false)

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/livez", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"alive"}`, rr.Body.String())

	rr = env.do(t, httptest.NewRequest(http.MethodHead, "/livez", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestGetVersion(t *testing.T) {
	env := setupTestEnv(t, false)

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/version", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var info startup.BuildInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.Equal(t, startup.Version, info.Version)
}

func TestMethodNotAllowed(t *testing.T) {
	env := setupTestEnv(t, false)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/media"},
		{http.MethodPatch, "/api/item"},
		{http.MethodGet, "/api/items"},
		{http.MethodDelete, "/api/tags"},
	} {
		rr := env.do(t, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, "%s %s", tc.method, tc.path)
	}

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/api/nothing", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
