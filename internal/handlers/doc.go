// Package handlers provides the HTTP API of the media catalog.
//
// It includes handlers for:
//   - Grouped listings filtered by media type and tag
//   - Reading, updating, deleting and uploading single items
//   - Serving item content with range support
//   - Tag usage counts when a metadata store is configured
//   - Health, liveness, readiness and version probes
//
// Items are addressed by the id query parameter rather than a path segment
// so absolute identifiers survive router path cleaning.
package handlers
