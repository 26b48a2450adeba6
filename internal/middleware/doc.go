// Package middleware provides HTTP middleware for the media catalog server.
//
// It includes:
//   - Request identifiers (X-Request-ID, generated as UUIDs when absent)
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics labelled by route template
package middleware
