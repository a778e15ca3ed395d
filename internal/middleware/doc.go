// Package middleware provides the HTTP middleware chain for the
// videoflix API.
//
// It includes:
//   - Access logging in W3C extended log field order
//   - Prometheus request metrics with bounded path cardinality
//   - Response compression (gzip) for playlists and JSON
package middleware
