// Package app wires the HTTP server together: configuration, logging,
// OpenTelemetry, the WebSocket hub, the data service and the chi router.
// cmd/web stays a thin shim over this package.
package app
