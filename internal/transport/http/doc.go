// Package http contains the chi HTTP handlers for the chart API. Handlers
// validate input, delegate to the service layer and render JSON payloads via
// chi/render; error responses go through the shared ErrorHandler.
package http
