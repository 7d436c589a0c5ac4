// Package http contains the HTTP handlers for the dashboard service.
//
// Each handler owns one resource family and exposes a Routes() chi.Router
// that the application mounts. Handlers parse and validate input, delegate
// to the services layer, and render either the JSON success envelope or an
// RFC 7807 problem via the shared error handler. Chart and page handlers
// render go-echarts HTML instead of JSON.
package http
