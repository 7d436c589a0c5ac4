// Package app wires the dashboard service together: configuration,
// logging, OpenTelemetry, the dataset/dashboard/export services, the
// websocket hub and the HTTP router.
//
// The Application container owns the lifecycle. NewApplication builds the
// full dependency graph, Run starts the server plus the dataset watcher
// and blocks until an interrupt, and Stop drains everything within the
// configured shutdown timeout.
package app
