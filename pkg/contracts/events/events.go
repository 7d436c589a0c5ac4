// Package events defines the WebSocket message contracts exchanged
// between the dashboard server and its browser clients.
package events

import "time"

// MessageType identifies the kind of event carried by an Envelope.
type MessageType string

const (
	// TypeConnection greets a client right after registration.
	TypeConnection MessageType = "connection"

	// TypeDatasetReloading announces that a dataset reload has started.
	// Pages show a banner until the matching reloaded event arrives.
	TypeDatasetReloading MessageType = "dataset:reloading"

	// TypeDatasetReloaded announces a completed reload together with the
	// new dataset summary.
	TypeDatasetReloaded MessageType = "dataset:reloaded"

	// TypeExportCompleted announces a finished export file.
	TypeExportCompleted MessageType = "export:completed"

	// TypeStatus carries coarse server status updates.
	TypeStatus MessageType = "status"

	// TypeError reports a failed background operation. Clients keep
	// their current view.
	TypeError MessageType = "error"
)

// Envelope is the wire format for every hub message.
type Envelope struct {
	Type      MessageType `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
	TraceID   string      `json:"trace_id,omitempty"`
}

// NewEnvelope stamps a payload with its type and the current time.
func NewEnvelope(msgType MessageType, data interface{}, traceID string) Envelope {
	return Envelope{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
		TraceID:   traceID,
	}
}

// Connected is the payload of a TypeConnection envelope.
type Connected struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	ClientID string `json:"client_id"`
}

// DatasetReloading is the payload of a TypeDatasetReloading envelope.
type DatasetReloading struct {
	Path string `json:"path"`
}

// ExportCompleted is the payload of a TypeExportCompleted envelope.
type ExportCompleted struct {
	Format   string `json:"format"`
	Filename string `json:"filename"`
}

// Status is the payload of a TypeStatus envelope.
type Status struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Error is the payload of a TypeError envelope.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
