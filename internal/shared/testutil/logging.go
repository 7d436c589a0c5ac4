package testutil

import (
	"context"
	"log/slog"
	"sync"
)

// CapturedRecord is one log record seen by a CapturingHandler.
type CapturedRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

type captureStore struct {
	mu      sync.Mutex
	records []CapturedRecord
}

// CapturingHandler is a slog.Handler that stores records in memory so
// tests can assert on structured log output. Clones produced by WithAttrs
// share the same record store.
type CapturingHandler struct {
	store *captureStore
	attrs []slog.Attr
}

// NewCapturingHandler returns a handler and a logger writing to it.
func NewCapturingHandler() (*CapturingHandler, *slog.Logger) {
	h := &CapturingHandler{store: &captureStore{}}
	return h, slog.New(h)
}

func (h *CapturingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *CapturingHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.records = append(h.store.records, CapturedRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

func (h *CapturingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CapturingHandler{
		store: h.store,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *CapturingHandler) WithGroup(string) slog.Handler { return h }

// Records returns a snapshot of everything logged so far.
func (h *CapturingHandler) Records() []CapturedRecord {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return append([]CapturedRecord{}, h.store.records...)
}

// Find returns the first record with the given message.
func (h *CapturingHandler) Find(message string) (CapturedRecord, bool) {
	for _, r := range h.Records() {
		if r.Message == message {
			return r, true
		}
	}
	return CapturedRecord{}, false
}
