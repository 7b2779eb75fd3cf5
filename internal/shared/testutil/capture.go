// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Record is one captured log entry.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

type recordStore struct {
	mu      sync.Mutex
	records []Record
}

// CaptureHandler is a slog.Handler that retains every record in memory so
// tests can assert on emitted events.
type CaptureHandler struct {
	store *recordStore
	attrs []slog.Attr
}

// NewCaptureHandler creates an empty capture handler.
func NewCaptureHandler() *CaptureHandler {
	return &CaptureHandler{store: &recordStore{}}
}

// NewTestLogger returns a logger whose output is captured by the returned
// handler.
func NewTestLogger() (*slog.Logger, *CaptureHandler) {
	h := NewCaptureHandler()
	return slog.New(h), h
}

// Enabled reports true for every level so tests see debug records too.
func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool { return true }

// Handle stores the record.
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
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
	h.store.records = append(h.store.records, Record{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

// WithAttrs returns a handler that records into the same store with the
// extra attributes applied.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &CaptureHandler{store: h.store, attrs: merged}
}

// WithGroup returns the handler unchanged; grouped attributes are not
// needed by the tests this serves.
func (h *CaptureHandler) WithGroup(string) slog.Handler { return h }

// Records returns a copy of everything captured so far.
func (h *CaptureHandler) Records() []Record {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	out := make([]Record, len(h.store.records))
	copy(out, h.store.records)
	return out
}

// Contains reports whether any captured message contains the substring.
func (h *CaptureHandler) Contains(message string) bool {
	for _, r := range h.Records() {
		if strings.Contains(r.Message, message) {
			return true
		}
	}
	return false
}

// Find returns the first record whose message matches exactly.
func (h *CaptureHandler) Find(message string) (Record, bool) {
	for _, r := range h.Records() {
		if r.Message == message {
			return r, true
		}
	}
	return Record{}, false
}

// Filter returns the captured records at the given level.
func (h *CaptureHandler) Filter(level slog.Level) []Record {
	var out []Record
	for _, r := range h.Records() {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out
}
