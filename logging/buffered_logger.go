package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// BufferedLogHandler implements slog.Handler and captures log records in
// memory. Tests use it to assert on the confirmations the library emits
// while queueing annotations and composing documents, without touching
// stderr.
//
// Example usage:
//
//	handler := logging.NewBufferedLogHandler(nil)
//	logging.SetLogger(slog.New(handler))
//
//	// ... queue annotations, compose ...
//
//	if handler.Contains("text annotation queued") {
//	    fmt.Println("registration confirmed")
//	}
//
// To filter by level:
//
//	handler := logging.NewBufferedLogHandler(&slog.HandlerOptions{
//	    Level: slog.LevelInfo,
//	})
type BufferedLogHandler struct {
	level  slog.Leveler
	buffer *bytes.Buffer
	mu     sync.Mutex
	attrs  []slog.Attr
	groups []string
}

// record is the JSON shape of one captured log line.
type record struct {
	Level   string   `json:"level"`
	Message string   `json:"message"`
	Time    string   `json:"time"`
	Attrs   []string `json:"attrs,omitempty"`
}

// NewBufferedLogHandler creates a BufferedLogHandler with an empty
// buffer. Pass nil to capture all levels, or provide HandlerOptions to
// set a minimum level.
func NewBufferedLogHandler(opts *slog.HandlerOptions) *BufferedLogHandler {
	h := &BufferedLogHandler{buffer: &bytes.Buffer{}}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled implements slog.Handler. With no configured level every
// record is captured.
func (h *BufferedLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.level == nil {
		return true
	}
	return level >= h.level.Level()
}

// Handle implements slog.Handler. Each record is appended to the buffer
// as one JSON line.
func (h *BufferedLogHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry := record{
		Level:   r.Level.String(),
		Message: r.Message,
		Time:    r.Time.Format(time.DateTime),
	}
	for _, attr := range h.attrs {
		entry.Attrs = append(entry.Attrs, h.qualify(attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		entry.Attrs = append(entry.Attrs, h.qualify(attr))
		return true
	})

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	h.buffer.Write(data)
	h.buffer.WriteByte('\n')
	return nil
}

// qualify renders an attribute with any WithGroup prefixes applied.
func (h *BufferedLogHandler) qualify(attr slog.Attr) string {
	if len(h.groups) == 0 {
		return attr.String()
	}
	return strings.Join(h.groups, ".") + "." + attr.String()
}

// WithAttrs implements slog.Handler. The returned handler shares the
// buffer and carries the given attributes on every subsequent record.
func (h *BufferedLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()

	merged := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(merged, h.attrs)
	merged = append(merged, attrs...)
	return &BufferedLogHandler{
		level:  h.level,
		buffer: h.buffer,
		attrs:  merged,
		groups: h.groups,
	}
}

// WithGroup implements slog.Handler. The returned handler shares the
// buffer and prefixes subsequent attributes with the group name.
func (h *BufferedLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	groups := make([]string, len(h.groups), len(h.groups)+1)
	copy(groups, h.groups)
	groups = append(groups, name)
	return &BufferedLogHandler{
		level:  h.level,
		buffer: h.buffer,
		attrs:  h.attrs,
		groups: groups,
	}
}

// String returns all captured output as a string.
func (h *BufferedLogHandler) String() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buffer.String()
}

// Contains reports whether the captured output contains the substring.
func (h *BufferedLogHandler) Contains(s string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return bytes.Contains(h.buffer.Bytes(), []byte(s))
}

// Len returns the number of captured bytes.
func (h *BufferedLogHandler) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buffer.Len()
}

// Reset discards all captured output.
func (h *BufferedLogHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buffer.Reset()
}
