// Package logging builds the application logger: structured JSON to a
// rotated file, teed into an in-memory ring the TUI debug view reads.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

const ringSize = 500

// Ring keeps the most recent log lines in memory.
type Ring struct {
	mu    sync.Mutex
	lines []string
	max   int
}

func newRing(max int) *Ring {
	return &Ring{max: max}
}

func (r *Ring) add(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
	if len(r.lines) > r.max {
		r.lines = r.lines[len(r.lines)-r.max:]
	}
}

// Lines returns a copy of the buffered lines, oldest first.
func (r *Ring) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Clear empties the buffer. The log file is untouched.
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = nil
}

// New returns a logger writing JSON to path (rotated by lumberjack) and
// the ring that mirrors it for on-screen display.
func New(path string, level slog.Level) (*slog.Logger, *Ring) {
	ring := newRing(ringSize)

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	inner := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})

	logger := slog.New(&teeHandler{inner: inner, ring: ring, level: level})
	return logger, ring
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type teeHandler struct {
	inner slog.Handler
	ring  *Ring
	level slog.Level
	attrs []slog.Attr
}

func (h *teeHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *teeHandler) Handle(ctx context.Context, rec slog.Record) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s %s", rec.Time.Format("15:04:05"), rec.Level, rec.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	rec.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})
	h.ring.add(b.String())
	return h.inner.Handle(ctx, rec)
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{
		inner: h.inner.WithAttrs(attrs),
		ring:  h.ring,
		level: h.level,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{inner: h.inner.WithGroup(name), ring: h.ring, level: h.level, attrs: h.attrs}
}
