package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Entry is a captured warning or error.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// Options configures New.
type Options struct {
	Level slog.Level

	// Format is "json" or "text".
	Format string

	// File enables rotated file output.
	File string

	// Output receives records when File is empty. Nil discards them.
	Output io.Writer

	// Keep is how many warnings and errors Entries remembers.
	Keep int
}

// Logger is a slog.Logger that owns its output file.
type Logger struct {
	*slog.Logger

	file   *lumberjack.Logger
	recent *ring
}

// New builds a logger from opts.
func New(opts Options) *Logger {
	l := &Logger{recent: newRing(max(opts.Keep, 1))}

	var inner slog.Handler
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	out := opts.Output
	if opts.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
			Compress:   true,
		}
		out = l.file
	}
	switch {
	case out == nil:
		inner = slog.DiscardHandler
	case strings.EqualFold(opts.Format, "json"):
		inner = slog.NewJSONHandler(out, handlerOpts)
	default:
		inner = slog.NewTextHandler(out, handlerOpts)
	}

	l.Logger = slog.New(&captureHandler{inner: inner, ring: l.recent})
	return l
}

// Entries returns the remembered warnings and errors, oldest first.
func (l *Logger) Entries() []Entry {
	return l.recent.all()
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// captureHandler records warnings and errors before passing records on.
type captureHandler struct {
	inner slog.Handler
	ring  *ring
}

func (h *captureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= slog.LevelWarn || h.inner.Enabled(ctx, level)
}

func (h *captureHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.ring.add(Entry{Time: r.Time, Level: r.Level, Message: r.Message})
	}
	if !h.inner.Enabled(ctx, r.Level) {
		return nil
	}
	return h.inner.Handle(ctx, r)
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{inner: h.inner.WithAttrs(attrs), ring: h.ring}
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	return &captureHandler{inner: h.inner.WithGroup(name), ring: h.ring}
}

// ring is a fixed-size circular buffer of entries.
type ring struct {
	mu      sync.Mutex
	entries []Entry
	head    int
	count   int
}

func newRing(size int) *ring {
	return &ring{entries: make([]Entry, size)}
}

func (r *ring) add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.head] = e
	r.head = (r.head + 1) % len(r.entries)
	if r.count < len(r.entries) {
		r.count++
	}
}

func (r *ring) all() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	size := len(r.entries)
	out := make([]Entry, r.count)
	for i := range out {
		out[i] = r.entries[(r.head-r.count+i+size)%size]
	}
	return out
}
