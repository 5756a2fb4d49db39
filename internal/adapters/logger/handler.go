package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"go.trai.ch/ledger/internal/ui/style"
)

// PrettyHandler is a slog.Handler that produces human-readable output, colored when the
// destination is a terminal.
type PrettyHandler struct {
	mu      *sync.Mutex
	w       io.Writer
	palette style.Palette
	level   slog.Leveler
	attrs   []string
	group   string
}

// NewPrettyHandler creates a new PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &PrettyHandler{
		mu:      &sync.Mutex{},
		w:       w,
		palette: style.For(w),
		level:   level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var msg string
	render := h.palette.Muted.Render
	switch {
	case r.Level >= slog.LevelError:
		msg = style.Cross + " " + r.Message
		render = h.palette.Error.Render
	case r.Level >= slog.LevelWarn:
		msg = style.Warning + " " + r.Message
		render = h.palette.Warn.Render
	case r.Level < slog.LevelInfo:
		msg = style.Tilde + " " + r.Message
	default:
		msg = r.Message
	}

	attrParts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	attrParts = append(attrParts, h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, formatAttr(h.group, attr))
		return true
	})
	if len(attrParts) > 0 {
		msg += " " + strings.Join(attrParts, " ")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, render(msg)+"\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended. The attributes keep
// the group that is current at this point.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]string(nil), h.attrs...)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, formatAttr(h.group, attr))
	}
	return &clone
}

// WithGroup returns a new Handler with the given group name nested in the current one.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	clone.group = name
	return &clone
}

// formatAttr formats a single attribute for output.
// If a group is set, the key is prefixed with the group name.
func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}
