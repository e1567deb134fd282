package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/kumade/internal/ui/output"
	"go.trai.ch/kumade/internal/ui/style"
)

const (
	taskPrefix   = "[task] "
	upToDateNote = " is up to date"
)

// PrettyHandler is a slog.Handler that produces human-readable, colored output.
//
// Task announcements ("[task] name" and "[task] name is up to date") get their own
// marker: a dot for a task that runs, a hollow circle for one that is skipped.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	prefix string
	fields []string
}

// NewPrettyHandler creates a new PrettyHandler writing to w.
// A *slog.LevelVar passed in opts is shared, so later level changes take effect immediately.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
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
	var b strings.Builder

	icon, color := decorate(r.Level, r.Message)
	if icon != "" {
		b.WriteString(icon)
		b.WriteByte(' ')
	}
	b.WriteString(r.Message)

	for _, field := range h.fields {
		b.WriteByte(' ')
		b.WriteString(field)
	}
	r.Attrs(func(attr slog.Attr) bool {
		b.WriteByte(' ')
		b.WriteString(h.field(attr))
		return true
	})

	line := h.out.String(b.String()).Foreground(termenv.RGBColor(string(color)))
	_, err := h.out.WriteString(line.String() + "\n")
	return err
}

// decorate picks the marker and color for a record.
func decorate(level slog.Level, msg string) (string, lipgloss.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, style.Red
	case level >= slog.LevelWarn:
		return style.Warning, style.Gold
	case level >= slog.LevelInfo:
		return "", style.Slate
	case strings.HasPrefix(msg, taskPrefix) && strings.HasSuffix(msg, upToDateNote):
		return style.Circle, style.Slate
	case strings.HasPrefix(msg, taskPrefix):
		return style.Dot, style.Amber
	default:
		return style.Circle, style.Sky
	}
}

// WithAttrs returns a new Handler with the given attributes rendered once up front.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := make([]string, len(h.fields), len(h.fields)+len(attrs))
	copy(fields, h.fields)
	for _, attr := range attrs {
		fields = append(fields, h.field(attr))
	}

	clone := *h
	clone.fields = fields
	return &clone
}

// WithGroup returns a new Handler that qualifies later attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func (h *PrettyHandler) field(attr slog.Attr) string {
	return h.prefix + attr.Key + "=" + attr.Value.String()
}
