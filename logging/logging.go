// Package logging configures the process-wide slog logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ttacon/chalk"
)

type Options struct {
	Level  string
	Format string // "console", "text" or "json"
	Output io.Writer
	// NoColor disables chalk colouring in console format.
	NoColor bool
}

var (
	mu sync.Mutex
	lg *slog.Logger
)

// Init replaces the global logger. Safe to call more than once, e.g. after
// flags are parsed.
func Init(opts Options) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	lg = slog.New(newHandler(opts))
	slog.SetDefault(lg)
	return lg
}

// L returns the global logger, initialising a debug console logger on first use.
func L() *slog.Logger {
	mu.Lock()
	cur := lg
	mu.Unlock()
	if cur != nil {
		return cur
	}
	return Init(Options{Level: "debug"})
}

func newHandler(opts Options) slog.Handler {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := ParseLevel(opts.Level)
	switch strings.ToLower(opts.Format) {
	case "json":
		return slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	case "text":
		return slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	default:
		return &consoleHandler{w: out, level: level, color: !opts.NoColor, mu: &sync.Mutex{}}
	}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// consoleHandler writes one line per record:
//
//	15:04:05 INFO  player: state  entity=3 from=grounded to=jumping
type consoleHandler struct {
	w     io.Writer
	mu    *sync.Mutex
	level slog.Level
	color bool
	attrs []slog.Attr
	group string
}

func (h *consoleHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Time.Format(time.TimeOnly))
	b.WriteByte(' ')
	b.WriteString(h.tag(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		b.WriteString(attrString(h.group, a))
	}
	r.Attrs(func(a slog.Attr) bool {
		b.WriteString(attrString(h.group, a))
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr{}, h.attrs...)
	if h.group != "" {
		next.group = h.group + "." + name
	} else {
		next.group = name
	}
	return &next
}

func (h *consoleHandler) tag(l slog.Level) string {
	t := levelTag(l)
	if !h.color {
		return t
	}
	switch {
	case l >= slog.LevelError:
		return chalk.Red.Color(t)
	case l >= slog.LevelWarn:
		return chalk.Yellow.Color(t)
	case l >= slog.LevelInfo:
		return chalk.Green.Color(t)
	default:
		return chalk.Cyan.Color(t)
	}
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN "
	case l >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

func attrString(group string, a slog.Attr) string {
	if a.Equal(slog.Attr{}) {
		return ""
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	return fmt.Sprintf("  %s=%v", key, a.Value.Resolve())
}
