// Package logger configures log/slog for the paysheet service.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures the logger setup.
type Options struct {
	Level   string // debug, info, warn, error
	Console bool   // text output for local runs (LOG_FORMAT=console)
	// Output defaults to os.Stdout.
	Output io.Writer
}

// New builds a logger that stamps the session correlation ID on every
// record and masks payer e-mail addresses.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       parseLevel(opts.Level),
		AddSource:   true,
		ReplaceAttr: maskEmail,
	}

	var handler slog.Handler = slog.NewJSONHandler(out, handlerOpts)
	if opts.Console {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	return slog.New(NewCorrelationHandler(handler))
}

// Setup installs New(opts) as the process default logger.
func Setup(opts Options) *slog.Logger {
	l := New(opts)
	slog.SetDefault(l)
	return l
}

func parseLevel(level string) slog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// maskEmail keeps the first letter and the domain of an "email" attribute.
func maskEmail(_ []string, a slog.Attr) slog.Attr {
	if a.Key != "email" || a.Value.Kind() != slog.KindString {
		return a
	}
	v := a.Value.String()
	at := strings.LastIndexByte(v, '@')
	if at <= 0 {
		return slog.String(a.Key, "***")
	}
	return slog.String(a.Key, v[:1]+"***"+v[at:])
}
