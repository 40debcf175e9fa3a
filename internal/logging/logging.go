// Package logging builds the slog logger used by the CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lmittmann/tint"
)

type Options struct {
	Level  string
	Format string
	Prefix string
	Output io.Writer
}

// New returns a slog logger. Format "tint" selects a colorized lmittmann/tint handler; "json",
// "text" and "logfmt" (default) select a charmbracelet/log handler with that formatter.
func New(opts Options) *slog.Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "localesync"
	}

	var formatter log.Formatter
	switch strings.ToLower(opts.Format) {
	case "tint":
		handler := tint.NewHandler(output, &tint.Options{
			Level:      slogLevel(ParseLevel(opts.Level)),
			TimeFormat: time.Kitchen,
		})
		return slog.New(handler).With(slog.String("prefix", prefix))
	case "json":
		formatter = log.JSONFormatter
	case "text":
		formatter = log.TextFormatter
	default:
		formatter = log.LogfmtFormatter
	}

	handler := log.NewWithOptions(output, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          prefix,
		Formatter:       formatter,
		Level:           ParseLevel(opts.Level),
	})
	return slog.New(handler)
}

// ParseLevel maps a level name to a charmbracelet/log level. Unknown names mean info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func slogLevel(level log.Level) slog.Level {
	switch level {
	case log.DebugLevel:
		return slog.LevelDebug
	case log.WarnLevel:
		return slog.LevelWarn
	case log.ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
