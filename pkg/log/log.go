// Package log builds [slog.Handler] implementations for the CLI.
//
// Human-readable formats are rendered by [github.com/charmbracelet/log];
// JSON uses the standard library handler.
package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format is a log output format.
type Format string

const (
	FormatJSON   Format = "json"
	FormatText   Format = "text"
	FormatLogfmt Format = "logfmt"
)

var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidFormat = errors.New("invalid log format")
)

// ParseLevel parses a level name. Names accepted by other loggers (trace,
// fatal, panic) are mapped to the nearest [slog.Level].
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "panic", "fatal", "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug", "trace":
		return slog.LevelDebug, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
}

// ParseFormat parses a format name. The empty string selects [FormatText].
func ParseFormat(format string) (Format, error) {
	switch f := Format(strings.ToLower(format)); f {
	case FormatJSON, FormatText, FormatLogfmt:
		return f, nil
	case "":
		return FormatText, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, format)
}

// CreateHandler creates a [slog.Handler] writing to w.
//
//nolint:ireturn
func CreateHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case FormatLogfmt:
		return newCharmLogger(w, level, charmlog.LogfmtFormatter)
	default:
		return newCharmLogger(w, level, charmlog.TextFormatter)
	}
}

// CreateHandlerWithStrings creates a [slog.Handler] from level and format
// names.
//
//nolint:ireturn
func CreateHandlerWithStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level, err := ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	format, err := ParseFormat(logFormat)
	if err != nil {
		return nil, err
	}

	return CreateHandler(w, level, format), nil
}

func newCharmLogger(w io.Writer, level slog.Level, formatter charmlog.Formatter) *charmlog.Logger {
	l := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(level),
		Formatter:       formatter,
		ReportTimestamp: true,
	})

	if !isTerminal(w) {
		l.SetColorProfile(termenv.Ascii)
	}

	return l
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
