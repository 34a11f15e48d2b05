// Package logging builds the slog handlers used by the lvbnb command.
//
// Terminals get a colourised tint handler; pipes and files get JSON so that runs can
// be collected by log shippers unchanged.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Format selects the handler.
type Format string

const (
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseLevel maps debug|info|warn|error to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("logging: unknown level %q", s)
	}

	return l, nil
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatAuto, FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("logging: unknown format %q", s)
	}
}

// New returns a logger writing to w. FormatAuto picks tint when w is a terminal.
func New(w io.Writer, level slog.Level, format Format) *slog.Logger {
	tty := isTerminal(w)
	if format == FormatAuto {
		format = FormatJSON
		if tty {
			format = FormatText
		}
	}

	var h slog.Handler
	switch format {
	case FormatText:
		h = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    !tty,
		})
	default:
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}

	return slog.New(h)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
