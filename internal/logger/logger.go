// Package logger configures the process-wide slog logger.
//
// Logs always go to stderr so that CSV and JSON output on stdout stay clean.
// On a terminal the tint handler is used; otherwise plain key=value text.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// levelOff is above every level slog emits.
const levelOff = slog.LevelError + 4

var level = new(slog.LevelVar)

var aliases = map[string]string{
	"err":     "error",
	"warning": "warn",
}

// ParseLevel accepts the slog level names (debug, info, warn, error, in any
// case) plus the aliases err and warning.
func ParseLevel(name string) (slog.Level, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	switch key {
	case "debug", "info", "warn", "error":
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(key)); err != nil {
		return 0, err
	}
	return lvl, nil
}

// SetLevel sets the minimum level by name. The level is unchanged on error.
func SetLevel(name string) error {
	lvl, err := ParseLevel(name)
	if err != nil {
		return err
	}
	level.Set(lvl)
	return nil
}

// Debugging reports whether debug records are emitted.
func Debugging() bool {
	return level.Level() <= slog.LevelDebug
}

// Silence drops every record unless debugging is on.
func Silence() {
	if !Debugging() {
		level.Set(levelOff)
	}
}

// Init installs a stderr logger as the slog default.
func Init() {
	slog.SetDefault(slog.New(newHandler(os.Stderr, isTerminal(os.Stderr))))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newHandler(w io.Writer, terminal bool) slog.Handler {
	if terminal {
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  Debugging(),
			NoColor:    runtime.GOOS == "windows",
			TimeFormat: "15:04:05",
		})
	}

	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if lvl, ok := a.Value.Any().(slog.Level); ok && a.Key == slog.LevelKey {
				a.Value = slog.StringValue(strings.ToLower(lvl.String()))
			}
			return a
		},
	})
}
