package logx

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

var Error = tint.Err //nolint:gochecknoglobals

func Stringer(name string, value fmt.Stringer) slog.Attr {
	return slog.String(name, value.String())
}

// New builds the process logger. Format "json" yields machine-readable output,
// anything else the colored console handler.
func New(w io.Writer, format string, level string) *slog.Logger {
	lvl := ParseLevel(level)

	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.DateTime,
	}))
}

func ParseLevel(level string) slog.Level {
	var lvl slog.Level

	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}

	return lvl
}
