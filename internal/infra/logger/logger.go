package logger

import (
	"io"
	"log/slog"
	"os"
)

const service = "interio-pricing"

// New — JSON-логгер сервиса в stdout. В dev пишем debug.
func New(env string) *slog.Logger {
	return NewTo(os.Stdout, env)
}

// NewTo то же, но в произвольный writer; env "test" глушит вывод.
func NewTo(w io.Writer, env string) *slog.Logger {
	level := slog.LevelInfo
	switch env {
	case "dev":
		level = slog.LevelDebug
	case "test":
		w = io.Discard
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("service", service, "env", env)
}
