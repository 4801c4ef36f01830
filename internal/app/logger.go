package app

import (
	"io"
	"log/slog"

	"github.com/natefinch/lumberjack"
)

// newLogger creates and configures a new slog.Logger instance. It does not
// set the global logger, allowing for isolated logger instances.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}

// logWriter returns where log records go: a rotated file when one is
// configured, the output writer otherwise. The closer is nil for outW.
func logWriter(cfg *Config, outW io.Writer) (io.Writer, io.Closer) {
	if cfg.LogFile == "" {
		return outW, nil
	}
	l := &lumberjack.Logger{
		Filename: cfg.LogFile,
		MaxSize:  cfg.LogMaxSizeMB,  // megabytes
		MaxAge:   cfg.LogMaxAgeDays, // days
	}
	return l, l
}
