package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger creates a logger writing to STDERR, and also to a rotated file if one is given.
// The "auto" format uses text for terminals and JSON otherwise.
// The returned closer is nil unless a file is used.
func newLogger(levelStr, formatStr, file string, terminal bool) (*slog.Logger, io.Closer) {
	var level slog.Level
	switch strings.ToLower(levelStr) {
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

	var (
		out    io.Writer = os.Stderr
		closer io.Closer
	)
	if len(file) > 0 {
		rotator := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    16,
			MaxBackups: 3,
			MaxAge:     7,
		}
		out = io.MultiWriter(os.Stderr, rotator)
		closer = rotator
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" || (formatStr == "auto" && !terminal) {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}
	return slog.New(handler), closer
}
