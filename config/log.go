package config

import (
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger routes slog output to a size-rotated log file in the
// data directory so user-facing output stays clean.
func InitLogger() {
	w := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	slog.SetDefault(slog.New(handler))
}
