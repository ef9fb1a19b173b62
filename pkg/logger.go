package pkg

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	logger *slog.Logger
}

func SetNewStdoutLogger(level string) {
	logger := NewLogger(os.Stdout, ParseLevel(level))

	slog.SetDefault(logger.logger)
}

func NewLogger(out io.Writer, level slog.Level) *Logger {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}

	return &Logger{
		logger: slog.New(slog.NewJSONHandler(out, opts)),
	}
}

func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

// ParseLevel falls back to info for anything it does not know.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
