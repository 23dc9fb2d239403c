package lib

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

func ParseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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

// SetupLogger installs the default slog logger. Level comes from CLOUDRUNCTL_LOG_LEVEL.
func SetupLogger(w io.Writer) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLogLevel(os.Getenv(LogLevelEnv)),
	}))
	slog.SetDefault(logger)
	return logger
}
