package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogFile names the file the terminal UI logs to.
const EnvLogFile = "MATHBUDDY_LOG_FILE"

// logLevel reads MATHBUDDY_LOG_LEVEL, defaulting to info.
func logLevel() slog.Level {
	switch strings.ToLower(os.Getenv("MATHBUDDY_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// setupServerLogging sends JSON logs to stdout.
func setupServerLogging() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(),
	})))
}

// setupTUILogging keeps the terminal clean: logs go to MATHBUDDY_LOG_FILE
// when set and are dropped otherwise. The returned func closes the file.
func setupTUILogging() (func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}

	if path := os.Getenv(EnvLogFile); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return closeFn, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel(),
	})))
	return closeFn, nil
}
