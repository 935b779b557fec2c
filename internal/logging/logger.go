// Package logging initializes the process-wide structured logger.
//
// Every state transition and error is logged through slog. When an audit
// path is configured, records are additionally appended to that file, which
// is never rotated or truncated by the bot.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/CalvinTheRed/BallotBot/internal/platform/correlation"
)

// Init installs the default logger, teeing output to stdout and, when
// auditPath is non-empty, to an append-only audit file. It returns a close
// function for the audit file.
// level: "debug", "info", "warn", "error" (defaults to "info")
// format: "json" or "text" (defaults to "text")
func Init(level, format, auditPath string) (func() error, error) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	out := io.Writer(os.Stdout)
	closer := func() error { return nil }
	if auditPath != "" {
		f, err := os.OpenFile(auditPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open audit log: %w", err)
		}
		out = io.MultiWriter(os.Stdout, f)
		closer = f.Close
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	slog.SetDefault(slog.New(correlation.NewHandler(handler)))
	return closer, nil
}
