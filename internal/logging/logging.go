// Package logging builds the process-wide slog logger.
package logging

import (
	"log/slog"
	"os"

	"github.com/iliyamo/portfolio/internal/config"
)

// Setup returns a text logger at debug level for local development and a
// JSON logger at info level everywhere else.
func Setup(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case config.EnvDevelopment:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvTest:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	slog.SetDefault(log)
	return log
}
