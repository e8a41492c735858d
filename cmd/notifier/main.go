// Command notifier consumes contact.received events and appends them to a
// log file.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iliyamo/portfolio/internal/config"
	"github.com/iliyamo/portfolio/internal/logging"
	"github.com/iliyamo/portfolio/internal/queue"
)

func main() {
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = config.EnvDevelopment
	}
	log := logging.Setup(env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := &queue.Consumer{
		URL:     config.LoadQueueConfig().URL,
		LogPath: os.Getenv("CONTACT_LOG_PATH"),
		Log:     log,
	}
	log.Info("notifier started", "queue", queue.ContactQueueName)
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("notifier stopped", "err", err)
		os.Exit(1)
	}
	log.Info("notifier stopped")
}
