package main

import (
	"os"

	"prisonjack/internal/bot"
	"prisonjack/internal/config"
	"prisonjack/internal/database"
	"prisonjack/internal/history"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	logger.WithField("path", cfg.DatabasePath).Info("Database connected")

	matches := history.NewRepository(db.DB)

	b, err := bot.New(cfg, matches, logger)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	if err := b.Run(); err != nil {
		logger.Fatalf("Bot error: %v", err)
	}
}
