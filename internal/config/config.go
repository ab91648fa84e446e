package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Telegram renders at most eight inline buttons per row.
const maxCardColumns = 8

type Config struct {
	BotToken     string
	DatabasePath string
	CatalogPath  string
	LogLevel     string
	CardColumns  int
	RecentLimit  int
}

func Load() (*Config, error) {
	godotenv.Load()

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}

	columns, err := intEnv("CARD_COLUMNS", 5)
	if err != nil {
		return nil, err
	}
	recent, err := intEnv("RECENT_LIMIT", 5)
	if err != nil {
		return nil, err
	}
	if recent < 1 {
		return nil, fmt.Errorf("RECENT_LIMIT must be positive, got %d", recent)
	}

	return &Config{
		BotToken:     token,
		DatabasePath: getEnv("DATABASE_PATH", "./prisonjack.db"),
		CatalogPath:  getEnv("CATALOG_PATH", "./crimes.json"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CardColumns:  clamp(columns, 1, maxCardColumns),
		RecentLimit:  recent,
	}, nil
}

func getEnv(key, defaultVal string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultVal
}

func intEnv(key string, defaultVal int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
	return n, nil
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
