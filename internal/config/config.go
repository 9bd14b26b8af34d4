package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath             string
	ServerPort         string
	LogLevel           string
	CatalogPath        string
	SeedCatalogOnStart bool
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:             getEnv("DB_PATH", "mission10k.db"),
		ServerPort:         getEnv("SERVER_PORT", "8000"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CatalogPath:        getEnv("CATALOG_PATH", ""),
		SeedCatalogOnStart: getEnvBool("STARTUP_SEED_CATALOG", true),
	}

	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return nil, fmt.Errorf("SERVER_PORT must be numeric, got %q", cfg.ServerPort)
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("catalog_path", cfg.CatalogPath).
		Bool("seed_catalog_on_start", cfg.SeedCatalogOnStart).
		Msg("configuration loaded")

	return cfg, nil
}

// CLIConfig configures missionctl, which only needs to find the API.
type CLIConfig struct {
	APIBaseURL string
}

func LoadCLI() *CLIConfig {
	return &CLIConfig{
		APIBaseURL: getEnv("MISSION_API_URL", "http://localhost:8000"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

var Module = fx.Provide(Load)
