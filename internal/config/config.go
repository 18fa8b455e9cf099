// Package config loads stepcook settings from the environment. A .env
// file in the working directory is read first when present; real
// environment variables always win over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/hammamikhairi/stepcook/internal/logger"
)

// Config holds runtime settings.
type Config struct {
	DBPath       string        `env:"STEPCOOK_DB_PATH"`
	LogLevel     string        `env:"STEPCOOK_LOG_LEVEL" envDefault:"normal"`
	LogFile      string        `env:"STEPCOOK_LOG_FILE" envDefault:".stepcook/stepcook.log"`
	TickInterval time.Duration `env:"STEPCOOK_TICK_INTERVAL" envDefault:"1s"`
	Chime        bool          `env:"STEPCOOK_CHIME" envDefault:"true"`
	Seed         bool          `env:"STEPCOOK_SEED" envDefault:"true"`
}

// Load reads .env files (if any) and parses the environment.
func Load(dotenvFiles ...string) (Config, error) {
	if err := loadDotenv(dotenvFiles...); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks values the environment parser cannot.
func (c Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("STEPCOOK_LOG_LEVEL: %w", err)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("STEPCOOK_TICK_INTERVAL: must be positive, got %s", c.TickInterval)
	}
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() logger.Level {
	level, _ := logger.ParseLevel(c.LogLevel)
	return level
}

// MemoryDB selects a process-local recipe store that is discarded on exit.
const MemoryDB = ":memory:"

// InMemory reports whether recipes live only for this process.
func (c Config) InMemory() bool {
	return c.DBPath == MemoryDB
}

// DefaultDBPath places the recipe database in the user's config dir,
// falling back to the working directory.
func DefaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".stepcook", "recipes.db")
	}
	return filepath.Join(dir, "stepcook", "recipes.db")
}

func loadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}
