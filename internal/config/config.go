// Package config loads game settings from the environment and command-line
// flags. Flags override the environment.
package config

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Transports the game can be played over.
const (
	TransportCLI = "cli"
	TransportMCP = "mcp"
)

// Config holds the game settings.
type Config struct {
	SaveDir         string `env:"MEDIEVAL_SAVE_DIR"  envDefault:"saves"`
	DBPath          string `env:"MEDIEVAL_DB_PATH"   envDefault:"data/chronicle.db"`
	Seed            int64  `env:"MEDIEVAL_SEED"      envDefault:"0"`
	LogLevel        string `env:"MEDIEVAL_LOG_LEVEL" envDefault:"info"`
	Transport       string `env:"MEDIEVAL_TRANSPORT" envDefault:"cli"`
	RandomOrgAPIKey string `env:"RANDOM_ORG_API_KEY"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseConfig reads the environment, then flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.SaveDir, "saves", cfg.SaveDir, "directory for save files")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the chronicle database")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 for a random one)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "cli or mcp")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.Transport = strings.ToLower(strings.TrimSpace(cfg.Transport))
	if cfg.Transport != TransportCLI && cfg.Transport != TransportMCP {
		return Config{}, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}
