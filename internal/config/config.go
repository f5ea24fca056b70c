package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines application configuration.
type Config struct {
	DB   DBConfig   `yaml:"db"`
	Log  LogConfig  `yaml:"log"`
	User UserConfig `yaml:"user"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type UserConfig struct {
	// ID is the owner of every entity written or read by this process.
	ID string `yaml:"id"`
}

// Load reads configuration from an optional .env file, an optional YAML
// file and environment variables, in increasing order of precedence.
func Load() (Config, error) {
	// Best effort: a missing .env is fine.
	_ = godotenv.Load()

	cfg := Config{
		DB:   DBConfig{Path: "timekeep.db"},
		Log:  LogConfig{Level: "info"},
		User: UserConfig{ID: "default"},
	}

	if path := os.Getenv("TIMEKEEP_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dbPath := os.Getenv("TIMEKEEP_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("TIMEKEEP_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if user := os.Getenv("TIMEKEEP_USER"); user != "" {
		cfg.User.ID = user
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
