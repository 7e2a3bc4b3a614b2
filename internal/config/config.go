package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Backup   BackupConfig   `yaml:"backup"`
	LogFile  string         `yaml:"log_file"`
}

// ServerConfig holds the listener configuration.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig holds the SQLite file path.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// BackupConfig holds the backup directory.
type BackupConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Addr: ":8080"},
		Database: DatabaseConfig{Path: "toners.sqlite3"},
		Backup:   BackupConfig{Dir: "backups"},
	}
}

// Load reads the configuration from the given path, filling in defaults for
// unset fields. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "toners.sqlite3"
	}
	if cfg.Backup.Dir == "" {
		cfg.Backup.Dir = "backups"
	}

	return cfg, nil
}
