package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v9"
	"github.com/pkg/errors"

	"github.com/emilianohg/launchtracker/internal/storage"
)

// HomeEnv overrides the application directory.
const HomeEnv = "LAUNCHTRACKER_HOME"

const (
	PolicyConvert = "convert"
	PolicyReset   = "reset"
)

type Config struct {
	AppName       string `toml:"app_name" env:"LAUNCHTRACKER_APP_NAME"`
	ExportsOutput string `toml:"exports_output" env:"LAUNCHTRACKER_EXPORTS_OUTPUT"`
	LogLevel      string `toml:"log_level" env:"LAUNCHTRACKER_LOG_LEVEL"`
	LegacyPolicy  string `toml:"legacy_policy" env:"LAUNCHTRACKER_LEGACY_POLICY"`
}

func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		AppName:       storage.DefaultAppName,
		ExportsOutput: filepath.Join(homeDir, "Downloads"),
		LogLevel:      "info",
		LegacyPolicy:  PolicyConvert,
	}
}

func AppDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return expandPath(dir), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".launchtracker"), nil
}

func ConfigPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func DatabasePath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "db", "launchtracker.sqlite"), nil
}

func LogPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "launchtracker.log"), nil
}

func EnsureDirectories() error {
	dir, err := AppDir()
	if err != nil {
		return err
	}

	// Create main directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WithStack(err)
	}

	// Create db subdirectory
	if err := os.MkdirAll(filepath.Join(dir, "db"), 0755); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := EnsureDirectories(); err != nil {
			return nil, err
		}
		if err := Save(cfg); err != nil {
			return nil, err
		}
	} else if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed decode %s", configPath)
	}

	// Environment wins over the file
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "failed parse environment")
	}

	cfg.ExportsOutput = expandPath(cfg.ExportsOutput)
	if cfg.LegacyPolicy != PolicyReset {
		cfg.LegacyPolicy = PolicyConvert
	}

	return cfg, nil
}

func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.Create(configPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return errors.WithStack(encoder.Encode(cfg))
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
