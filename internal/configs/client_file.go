package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// clientFile mirrors ~/.config/tasktracker/config.toml:
//
//	[api]
//	base-url = "http://localhost:5000"
//	timeout-seconds = 5
type clientFile struct {
	API struct {
		BaseURL        string `toml:"base-url"`
		TimeoutSeconds int    `toml:"timeout-seconds"`
	} `toml:"api"`
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		APIBaseURL:        "http://localhost:5000",
		APITimeoutSeconds: 5,
	}
}

// ClientFilePath returns TASKTRACKER_CONFIG if set, otherwise the per-user
// config file location. It returns "" when no home directory is available.
func ClientFilePath() string {
	if path := os.Getenv("TASKTRACKER_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tasktracker", "config.toml")
}

// LoadClient resolves client settings: defaults, then the config file at
// path (missing is fine), then API_BASE_URL / API_TIMEOUT_SECONDS.
func LoadClient(path string) (ClientConfig, error) {
	cfg := DefaultClientConfig()

	if path != "" {
		if err := applyClientFile(&cfg, path); err != nil {
			return ClientConfig{}, err
		}
	}

	cfg.APIBaseURL = getEnv("API_BASE_URL", cfg.APIBaseURL)
	timeout, err := getEnvAsInt("API_TIMEOUT_SECONDS", cfg.APITimeoutSeconds)
	if err != nil {
		return ClientConfig{}, err
	}
	cfg.APITimeoutSeconds = timeout

	if err := validateClient(cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

func applyClientFile(cfg *ClientConfig, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var file clientFile
	if _, err := toml.Decode(string(data), &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if file.API.BaseURL != "" {
		cfg.APIBaseURL = file.API.BaseURL
	}
	if file.API.TimeoutSeconds != 0 {
		cfg.APITimeoutSeconds = file.API.TimeoutSeconds
	}
	return nil
}
