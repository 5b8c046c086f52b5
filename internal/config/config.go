// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; secrets go to the OS keychain.
//
// File values act as defaults; environment variables take precedence so a
// single export can point the CLI at a different backend.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"streamplay/cli/internal/xdg"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultBaseURL is the production backend used when nothing else is configured.
const DefaultBaseURL = "https://streamplay-backend.onrender.com/api/v1"

// Config holds non-sensitive CLI settings.
type Config struct {
	// BaseURL is the backend API base URL, including the version prefix.
	BaseURL string `json:"base_url" env:"STREAMPLAY_API_URL"`
	// RequestTimeout bounds a single HTTP request.
	RequestTimeout time.Duration `json:"request_timeout" env:"STREAMPLAY_TIMEOUT" env-default:"15s"`
	// UploadTimeout bounds video publish requests, which carry large bodies.
	UploadTimeout time.Duration `json:"upload_timeout" env:"STREAMPLAY_UPLOAD_TIMEOUT" env-default:"10m"`
	// PageSize is the default page size for listings.
	PageSize int `json:"page_size" env:"STREAMPLAY_PAGE_SIZE" env-default:"20"`
	// LogLevel controls diagnostic verbosity.
	LogLevel string `json:"log_level" env:"STREAMPLAY_LOG_LEVEL" env-default:"info"`
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration. Missing file yields defaults; environment
// variables override file values either way.
func Load() (Config, error) {
	var c Config
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &c); err != nil {
			return c, err
		}
	}
	if err := cleanenv.ReadEnv(&c); err != nil {
		return c, err
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
