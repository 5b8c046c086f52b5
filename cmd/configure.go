// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"streamplay/cli/internal/config"

	"github.com/spf13/cobra"
)

// configCmd groups the local configuration subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change local CLI settings",
}

// configShowCmd prints the effective configuration, after any environment
// variable overrides.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Printf("API URL:         %s\n", cfg.BaseURL)
		fmt.Printf("Request timeout: %s\n", cfg.RequestTimeout)
		fmt.Printf("Upload timeout:  %s\n", cfg.UploadTimeout)
		fmt.Printf("Page size:       %d\n", cfg.PageSize)
		fmt.Printf("Log level:       %s\n", cfg.LogLevel)
		return nil
	},
}

// configSetURLCmd points the CLI at a different backend and persists it.
var configSetURLCmd = &cobra.Command{
	Use:   "set-url <baseURL>",
	Short: "Set the backend API base URL",
	Long: `Sets the backend API base URL, including the version prefix, and saves it to
the config file. The STREAMPLAY_API_URL environment variable still takes
precedence when set.

Example: streamplay config set-url https://streamplay-backend.onrender.com/api/v1`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		raw := strings.TrimSpace(args[0])
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New("base URL must be absolute, e.g. https://host/api/v1")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.BaseURL = strings.TrimRight(raw, "/")
		if err := config.Save(cfg); err != nil {
			return err
		}

		fmt.Printf("✅ API URL set to %s\n", cfg.BaseURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetURLCmd)
}
