// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Streamplay client.
// It implements subcommands for authentication, video browsing and publishing,
// comments, likes and subscriptions using the Cobra CLI framework. The package
// handles command parsing, execution, and provides a rich terminal UI with
// spinners and progress indicators.
package cmd

import (
	"context"
	"fmt"
	"os"

	"streamplay/cli/internal/api"
	"streamplay/cli/internal/config"
	"streamplay/cli/internal/gate"
	"streamplay/cli/internal/keychain"
	"streamplay/cli/internal/session"
	"streamplay/cli/internal/xdg"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
// It serves as the entry point for the Streamplay CLI application.
var rootCmd = &cobra.Command{
	Use:           "streamplay",
	Short:         "Streamplay CLI for watching and publishing videos",
	Long:          `Streamplay is a command-line client for the Streamplay video platform. Browse and watch videos anonymously, or sign in to publish, comment, like and subscribe.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("streamplay %s\n", Version)

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.client.Health(cmd.Context()); err != nil {
				fmt.Println("backend unreachable")
			} else {
				fmt.Println("backend ok")
			}
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version and backend status")
}

// app bundles the wired-up client stack a command needs. Construction order
// matters: the HTTP client and the session manager reference each other, so
// the manager is bound to the client after both exist.
type app struct {
	cfg      config.Config
	client   *api.Client
	store    *session.Store
	gate     *gate.Controller
	session  *session.Manager
	stopSync func()
}

// newApp loads configuration and wires the HTTP client, session store, gate
// and session manager together. Keychain access is optional: when secure
// storage is unavailable the client still works, it just cannot persist the
// session cookie across runs.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.LogLevel == "debug" {
		pterm.EnableDebugMessages()
	}

	var cookies api.CookieStore
	if km, err := keychain.GetManager(); err == nil {
		cookies = km
	}

	client, err := api.NewClient(api.Config{
		BaseURL:        cfg.BaseURL,
		RequestTimeout: cfg.RequestTimeout,
		UploadTimeout:  cfg.UploadTimeout,
		Cookies:        cookies,
	})
	if err != nil {
		return nil, err
	}

	stateDir, err := xdg.StateDir()
	if err != nil {
		return nil, err
	}
	store := session.NewStore(stateDir)

	g := gate.NewController()
	g.Subscribe(renderGate)

	mgr := session.NewManager(client, store, g)
	client.BindSession(mgr)
	if identity := mgr.Identity(); identity != nil {
		pterm.Debug.Printfln("restored session for @%s", identity.Username)
	}

	stop := mgr.StartSync(ctx, session.DefaultWatchInterval)

	return &app{
		cfg:      cfg,
		client:   client,
		store:    store,
		gate:     g,
		session:  mgr,
		stopSync: stop,
	}, nil
}

func (a *app) close() {
	if a.stopSync != nil {
		a.stopSync()
	}
}

// requireLogin checks for an authenticated session and prints guidance when
// there is none. Commands return nil after a false result, matching the
// friendly-exit convention used across the CLI.
func (a *app) requireLogin(action string) bool {
	if a.session.IsAuthenticated() {
		return true
	}
	fmt.Printf("⚠️  You need to be logged in to %s.\n", action)
	fmt.Println("   Please run: streamplay login")
	return false
}
