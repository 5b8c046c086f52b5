// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// whoamiCmd represents the whoami command for displaying the current session.
// It shows the signed-in account by validating the persisted session with the
// backend, falling back to the locally cached profile when offline.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently signed-in account",
	Long: `The whoami command displays information about the currently signed-in account.
It validates the persisted session with the backend and shows the fresh
profile when the session is valid. When the backend is unreachable it falls
back to the locally cached profile.

If no session exists, it indicates that you are not signed in.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.session.IsAuthenticated() {
			fmt.Println("🔒 You're not signed in yet!")
			fmt.Println("   Run 'streamplay login' to get started.")
			return nil
		}

		if profile, ok := a.session.Validate(cmd.Context()); ok {
			fmt.Printf("👤 Signed in as %s (@%s)\n", profile.FullName, profile.Username)
			fmt.Printf("   %s\n", profile.Email)
			return nil
		}

		// Backend unreachable or session rejected; show the cached profile if
		// the session survived validation locally.
		if identity := a.session.Identity(); identity != nil {
			fmt.Printf("👤 Signed in as %s (@%s) (cached)\n", identity.FullName, identity.Username)
			return nil
		}

		fmt.Println("🔒 You're not signed in yet!")
		fmt.Println("   Run 'streamplay login' to get started.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
