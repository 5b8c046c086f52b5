// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// logoutCmd represents the logout command for clearing the session.
// Local state is cleared first and unconditionally; the backend is then asked
// to invalidate the session cookie (best-effort, the command succeeds even
// when the backend is unreachable).
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	Long: `The logout command signs out of Streamplay on this machine. It clears the
persisted session and the session cookie from the OS keychain, then notifies
the backend to invalidate the session (best-effort).

Every other streamplay process on this machine observes the logout and drops
its session as well.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.session.IsAuthenticated() {
			fmt.Println("You're not signed in.")
			return nil
		}

		if err := a.session.Logout(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("✅ Signed out. Local session cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
