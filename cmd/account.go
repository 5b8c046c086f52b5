// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"

	"streamplay/cli/internal/api"

	"github.com/spf13/cobra"
)

var (
	accountFullName string
	accountEmail    string
)

// accountCmd groups account maintenance subcommands.
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your account details",
}

// accountUpdateCmd edits the signed-in user's name or email.
var accountUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your display name or email",

	RunE: func(cmd *cobra.Command, args []string) error {
		if accountFullName == "" && accountEmail == "" {
			return errors.New("nothing to change: pass --fullname or --email")
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.requireLogin("update your account") {
			return nil
		}

		profile, err := a.client.UpdateAccount(cmd.Context(), api.UpdateAccountRequest{
			FullName: accountFullName,
			Email:    accountEmail,
		})
		if err != nil {
			return presentAPIError("update the account", err)
		}

		// Re-validate so the persisted profile picks up the change.
		_, _ = a.session.Validate(cmd.Context())

		fmt.Printf("✅ Account updated: %s (%s)\n", profile.FullName, profile.Email)
		return nil
	},
}

// accountPasswdCmd changes the signed-in user's password. Both passwords are
// prompted interactively and never echoed.
var accountPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your password",

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.requireLogin("change your password") {
			return nil
		}

		oldPass, err := promptPassword("Current password: ")
		if err != nil {
			return err
		}
		newPass, err := promptPassword("New password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm new password: ")
		if err != nil {
			return err
		}
		if newPass == "" {
			return errors.New("new password is required")
		}
		if newPass != confirm {
			return errors.New("passwords do not match")
		}

		if err := a.client.ChangePassword(cmd.Context(), oldPass, newPass); err != nil {
			return presentAPIError("change the password", err)
		}

		fmt.Println("✅ Password changed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountUpdateCmd)
	accountCmd.AddCommand(accountPasswdCmd)

	accountUpdateCmd.Flags().StringVar(&accountFullName, "fullname", "", "New display name")
	accountUpdateCmd.Flags().StringVar(&accountEmail, "email", "", "New email address")
}
