// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"streamplay/cli/internal/api"

	"github.com/spf13/cobra"
)

var (
	registerUsername string
	registerEmail    string
	registerFullName string
	registerAvatar   string
	registerCover    string
)

// registerCmd represents the register command for creating a new account.
// Profile images are uploaded as part of the sign-up form; the avatar is
// required by the backend, the cover image is optional. The password is
// prompted interactively and never echoed.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new Streamplay account",
	Long: `The register command creates a new Streamplay account. Username, email, full
name and an avatar image are required; a cover image is optional. The password
is prompted interactively.

Registration does not sign you in; run 'streamplay login' afterwards.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if registerUsername == "" || registerEmail == "" || registerFullName == "" {
			return errors.New("--username, --email and --fullname are required")
		}
		if registerAvatar == "" {
			return errors.New("--avatar is required")
		}

		pass, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if pass == "" {
			return errors.New("password is required")
		}
		if pass != confirm {
			return errors.New("passwords do not match")
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		stopSpinner := startInlineSpinner(os.Stdout, "Creating account", spinnerFrames, 120*time.Millisecond)
		profile, err := a.client.Register(cmd.Context(), api.RegisterRequest{
			Username:       registerUsername,
			Email:          registerEmail,
			Password:       pass,
			FullName:       registerFullName,
			AvatarPath:     registerAvatar,
			CoverImagePath: registerCover,
		})
		stopSpinner()
		if err != nil {
			return presentAPIError("create the account", err)
		}

		fmt.Printf("✅ Account created for @%s\n", profile.Username)
		fmt.Println("   Run 'streamplay login' to sign in.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerUsername, "username", "", "Account username")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email address")
	registerCmd.Flags().StringVar(&registerFullName, "fullname", "", "Display name")
	registerCmd.Flags().StringVar(&registerAvatar, "avatar", "", "Path to avatar image (required)")
	registerCmd.Flags().StringVar(&registerCover, "cover", "", "Path to cover image (optional)")
}
