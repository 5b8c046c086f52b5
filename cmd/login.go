// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"streamplay/cli/internal/session"
	"streamplay/cli/internal/terminal"

	"github.com/spf13/cobra"
)

// loginCmd represents the login command for interactive authentication.
// It prompts for a username or email and a password, exchanges them with the
// backend, and stores the resulting session securely. The password prompt
// never echoes, and the credential prompts are cleared from the terminal once
// the exchange completes.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Sign in to your Streamplay account",
	Long: `The login command signs in to the Streamplay backend with a username or email
and a password. On success the session is stored securely and every other
streamplay process on this machine picks it up automatically.

If already signed in with a valid session, login prompts for new credentials
and replaces the current session.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if identity := a.session.Identity(); identity != nil {
			fmt.Printf("Currently signed in as %s. Logging in again replaces this session.\n", identity.Username)
		}

		userPrompt := "Username or email: "
		user, err := promptLine(userPrompt)
		if err != nil {
			return err
		}
		if user == "" {
			return errors.New("username or email is required")
		}
		passPrompt := "Password: "
		pass, err := promptPassword(passPrompt)
		if err != nil {
			return err
		}
		if pass == "" {
			return errors.New("password is required")
		}

		// Clear the credential prompts from the terminal
		terminal.ClearPreviousLines(len(userPrompt) + len(user) + len(passPrompt))

		stopSpinner := startInlineSpinner(os.Stdout, "Signing in", spinnerFrames, 120*time.Millisecond)
		profile, err := a.session.Login(cmd.Context(), session.Credentials{
			UsernameOrEmail: user,
			Password:        pass,
		})
		stopSpinner()
		if err != nil {
			return presentAPIError("sign in", err)
		}

		fmt.Println(getRandomLoginGreeting(profile.Username))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	// Seed random number generator for greeting selection
	rand.Seed(time.Now().UnixNano())
}

// getRandomLoginGreeting returns a random greeting phrase with the user's identifier
func getRandomLoginGreeting(identifier string) string {
	greetings := []string{
		"🎉 Welcome back, %s!",
		"✨ Great to see you, %s!",
		"🍿 You're all set, %s!",
		"👋 Hello %s! Ready to watch?",
		"💫 Successfully signed in as %s",
		"✅ Authentication complete! Hi %s!",
		"🔓 Access granted! Welcome %s!",
	}

	idx := rand.Intn(len(greetings))
	return fmt.Sprintf(greetings[idx], identifier)
}
