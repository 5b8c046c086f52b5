// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// historyCmd lists the signed-in user's watch history, most recent first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your watch history",

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.requireLogin("see your watch history") {
			return nil
		}

		videos, err := a.client.WatchHistory(cmd.Context())
		if err != nil {
			return presentAPIError("load your watch history", err)
		}
		if len(videos) == 0 {
			fmt.Println("Your watch history is empty.")
			return nil
		}

		renderVideoTable(videos)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
