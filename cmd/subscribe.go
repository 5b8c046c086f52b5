// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// subscribeCmd toggles the signed-in user's subscription to a channel.
var subscribeCmd = &cobra.Command{
	Use:     "subscribe <channelId>",
	Aliases: []string{"sub"},
	Short:   "Subscribe to or unsubscribe from a channel",
	Args:    cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.requireLogin("manage subscriptions") {
			return nil
		}

		subscribed, known, err := a.client.ToggleSubscription(cmd.Context(), args[0])
		if err != nil {
			return presentAPIError("toggle the subscription", err)
		}
		printToggleResult("Subscription", "active", "removed", subscribed, known)
		return nil
	},
}

// subsCmd lists the channels the signed-in user subscribes to.
var subsCmd = &cobra.Command{
	Use:   "subs",
	Short: "List the channels you subscribe to",

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.requireLogin("see your subscriptions") {
			return nil
		}

		identity := a.session.Identity()
		if identity == nil {
			return nil
		}

		subs, err := a.client.SubscribedChannels(cmd.Context(), identity.ID)
		if err != nil {
			return presentAPIError("list subscriptions", err)
		}
		if len(subs) == 0 {
			fmt.Println("You aren't subscribed to any channels yet.")
			return nil
		}

		data := pterm.TableData{{"Channel", "Name", "ID"}}
		for _, s := range subs {
			data = append(data, []string{"@" + s.Channel.Username, s.Channel.FullName, s.Channel.ID})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	rootCmd.AddCommand(subscribeCmd)
	rootCmd.AddCommand(subsCmd)
}
