// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var channelShowSubs bool

// channelCmd displays a channel's public profile. Viewing a channel works
// without signing in; the "subscribed" marker only appears for a signed-in
// session.
var channelCmd = &cobra.Command{
	Use:   "channel <username>",
	Short: "Show a channel's profile",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		profile, err := a.client.ChannelProfile(cmd.Context(), args[0])
		if err != nil {
			return presentAPIError("load the channel", err)
		}

		subscribed := ""
		if profile.IsSubscribed {
			subscribed = "  ✓ subscribed"
		}
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprintf("@%s", profile.Username)).
			Println(fmt.Sprintf("%s%s\nSubscribers: %d\nSubscribed to: %d channels",
				profile.FullName, subscribed, profile.SubscribersCount, profile.SubscribedToCount))

		if channelShowSubs {
			subs, err := a.client.ChannelSubscribers(cmd.Context(), profile.ID)
			if err != nil {
				return presentAPIError("list channel subscribers", err)
			}
			if len(subs) == 0 {
				fmt.Println("No subscribers yet.")
				return nil
			}
			data := pterm.TableData{{"Subscriber", "Name"}}
			for _, s := range subs {
				data = append(data, []string{"@" + s.Subscriber.Username, s.Subscriber.FullName})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(channelCmd)
	channelCmd.Flags().BoolVar(&channelShowSubs, "subscribers", false, "Also list the channel's subscribers")
}
