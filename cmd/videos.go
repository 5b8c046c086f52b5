// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"streamplay/cli/internal/api"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	videosSearch string
	videosUser   string
	videosPage   int
	videosLimit  int
	videosSort   string
	videosOrder  string
)

// videosCmd groups the video browsing and management subcommands.
var videosCmd = &cobra.Command{
	Use:     "videos",
	Aliases: []string{"video"},
	Short:   "Browse and manage videos",
}

// videosListCmd lists published videos. Browsing works without signing in.
var videosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List published videos",
	Long: `Lists published videos, newest first by default. Use --search to filter by
title or description, --user to show one channel's uploads, and --page/--limit
to paginate. Browsing does not require signing in.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		limit := videosLimit
		if limit <= 0 {
			limit = a.cfg.PageSize
		}

		page, err := a.client.ListVideos(cmd.Context(), api.ListVideosParams{
			UserID:   videosUser,
			Search:   videosSearch,
			Page:     videosPage,
			Limit:    limit,
			SortBy:   videosSort,
			SortType: videosOrder,
		})
		if err != nil {
			return presentAPIError("list videos", err)
		}
		if len(page.Docs) == 0 {
			fmt.Println("No videos found.")
			return nil
		}

		renderVideoTable(page.Docs)
		fmt.Printf("\nPage %d of %d (%d videos total)\n", page.Page, page.TotalPages, page.TotalDocs)
		return nil
	},
}

// videosShowCmd displays one video's details.
var videosShowCmd = &cobra.Command{
	Use:   "show <videoId>",
	Short: "Show a video's details",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		v, err := a.client.GetVideo(cmd.Context(), args[0])
		if err != nil {
			return presentAPIError("load the video", err)
		}

		published := "no"
		if v.IsPublished {
			published = "yes"
		}
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(v.Title)).
			Println(fmt.Sprintf("Channel:   @%s\nViews:     %d\nDuration:  %s\nPublished: %s\nUploaded:  %s\n\n%s",
				v.Owner.Username, v.Views, formatDuration(v.Duration), published,
				v.CreatedAt.Format("2006-01-02"), v.Description))
		fmt.Printf("\nStream URL: %s\n", v.VideoFile)
		return nil
	},
}

// videosRemoveCmd deletes one of the signed-in user's videos.
var videosRemoveCmd = &cobra.Command{
	Use:     "remove <videoId>",
	Aliases: []string{"rm", "delete"},
	Short:   "Delete one of your videos",
	Args:    cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.requireLogin("delete a video") {
			return nil
		}

		if err := a.client.DeleteVideo(cmd.Context(), args[0]); err != nil {
			return presentAPIError("delete the video", err)
		}

		fmt.Println("✅ Video deleted")
		return nil
	},
}

// videosToggleCmd flips a video between published and hidden.
var videosToggleCmd = &cobra.Command{
	Use:   "toggle <videoId>",
	Short: "Publish or hide one of your videos",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.requireLogin("change a video's publish state") {
			return nil
		}

		published, err := a.client.TogglePublish(cmd.Context(), args[0])
		if err != nil {
			return presentAPIError("toggle the publish state", err)
		}

		if published {
			fmt.Println("✅ Video is now published")
		} else {
			fmt.Println("✅ Video is now hidden")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(videosCmd)
	videosCmd.AddCommand(videosListCmd)
	videosCmd.AddCommand(videosShowCmd)
	videosCmd.AddCommand(videosRemoveCmd)
	videosCmd.AddCommand(videosToggleCmd)

	videosListCmd.Flags().StringVar(&videosSearch, "search", "", "Filter by title or description")
	videosListCmd.Flags().StringVar(&videosUser, "user", "", "Show uploads from one channel (user ID)")
	videosListCmd.Flags().IntVar(&videosPage, "page", 1, "Page number")
	videosListCmd.Flags().IntVar(&videosLimit, "limit", 0, "Page size (defaults to the configured page size)")
	videosListCmd.Flags().StringVar(&videosSort, "sort", "createdAt", "Sort field")
	videosListCmd.Flags().StringVar(&videosOrder, "order", "desc", "Sort order: asc or desc")
}
