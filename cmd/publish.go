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
	publishTitle       string
	publishDescription string
	publishFile        string
	publishThumbnail   string

	editTitle       string
	editDescription string
	editThumbnail   string
)

// videosPublishCmd uploads a new video. Uploads use the long-timeout client
// since video files routinely take minutes to transfer.
var videosPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload and publish a new video",
	Long: `Uploads a video file with its thumbnail and metadata, and publishes it.
Both the video file and the thumbnail are required. Uploads can take a while
for large files; the request timeout is sized accordingly.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if publishTitle == "" {
			return errors.New("--title is required")
		}
		if publishFile == "" || publishThumbnail == "" {
			return errors.New("--file and --thumbnail are required")
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.requireLogin("publish a video") {
			return nil
		}

		stopSpinner := startInlineSpinner(os.Stdout, "Uploading video", spinnerFrames, 120*time.Millisecond)
		v, err := a.client.PublishVideo(cmd.Context(), api.PublishVideoRequest{
			Title:         publishTitle,
			Description:   publishDescription,
			VideoPath:     publishFile,
			ThumbnailPath: publishThumbnail,
		})
		stopSpinner()
		if err != nil {
			return presentAPIError("publish the video", err)
		}

		fmt.Printf("✅ Published %q (%s)\n", v.Title, v.ID)
		return nil
	},
}

// videosEditCmd edits a video's metadata, optionally replacing the thumbnail.
var videosEditCmd = &cobra.Command{
	Use:   "edit <videoId>",
	Short: "Edit a video's title, description or thumbnail",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		if editTitle == "" && editDescription == "" && editThumbnail == "" {
			return errors.New("nothing to change: pass --title, --description or --thumbnail")
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.requireLogin("edit a video") {
			return nil
		}

		v, err := a.client.UpdateVideo(cmd.Context(), args[0], api.UpdateVideoRequest{
			Title:         editTitle,
			Description:   editDescription,
			ThumbnailPath: editThumbnail,
		})
		if err != nil {
			return presentAPIError("edit the video", err)
		}

		fmt.Printf("✅ Updated %q\n", v.Title)
		return nil
	},
}

func init() {
	videosCmd.AddCommand(videosPublishCmd)
	videosCmd.AddCommand(videosEditCmd)

	videosPublishCmd.Flags().StringVar(&publishTitle, "title", "", "Video title (required)")
	videosPublishCmd.Flags().StringVar(&publishDescription, "description", "", "Video description")
	videosPublishCmd.Flags().StringVar(&publishFile, "file", "", "Path to the video file (required)")
	videosPublishCmd.Flags().StringVar(&publishThumbnail, "thumbnail", "", "Path to the thumbnail image (required)")

	videosEditCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	videosEditCmd.Flags().StringVar(&editDescription, "description", "", "New description")
	videosEditCmd.Flags().StringVar(&editThumbnail, "thumbnail", "", "Path to a replacement thumbnail")
}
