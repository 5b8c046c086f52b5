// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// likeCmd groups the like toggles.
var likeCmd = &cobra.Command{
	Use:   "like",
	Short: "Like or unlike videos and comments",
}

// likeVideoCmd toggles the signed-in user's like on a video.
var likeVideoCmd = &cobra.Command{
	Use:   "video <videoId>",
	Short: "Toggle your like on a video",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.requireLogin("like a video") {
			return nil
		}

		liked, known, err := a.client.ToggleVideoLike(cmd.Context(), args[0])
		if err != nil {
			return presentAPIError("like the video", err)
		}
		printToggleResult("Video", "liked", "unliked", liked, known)
		return nil
	},
}

// likeCommentCmd toggles the signed-in user's like on a comment.
var likeCommentCmd = &cobra.Command{
	Use:   "comment <commentId>",
	Short: "Toggle your like on a comment",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.requireLogin("like a comment") {
			return nil
		}

		liked, known, err := a.client.ToggleCommentLike(cmd.Context(), args[0])
		if err != nil {
			return presentAPIError("like the comment", err)
		}
		printToggleResult("Comment", "liked", "unliked", liked, known)
		return nil
	},
}

// likedCmd lists the videos the signed-in user has liked.
var likedCmd = &cobra.Command{
	Use:   "liked",
	Short: "List the videos you've liked",

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.requireLogin("see your liked videos") {
			return nil
		}

		videos, err := a.client.LikedVideos(cmd.Context())
		if err != nil {
			return presentAPIError("list liked videos", err)
		}
		if len(videos) == 0 {
			fmt.Println("You haven't liked any videos yet.")
			return nil
		}

		renderVideoTable(videos)
		return nil
	},
}

// printToggleResult reports a toggle outcome. Some backend responses omit the
// resulting state; in that case only the fact that it flipped is reported.
func printToggleResult(subject, on, off string, state, known bool) {
	if !known {
		fmt.Printf("✅ %s %s state toggled\n", subject, on)
		return
	}
	if state {
		fmt.Printf("✅ %s %s\n", subject, on)
	} else {
		fmt.Printf("✅ %s %s\n", subject, off)
	}
}

func init() {
	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(likedCmd)
	likeCmd.AddCommand(likeVideoCmd)
	likeCmd.AddCommand(likeCommentCmd)
}
