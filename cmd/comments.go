// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	commentsPage    int
	commentsLimit   int
	commentsMessage string
)

// commentsCmd groups the comment subcommands.
var commentsCmd = &cobra.Command{
	Use:     "comments",
	Aliases: []string{"comment"},
	Short:   "Read and write video comments",
}

// commentsListCmd lists a video's comments. Reading works without signing in.
var commentsListCmd = &cobra.Command{
	Use:   "list <videoId>",
	Short: "List a video's comments",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		limit := commentsLimit
		if limit <= 0 {
			limit = a.cfg.PageSize
		}

		page, err := a.client.ListComments(cmd.Context(), args[0], commentsPage, limit)
		if err != nil {
			return presentAPIError("list comments", err)
		}
		if len(page.Docs) == 0 {
			fmt.Println("No comments yet.")
			return nil
		}

		for _, c := range page.Docs {
			liked := ""
			if c.IsLiked {
				liked = " ♥"
			}
			header := pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprintf("@%s", c.Owner.Username) +
				pterm.NewStyle(pterm.FgGray).Sprintf("  %s  %d likes%s  [%s]", c.CreatedAt.Format("2006-01-02 15:04"), c.LikesCount, liked, c.ID)
			pterm.Println(header)
			pterm.Println("  " + c.Content)
			pterm.Println()
		}
		fmt.Printf("Page %d (%d comments total)\n", page.Page, page.TotalDocs)
		return nil
	},
}

// commentsAddCmd posts a comment on a video.
var commentsAddCmd = &cobra.Command{
	Use:   "add <videoId>",
	Short: "Comment on a video",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		if commentsMessage == "" {
			return errors.New("--message is required")
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.requireLogin("comment on a video") {
			return nil
		}

		c, err := a.client.AddComment(cmd.Context(), args[0], commentsMessage)
		if err != nil {
			return presentAPIError("post the comment", err)
		}

		fmt.Printf("✅ Comment posted (%s)\n", c.ID)
		return nil
	},
}

// commentsEditCmd rewrites one of the signed-in user's comments.
var commentsEditCmd = &cobra.Command{
	Use:   "edit <commentId>",
	Short: "Edit one of your comments",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		if commentsMessage == "" {
			return errors.New("--message is required")
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.requireLogin("edit a comment") {
			return nil
		}

		if _, err := a.client.UpdateComment(cmd.Context(), args[0], commentsMessage); err != nil {
			return presentAPIError("edit the comment", err)
		}

		fmt.Println("✅ Comment updated")
		return nil
	},
}

// commentsRemoveCmd deletes one of the signed-in user's comments.
var commentsRemoveCmd = &cobra.Command{
	Use:     "remove <commentId>",
	Aliases: []string{"rm", "delete"},
	Short:   "Delete one of your comments",
	Args:    cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.requireLogin("delete a comment") {
			return nil
		}

		if err := a.client.DeleteComment(cmd.Context(), args[0]); err != nil {
			return presentAPIError("delete the comment", err)
		}

		fmt.Println("✅ Comment deleted")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commentsCmd)
	commentsCmd.AddCommand(commentsListCmd)
	commentsCmd.AddCommand(commentsAddCmd)
	commentsCmd.AddCommand(commentsEditCmd)
	commentsCmd.AddCommand(commentsRemoveCmd)

	commentsListCmd.Flags().IntVar(&commentsPage, "page", 1, "Page number")
	commentsListCmd.Flags().IntVar(&commentsLimit, "limit", 0, "Page size (defaults to the configured page size)")
	commentsAddCmd.Flags().StringVarP(&commentsMessage, "message", "m", "", "Comment text")
	commentsEditCmd.Flags().StringVarP(&commentsMessage, "message", "m", "", "Replacement comment text")
}
