package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bandungjournal/bandung-client/comments"
)

func newCommentsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Args:  cobra.NoArgs,
		Short: "Read and write article comments",
	}

	cmd.AddCommand(
		newCommentsListCommand(a),
		newCommentsAddCommand(a),
		newCommentsEditCommand(a),
		newCommentsDeleteCommand(a),
	)
	return cmd
}

func newCommentsListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <article-slug>",
		Args:  cobra.ExactArgs(1),
		Short: "List the comments on an article",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			list, err := comments.NewService(a.client).ListBySlug(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Println("No comments yet.")
				return nil
			}
			for _, comment := range list {
				indent := ""
				if comment.ParentID != "" {
					indent = "    "
				}
				fmt.Println(indent + labelStyle.Render(comment.Author.Name) + " " + dimStyle.Render(renderTimestamp(comment.CreatedAt)) + " " + dimStyle.Render("["+comment.ID+"]"))
				fmt.Println(indent + comment.Content)
			}
			return nil
		},
	}
}

func newCommentsAddCommand(a *app) *cobra.Command {
	var replyTo string

	cmd := &cobra.Command{
		Use:   "add <article-slug> <content>",
		Args:  cobra.ExactArgs(2),
		Short: "Comment on an article (requires login)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			comment, err := comments.NewService(a.client).Create(cmd.Context(), args[0], args[1], replyTo)
			if err != nil {
				return err
			}
			fmt.Println(successStyle.Render("Comment posted " + dimStyle.Render("["+comment.ID+"]")))
			return nil
		},
	}

	cmd.Flags().StringVar(&replyTo, "reply-to", "", "comment id to reply to")
	return cmd
}

func newCommentsEditCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <comment-id> <content>",
		Args:  cobra.ExactArgs(2),
		Short: "Edit one of your comments",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			if _, err := comments.NewService(a.client).Update(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Comment updated.")
			return nil
		},
	}
}

func newCommentsDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <comment-id>",
		Args:  cobra.ExactArgs(1),
		Short: "Delete one of your comments",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			if err := comments.NewService(a.client).Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Comment deleted.")
			return nil
		},
	}
}
