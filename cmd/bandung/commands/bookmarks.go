package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bandungjournal/bandung-client/bookmarks"
)

func newBookmarksCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmarks",
		Args:  cobra.NoArgs,
		Short: "Manage your saved articles (requires login)",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Args:  cobra.NoArgs,
			Short: "List your bookmarked articles",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.init(); err != nil {
					return err
				}
				list, err := bookmarks.NewService(a.client).List(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					fmt.Println("No bookmarks yet.")
					return nil
				}
				for _, bookmark := range list {
					fmt.Println(renderArticleRow(bookmark.Article))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <slug>",
			Args:  cobra.ExactArgs(1),
			Short: "Bookmark an article",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.init(); err != nil {
					return err
				}
				if err := bookmarks.NewService(a.client).Add(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Println(successStyle.Render("Bookmarked " + args[0]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <slug>",
			Args:  cobra.ExactArgs(1),
			Short: "Remove a bookmark",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.init(); err != nil {
					return err
				}
				if err := bookmarks.NewService(a.client).Remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Println("Removed " + args[0])
				return nil
			},
		},
	)
	return cmd
}
