package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bandungjournal/bandung-client/authors"
)

func newAuthorsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authors",
		Args:  cobra.NoArgs,
		Short: "Browse the newsroom's authors",
	}

	cmd.AddCommand(
		newAuthorsListCommand(a),
		newAuthorsGetCommand(a),
		newAuthorsArticlesCommand(a),
	)
	return cmd
}

func newAuthorsListCommand(a *app) *cobra.Command {
	var params authors.ListParams

	cmd := &cobra.Command{
		Use:   "list",
		Args:  cobra.NoArgs,
		Short: "List authors",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			result, err := authors.NewService(a.client).List(cmd.Context(), &params)
			if err != nil {
				return err
			}
			for _, author := range result.Authors {
				fmt.Println(titleStyle.Render(author.Name) + "  " + dimStyle.Render(author.ID))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&params.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "authors per page")
	return cmd
}

func newAuthorsGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <author-id>",
		Args:  cobra.ExactArgs(1),
		Short: "Show an author's profile and byline statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			svc := authors.NewService(a.client)

			author, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(titleStyle.Render(author.Name))
			if author.Bio != "" {
				fmt.Println(author.Bio)
			}
			if stats, err := svc.Stats(cmd.Context(), args[0]); err == nil {
				fmt.Println(dimStyle.Render(strconv.Itoa(stats.ArticleCount) + " articles, " +
					strconv.Itoa(stats.TotalViews) + " views, " +
					strconv.Itoa(stats.CommentCount) + " comments"))
			}
			return nil
		},
	}
}

func newAuthorsArticlesCommand(a *app) *cobra.Command {
	var params authors.ListParams

	cmd := &cobra.Command{
		Use:   "articles <author-id>",
		Args:  cobra.ExactArgs(1),
		Short: "List an author's published articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			result, err := authors.NewService(a.client).Articles(cmd.Context(), args[0], &params)
			if err != nil {
				return err
			}
			for _, article := range result.Articles {
				fmt.Println(renderArticleRow(article))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&params.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "articles per page")
	return cmd
}
