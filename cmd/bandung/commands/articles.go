package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bandungjournal/bandung-client/articles"
	"github.com/bandungjournal/bandung-client/newspaper"
)

func newArticlesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "articles",
		Args:  cobra.NoArgs,
		Short: "Browse and search published articles",
	}

	cmd.AddCommand(
		newArticlesListCommand(a),
		newArticlesGetCommand(a),
	)
	return cmd
}

func newArticlesListCommand(a *app) *cobra.Command {
	var params articles.ListParams

	cmd := &cobra.Command{
		Use:   "list",
		Args:  cobra.NoArgs,
		Short: "List published articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}

			result, err := articles.NewService(a.client).List(cmd.Context(), &params)
			if err != nil {
				return err
			}
			for _, article := range result.Articles {
				fmt.Println(renderArticleRow(article))
			}
			fmt.Println(renderPagination(result.Meta))
			return nil
		},
	}

	cmd.Flags().IntVar(&params.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "articles per page")
	cmd.Flags().StringVar(&params.CategorySlug, "category", "", "filter by category slug")
	cmd.Flags().StringVarP(&params.Search, "search", "s", "", "full text search")
	return cmd
}

func newArticlesGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <slug>",
		Args:  cobra.ExactArgs(1),
		Short: "Read a single article",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}

			article, err := articles.NewService(a.client).GetBySlug(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(titleStyle.Render(article.Title))
			byline := "By " + article.Author.Name
			if article.PublishedAt != nil {
				byline += ", " + article.PublishedAt.Format("2 January 2006")
			}
			fmt.Println(dimStyle.Render(byline))
			if article.Category.Name != "" {
				fmt.Println(badgeStyle.Render(article.Category.Name))
			}
			fmt.Println()
			fmt.Println(article.Content)
			if len(article.Tags) > 0 {
				fmt.Println()
				for _, tag := range article.Tags {
					fmt.Print(dimStyle.Render("#"+tag.Slug) + " ")
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newTrendingCommand(a *app) *cobra.Command {
	var limit int
	var categoryID string

	cmd := &cobra.Command{
		Use:   "trending",
		Args:  cobra.NoArgs,
		Short: "Show the most read articles right now",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}

			trending, err := newspaper.NewService(a.client).Trending(cmd.Context(), limit, categoryID)
			if err != nil {
				return err
			}
			for i, item := range trending {
				fmt.Println(labelStyle.Render(strconv.Itoa(i+1)+".") + " " + renderArticleRow(item.Article))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of articles")
	cmd.Flags().StringVar(&categoryID, "category-id", "", "restrict to one category")
	return cmd
}

func newFeaturedCommand(a *app) *cobra.Command {
	var position string

	cmd := &cobra.Command{
		Use:   "featured",
		Args:  cobra.NoArgs,
		Short: "Show the editorially featured articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}

			featured, err := newspaper.NewService(a.client).Featured(cmd.Context(), newspaper.Position(position))
			if err != nil {
				return err
			}
			for _, item := range featured {
				row := renderArticleRow(item.Article)
				if item.Position != "" {
					row += "  " + badgeStyle.Render(string(item.Position))
				}
				fmt.Println(row)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&position, "position", "", "filter by placement (hero, sidebar, trending)")
	return cmd
}

func newBreakingCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "breaking",
		Args:  cobra.NoArgs,
		Short: "Show active breaking news",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}

			items, err := newspaper.NewService(a.client).BreakingNews(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No breaking news.")
				return nil
			}
			for _, item := range items {
				fmt.Println(errorStyle.Render("BREAKING") + " " + titleStyle.Render(item.Headline))
				if item.URL != "" {
					fmt.Println("  " + dimStyle.Render(item.URL))
				}
			}
			return nil
		},
	}
}
