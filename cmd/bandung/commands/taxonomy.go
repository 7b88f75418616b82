package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bandungjournal/bandung-client/categories"
	"github.com/bandungjournal/bandung-client/tags"
)

func newCategoriesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Args:  cobra.NoArgs,
		Short: "Browse article categories",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Args:  cobra.NoArgs,
			Short: "List all categories",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.init(); err != nil {
					return err
				}
				list, err := categories.NewService(a.client).List(cmd.Context())
				if err != nil {
					return err
				}
				for _, category := range list {
					row := titleStyle.Render(category.Name) + "  " + dimStyle.Render(category.Slug)
					if category.Count != nil && category.Count.Articles > 0 {
						row += "  " + dimStyle.Render(strconv.Itoa(category.Count.Articles)+" articles")
					}
					fmt.Println(row)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <slug>",
			Args:  cobra.ExactArgs(1),
			Short: "Show a category and its recent articles",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.init(); err != nil {
					return err
				}
				category, err := categories.NewService(a.client).GetBySlug(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Println(titleStyle.Render(category.Name))
				if category.Description != "" {
					fmt.Println(dimStyle.Render(category.Description))
				}
				for _, article := range category.Articles {
					fmt.Println("  " + article.Title + "  " + dimStyle.Render(article.Slug))
				}
				return nil
			},
		},
	)
	return cmd
}

func newTagsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Args:  cobra.NoArgs,
		Short: "Browse article tags",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Args:  cobra.NoArgs,
			Short: "List all tags",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.init(); err != nil {
					return err
				}
				list, err := tags.NewService(a.client).List(cmd.Context())
				if err != nil {
					return err
				}
				for _, tag := range list {
					fmt.Println(dimStyle.Render("#") + tag.Slug + "  " + dimStyle.Render(tag.Name))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <slug>",
			Args:  cobra.ExactArgs(1),
			Short: "Show the articles carrying a tag",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.init(); err != nil {
					return err
				}
				tag, err := tags.NewService(a.client).GetBySlug(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Println(titleStyle.Render("#" + tag.Slug))
				for _, article := range tag.Articles {
					fmt.Println("  " + article.Title + "  " + dimStyle.Render(article.Slug))
				}
				return nil
			},
		},
	)
	return cmd
}
