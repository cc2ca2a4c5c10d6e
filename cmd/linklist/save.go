package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-linklist/pkg/commands"
	"github.com/goliatone/go-linklist/pkg/linklist"
	"github.com/spf13/cobra"
)

func newAddCmd(root *rootFlags) *cobra.Command {
	var (
		msg  commands.SaveLink
		date string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create or update a link",
		RunE: func(cmd *cobra.Command, _ []string) error {
			trimmed(&msg.Name, &msg.URL, &msg.Category, &msg.Author)
			if date != "" {
				when, err := time.Parse(time.RFC3339, date)
				if err != nil {
					return fmt.Errorf("--date: %w", err)
				}
				msg.Date = when
			}
			return root.withModule(cmd, func(ctx context.Context, module *linklist.Module) error {
				return module.Commands().SaveLink.Execute(ctx, msg)
			})
		},
	}
	cmd.Flags().StringVar(&msg.Name, "name", "", "link name")
	cmd.Flags().StringVar(&msg.URL, "url", "", "link URL")
	cmd.Flags().StringVar(&msg.Description, "description", "", "link description")
	cmd.Flags().StringVar(&msg.Category, "category", "", "category name")
	cmd.Flags().StringVar(&msg.Author, "author", "", "author login")
	cmd.Flags().StringVar(&msg.SortKey, "sort", "", "sort key, defaults to the name")
	cmd.Flags().StringVar(&date, "date", "", "RFC3339 date")
	cmd.Flags().BoolVar(&msg.AllowUpdate, "update", false, "update an existing link")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func newFormCmd(root *rootFlags) *cobra.Command {
	var (
		msg  commands.SaveForm
		file string
	)
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Create or update a named form",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				body, err := readFragment(nil, file, cmd.InOrStdin())
				if err != nil {
					return err
				}
				msg.Body = body
			}
			return root.withModule(cmd, func(ctx context.Context, module *linklist.Module) error {
				return module.Commands().SaveForm.Execute(ctx, msg)
			})
		},
	}
	cmd.Flags().StringVar(&msg.Name, "name", "", "form name")
	cmd.Flags().StringVar(&msg.Type, "type", "", "form type (link, misc)")
	cmd.Flags().StringVar(&msg.Body, "body", "", "form body")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the body from a file, - for stdin")
	cmd.Flags().BoolVar(&msg.AllowUpdate, "update", false, "update an existing form")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newAuthorCmd(root *rootFlags) *cobra.Command {
	var msg commands.SaveAuthor
	cmd := &cobra.Command{
		Use:   "author",
		Short: "Create or update an author",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return root.withModule(cmd, func(ctx context.Context, module *linklist.Module) error {
				return module.Commands().SaveAuthor.Execute(ctx, msg)
			})
		},
	}
	cmd.Flags().Int64Var(&msg.ID, "id", 0, "author id to update")
	cmd.Flags().StringVar(&msg.Login, "login", "", "author login")
	cmd.Flags().StringVar(&msg.RealName, "real-name", "", "display name")
	_ = cmd.MarkFlagRequired("login")
	return cmd
}

func newCategoryCmd(root *rootFlags) *cobra.Command {
	var msg commands.SaveCategory
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Create or update a link category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return root.withModule(cmd, func(ctx context.Context, module *linklist.Module) error {
				return module.Commands().SaveCategory.Execute(ctx, msg)
			})
		},
	}
	cmd.Flags().Int64Var(&msg.ID, "id", 0, "category id to update")
	cmd.Flags().StringVar(&msg.Name, "name", "", "category name")
	cmd.Flags().StringVar(&msg.Title, "title", "", "category title")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func trimmed(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}
