package main

import (
	"context"
	"fmt"

	"github.com/goliatone/go-linklist/pkg/commands"
	"github.com/goliatone/go-linklist/pkg/linklist"
	"github.com/spf13/cobra"
)

var demoLinks = []commands.SaveLink{
	{Name: "Go", URL: "https://go.dev", Category: "tools", Author: "admin", SortKey: "01", Description: "The Go programming language"},
	{Name: "pkg.go.dev", URL: "https://pkg.go.dev", Category: "tools", Author: "admin", SortKey: "02", Description: "Go package discovery"},
	{Name: "Go Blog", URL: "https://go.dev/blog", Category: "news", Author: "editor", SortKey: "03", Description: "News from the Go team"},
}

func newSeedCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo links, authors and categories into an empty store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return root.withModule(cmd, func(ctx context.Context, module *linklist.Module) error {
				cmds := module.Commands()
				for _, msg := range demoLinks {
					msg.AllowUpdate = true
					if err := cmds.SaveLink.Execute(ctx, msg); err != nil {
						return fmt.Errorf("seed link %s: %w", msg.Name, err)
					}
				}
				authors := []commands.SaveAuthor{
					{Login: "admin", RealName: "Site Admin"},
					{Login: "editor", RealName: "News Editor"},
				}
				for _, msg := range authors {
					if err := cmds.SaveAuthor.Execute(ctx, msg); err != nil {
						return fmt.Errorf("seed author %s: %w", msg.Login, err)
					}
				}
				categories := []commands.SaveCategory{
					{Name: "tools", Title: "Tools"},
					{Name: "news", Title: "News"},
				}
				for _, msg := range categories {
					if err := cmds.SaveCategory.Execute(ctx, msg); err != nil {
						return fmt.Errorf("seed category %s: %w", msg.Name, err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d links\n", len(demoLinks))
				return nil
			})
		},
	}
}
