package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/linklist"
	"github.com/spf13/cobra"
)

func newRenderCmd(root *rootFlags) *cobra.Command {
	var (
		req  domain.Request
		file string
	)
	cmd := &cobra.Command{
		Use:   "render [fragment]",
		Short: "Render a template fragment containing link tags",
		Example: `  linklist render '{{ linklist("category", "tools", "wraptag", "ul", "break", "li") }}'
  linklist render --context link --category tools '{{ linklist() }}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fragment, err := readFragment(args, file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return root.withModule(cmd, func(ctx context.Context, module *linklist.Module) error {
				out, err := module.Render(ctx, module.NewScope(req), fragment)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the fragment from a file, - for stdin")
	cmd.Flags().StringVar(&req.Context, "context", "", "ambient context, e.g. link")
	cmd.Flags().StringVar(&req.Category, "category", "", "ambient category")
	cmd.Flags().StringVar(&req.Author, "author", "", "ambient author login")
	cmd.Flags().StringVar(&req.Section, "section", "", "ambient section")
	cmd.Flags().StringVar(&req.Locale, "locale", "", "render locale")
	cmd.Flags().IntVar(&req.Page, "page", 1, "current page")
	return cmd
}

func readFragment(args []string, file string, stdin io.Reader) (string, error) {
	switch {
	case len(args) == 1:
		return args[0], nil
	case file == "-":
		raw, err := io.ReadAll(stdin)
		return string(raw), err
	case file != "":
		raw, err := os.ReadFile(file)
		return string(raw), err
	}
	return "", fmt.Errorf("a fragment argument or --file is required")
}
