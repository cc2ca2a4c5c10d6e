package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/goliatone/go-linklist/pkg/linklist"
	"github.com/spf13/cobra"
)

func newFormsCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List the forms available to renders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return root.withModule(cmd, func(_ context.Context, module *linklist.Module) error {
				for _, name := range module.Templates().FormNames() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}
}

func newDefaultsCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults <tag>",
		Short: "Show the attribute defaults of a tag and where each comes from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withModule(cmd, func(_ context.Context, module *linklist.Module) error {
				tag := args[0]
				defaults := module.Container().Defaults
				attrs := defaults.For(tag)
				if len(attrs) == 0 {
					return fmt.Errorf("no defaults for tag %q", tag)
				}
				keys := make([]string, 0, len(attrs))
				for key := range attrs {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				for _, key := range keys {
					fmt.Fprintf(cmd.OutOrStdout(), "%s=%q (%s)\n", key, attrs[key], defaults.Source(tag, key))
				}
				return nil
			})
		},
	}
}
