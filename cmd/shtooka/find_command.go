// ABOUTME: find command
// ABOUTME: Lists labels starting with a prefix and the clips behind them
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shtooka-go/shtooka/pkg/shtooka"
)

func newFindCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "find <prefix>",
		Short: "Find labels starting with a prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCollection(func(c *shtooka.Collection) error {
				labels, err := c.FindPrefix(args[0], limit)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(labels) == 0 {
					fmt.Fprintf(out, "No labels start with %q\n", args[0])
					return nil
				}
				for _, label := range labels {
					clips, err := c.FindAll(label)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s\t%d\n", label, len(clips))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Show at most this many labels (0 for all)")
	return cmd
}
