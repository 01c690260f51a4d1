// ABOUTME: info command
// ABOUTME: Summarizes a collection's layout, clip count and labels
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shtooka-go/shtooka/pkg/shtooka"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show a summary of the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCollection(func(c *shtooka.Collection) error {
				count, err := c.Count()
				if err != nil {
					return err
				}
				labels, err := c.FindPrefix("", 0)
				if err != nil {
					return err
				}
				clips, err := c.Clips()
				if err != nil {
					return err
				}
				var total int64
				unlabelled := 0
				for _, clip := range clips {
					total += clip.Size()
					if len(clip.Labels()) == 0 {
						unlabelled++
					}
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Archive:    %s\n", ctx.config.Archive)
				fmt.Fprintf(out, "Format:     %s\n", c.Layout().Name)
				fmt.Fprintf(out, "Clips:      %d (%s)\n", count, humanBytes(total))
				fmt.Fprintf(out, "Labels:     %d\n", len(labels))
				fmt.Fprintf(out, "Unlabelled: %d\n", unlabelled)
				return nil
			})
		},
	}
}
