// ABOUTME: list command
// ABOUTME: Prints every clip of the collection as a table
package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/shtooka-go/shtooka/pkg/shtooka"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the clips of a collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCollection(func(c *shtooka.Collection) error {
				clips, err := c.Clips()
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(clips) == 0 {
					fmt.Fprintln(out, "Collection is empty")
					return nil
				}

				shown := clips
				if limit > 0 && limit < len(clips) {
					shown = clips[:limit]
				}
				fmt.Fprintln(out, clipTable(shown))
				if len(shown) < len(clips) {
					fmt.Fprintf(out, "%d of %d clips shown\n", len(shown), len(clips))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many clips (0 for all)")
	return cmd
}

// clipTable renders one row per clip with the index and size right-aligned
func clipTable(clips []*shtooka.Clip) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Name", "Labels", "Size"})
	for _, clip := range clips {
		tw.AppendRow(table.Row{
			clip.Index(),
			clip.Name(),
			strings.Join(clip.Labels(), ", "),
			humanBytes(clip.Size()),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func humanBytes(v int64) string {
	const unit = 1024
	if v < unit {
		return fmt.Sprintf("%d B", v)
	}
	div, exp := int64(unit), 0
	for n := v / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(v)/float64(div), "KMGTPE"[exp])
}
