// ABOUTME: play command
// ABOUTME: Plays the clips recorded for one or more labels in turn
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shtooka-go/shtooka/pkg/shtooka"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "play <label>...",
		Short: "Play the clip recorded for each label",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCollection(func(c *shtooka.Collection) error {
				for _, label := range args {
					clips, err := clipsFor(c, label, all)
					if err != nil {
						return err
					}
					for _, clip := range clips {
						ctx.logger.Info().Str("label", label).Str("clip", clip.Name()).Msg("Playing clip")
						if err := clip.Play(); err != nil {
							return err
						}
						fmt.Fprintf(cmd.OutOrStdout(), "played %s (%s)\n", label, clip.Name())
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Play every clip recorded for a label, not just the first")
	return cmd
}

func clipsFor(c *shtooka.Collection, label string, all bool) ([]*shtooka.Clip, error) {
	if !all {
		clip, err := c.Find(label)
		if err != nil {
			return nil, err
		}
		return []*shtooka.Clip{clip}, nil
	}

	clips, err := c.FindAll(label)
	if err != nil {
		return nil, err
	}
	if len(clips) == 0 {
		return nil, fmt.Errorf("%w: %q", shtooka.ErrClipNotFound, label)
	}
	return clips, nil
}
