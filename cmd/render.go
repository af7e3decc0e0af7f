package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/content"
	"github.com/abhisek/lingo/internal/render"
)

func newRenderCmd() *cobra.Command {
	renderCmd := &cobra.Command{
		Use:   "render <character>",
		Short: "Render a character's stroke order to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			courses, err := loadCourses(cfg)
			if err != nil {
				return err
			}
			ch := content.FindCharacter(courses, args[0])
			if ch == nil {
				return fmt.Errorf("character %q not found in any stroke exercise", args[0])
			}

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = ch.ID + ".png"
			}
			size, _ := cmd.Flags().GetInt("size")
			completed, _ := cmd.Flags().GetInt("completed")
			starts, _ := cmd.Flags().GetBool("starts")

			err = render.SavePNG(out, *ch, render.Options{
				Size:       size,
				Completed:  completed,
				MarkStarts: starts,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d strokes)\n", out, len(ch.StrokeOrder))
			return nil
		},
	}
	renderCmd.Flags().String("out", "", "Output PNG path (default <character-id>.png)")
	renderCmd.Flags().Int("size", render.DefaultSize, "Image size in pixels")
	renderCmd.Flags().Int("completed", -1, "Strokes drawn as finished; -1 for all")
	renderCmd.Flags().Bool("starts", false, "Mark where each remaining stroke starts")
	return renderCmd
}
