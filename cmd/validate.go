package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/content"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a course file (JSON or YAML)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courses, err := content.LoadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range courses {
				exercises := 0
				for _, l := range c.Lessons {
					exercises += len(l.Exercises)
				}
				fmt.Fprintf(out, "%s: %d lessons, %d exercises\n", c.ID, len(c.Lessons), exercises)
			}
			fmt.Fprintf(out, "%s is valid\n", args[0])
			return nil
		},
	}
}
