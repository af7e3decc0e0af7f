package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/schedule"
	"github.com/abhisek/lingo/internal/session"
)

func newResetCmd() *cobra.Command {
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset learner progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return fmt.Errorf("this erases your streak, XP and completed lessons; rerun with --yes to confirm")
			}
			d, err := openDeps(cmd)
			if err != nil {
				return err
			}
			defer d.Close()

			// No lesson is played, so tasks never need to fire.
			ctl, err := d.controller(cmd.Context(), session.Options{
				Scheduler: schedule.NewManual(time.Now()),
			})
			if err != nil {
				return err
			}
			if err := ctl.ResetProgress(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
			return nil
		},
	}
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
	return resetCmd
}
