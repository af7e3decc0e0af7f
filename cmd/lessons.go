package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/ui/theme"
)

func newLessonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lessons",
		Short: "List courses and lessons",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd)
			if err != nil {
				return err
			}
			defer d.Close()

			courses, err := loadCourses(d.cfg)
			if err != nil {
				return err
			}
			rec, err := d.progress.Load(cmd.Context())
			if err != nil {
				d.log.Warn("load progress", zap.Error(err))
				rec = nil
			}
			if rec == nil {
				rec = progress.New(d.cfg.DailyGoal)
			}

			pt := painter(cmd)
			out := cmd.OutOrStdout()
			for _, c := range courses {
				fmt.Fprintln(out, pt.Paint(theme.Title, c.Title))
				if c.Subtitle != "" {
					fmt.Fprintln(out, pt.Paint(theme.Subtitle, c.Subtitle))
				}
				fmt.Fprintln(out, strings.Repeat("─", 60))
				for _, l := range c.Lessons {
					mark := "  "
					switch {
					case rec.HasCompleted(l.ID):
						mark = pt.Paint(theme.Correct, "✓ ")
					case l.Locked:
						mark = pt.Paint(theme.Subtitle, "• ")
					}
					line := fmt.Sprintf("%-20s  %-28s  %2d exercises", l.ID, l.Title, len(l.Exercises))
					if l.Locked {
						line += pt.Paint(theme.Subtitle, "  (locked)")
					}
					fmt.Fprintln(out, mark+line)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
