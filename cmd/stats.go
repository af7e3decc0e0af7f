package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lingo/internal/content"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/theme"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show learning statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := openDeps(cmd)
			if err != nil {
				return err
			}
			defer d.Close()

			rec, err := d.progress.Load(ctx)
			if err != nil {
				return fmt.Errorf("load progress: %w", err)
			}
			if rec == nil {
				rec = progress.New(d.cfg.DailyGoal)
			}

			pt := painter(cmd)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, pt.Paint(theme.Title, "Progress"))
			fmt.Fprintf(out, "  Streak          %s\n", pt.Paint(theme.Streak, fmt.Sprintf("%d days", rec.CurrentStreak)))
			fmt.Fprintf(out, "  XP              %d\n", rec.XPPoints)
			fmt.Fprintf(out, "  Words learned   %d\n", rec.WordsLearned)
			fmt.Fprintf(out, "  Lessons done    %d\n", len(rec.CompletedLessons))

			now := time.Now()
			earned := 0
			if progress.SameDay(rec.LastActivity, now) {
				earned = rec.DailyXPEarned
			}
			bar := components.NewProgressBar("  Daily goal", rec.DailyGoalFraction(now), true, 50)
			fmt.Fprintf(out, "%s  %d/%d XP\n", bar.View(pt), earned, rec.DailyXPGoal)

			if d.events == nil {
				fmt.Fprintln(out, pt.Paint(theme.Hint, "\nAnswer history is only kept by the sqlite backend."))
				return nil
			}

			sessions, err := d.events.CompletedSessions(ctx)
			if err != nil {
				d.log.Warn("count sessions", zap.Error(err))
			}
			stats, err := d.events.KindAccuracy(ctx)
			if err != nil {
				return fmt.Errorf("query accuracy: %w", err)
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, pt.Paint(theme.Title, "History"))
			fmt.Fprintf(out, "  Lessons played  %d\n", sessions)
			if len(stats) == 0 {
				fmt.Fprintln(out, pt.Paint(theme.Hint, "  No answers yet. Run `lingo play` to start."))
				return nil
			}
			for _, s := range stats {
				label := fmt.Sprintf("  %-16s", content.Kind(s.Kind).DisplayName())
				bar := components.NewProgressBar(label, s.Accuracy, true, 50)
				fmt.Fprintf(out, "%s  %d/%d\n", bar.View(pt), s.Correct, s.Attempts)
			}
			return nil
		},
	}
}
