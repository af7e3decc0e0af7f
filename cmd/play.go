package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/audio"
	"github.com/abhisek/lingo/internal/content"
	"github.com/abhisek/lingo/internal/runner"
	"github.com/abhisek/lingo/internal/schedule"
	"github.com/abhisek/lingo/internal/session"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play [lesson-id]",
		Short: "Play a lesson (default: your next unfinished one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lessonID := ""
			if len(args) == 1 {
				lessonID = args[0]
			}
			return runPlay(cmd, lessonID)
		},
	}
}

// runPlay opens the backend and plays one lesson in the terminal runner.
func runPlay(cmd *cobra.Command, lessonID string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	courses, err := loadCourses(d.cfg)
	if err != nil {
		return err
	}

	loop := schedule.NewLoop(d.log.Named("schedule"))
	defer loop.Stop()
	player := audio.NewSimulated(loop)
	player.ClipLength = d.cfg.Audio.ClipLength

	ctl, err := d.controller(ctx, session.Options{
		Scheduler: loop,
		Audio:     player,
	})
	if err != nil {
		return err
	}

	var lesson *content.Lesson
	if lessonID != "" {
		lesson = content.FindLesson(courses, lessonID)
		if lesson == nil {
			return fmt.Errorf("lesson %q not found", lessonID)
		}
		if lesson.Locked {
			return fmt.Errorf("lesson %q is locked", lessonID)
		}
	} else {
		lesson = session.NextLesson(courses, ctl.Progress())
		if lesson == nil {
			return fmt.Errorf("no playable lessons")
		}
	}

	r := runner.New(ctl, runner.Options{
		In:      cmd.InOrStdin(),
		Out:     cmd.OutOrStdout(),
		Fired:   loop.C(),
		Painter: painter(cmd),
		Logger:  d.log.Named("runner"),
	})
	_, err = r.Play(ctx, lesson)
	return err
}
