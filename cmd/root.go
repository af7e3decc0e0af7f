package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/config"
)

// Execute runs the lingo command line.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lingo",
		Short: "Language lessons in your terminal",
		Long:  "Lingo runs bite-sized language lessons (translation, matching, listening, pictures and stroke order) and tracks your streak and XP.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, "")
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides LINGO_DB env var)")
	flags.String("config", "", "Path to YAML config file (overrides LINGO_CONFIG env var)")
	flags.String("store", "", "Progress backend: sqlite or redis (overrides LINGO_STORE env var)")
	flags.String("course", "", "Course file to use instead of the built-in course")
	flags.String("log", "", "Log mode: off, dev or prod (overrides LINGO_LOG env var)")
	flags.Bool("plain", false, "Disable colors")

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newLessonsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// loadConfig builds the configuration: file and environment first, then
// command-line flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("LINGO_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Store.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Store.Backend = v
	}
	if v, _ := cmd.Flags().GetString("course"); v != "" {
		cfg.CoursePath = v
	}
	if v, _ := cmd.Flags().GetString("log"); v != "" {
		cfg.Log.Mode = v
	}
	return cfg, cfg.Validate()
}
