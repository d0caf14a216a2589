package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pathquiz",
	Short: "Terminal drilling app for exam question banks",
	Long:  "Pathquiz — terminal app for drilling JSON question banks by course, chapter, and question type.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Path to the question bank directory (overrides PATHQUIZ_DATA env var)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(banksCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataDir returns the bank directory using the --data flag
// (highest priority), then the PATHQUIZ_DATA env var, then ./data.
func resolveDataDir(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return p
	}
	if p := os.Getenv("PATHQUIZ_DATA"); p != "" {
		return p
	}
	return "data"
}
