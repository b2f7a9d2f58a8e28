package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizpilot",
	Short: "Autoplay a trivia quiz in a recorded browser session",
	Long: "QuizPilot drives a Chromium session through a timed trivia quiz, answering\n" +
		"questions from a known answer bank and recording the whole run to video.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}
