// Package cli provides the Cobra command structure for stdkit.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/stdkit/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root stdkit command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "stdkit",
		Short: "Dotenv files, case transforms and small process utilities",
		Long: `stdkit is a toolbox for the chores around running programs.

It reads, checks, formats and edits .env files, converts identifiers between
naming conventions, compares strings without regard to case, detects CI
services, masks secrets in output and runs commands with dotenv files
loaded into their environment.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newDotenvCommand())
	rootCmd.AddCommand(newCaseCommand())
	rootCmd.AddCommand(newFoldCommand())
	rootCmd.AddCommand(newCICommand())
	rootCmd.AddCommand(newMaskCommand())
	rootCmd.AddCommand(newExecCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
