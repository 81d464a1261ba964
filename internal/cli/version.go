package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/stdkit/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of stdkit.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				if err := encoder.Encode(map[string]string{
					logging.FieldVersion: info.Version,
					logging.FieldCommit:  info.Commit,
					logging.FieldBuilt:   info.Date,
				}); err != nil {
					return fmt.Errorf("encode JSON: %w", err)
				}
				return nil
			}

			logger := log.NewWithOptions(out, log.Options{
				ReportTimestamp: false,
				ReportCaller:    false,
			})
			logger.SetLevel(log.InfoLevel)
			logger.Info("stdkit",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON object")
	return cmd
}
