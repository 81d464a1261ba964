package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/stdkit/pkg/ci"
	"github.com/yaklabco/stdkit/pkg/env"
)

type ciOutput struct {
	CI       bool   `json:"ci"`
	Provider string `json:"provider,omitempty"`
	ID       string `json:"id,omitempty"`
}

func newCICommand() *cobra.Command {
	var asJSON, list, quiet bool

	cmd := &cobra.Command{
		Use:   "ci",
		Short: "Detect the CI service running this process",
		Long: `Print the CI service detected from the environment and exit 0, or exit 1
when no service is detected.

Examples:
  stdkit ci              # GitHub Actions
  stdkit ci --quiet      # Only the exit status, for shell conditions
  stdkit ci --list       # Every service that can be detected`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if list {
				for _, p := range ci.Providers() {
					fmt.Fprintf(out, "%-10s %s\n", p.ID, p.Name)
				}
				return nil
			}

			provider, ok := ci.Detect(env.OS())
			switch {
			case quiet:
			case asJSON:
				encoder := json.NewEncoder(out)
				if err := encoder.Encode(ciOutput{CI: ok, Provider: provider.Name, ID: provider.ID}); err != nil {
					return fmt.Errorf("encode JSON: %w", err)
				}
			case ok:
				fmt.Fprintln(out, provider.Name)
			default:
				fmt.Fprintln(out, "not running in CI")
			}

			if !ok {
				return ErrIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON object")
	cmd.Flags().BoolVar(&list, "list", false, "list detectable services")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing")
	return cmd
}
