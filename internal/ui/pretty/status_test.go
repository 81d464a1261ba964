package pretty_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/stdkit/internal/ui/pretty"
	"github.com/yaklabco/stdkit/pkg/dotenv"
	"github.com/yaklabco/stdkit/pkg/runner"
)

func TestFormatFileError(t *testing.T) {
	styles := pretty.NewStyles(false)

	_, parseErr := dotenv.Parse("A=1\nBAD KEY=2")
	assert.Equal(t, "app/.env:2: invalid key \"BAD KEY\"\n",
		styles.FormatFileError("app/.env", fmt.Errorf("wrapped: %w", parseErr)))

	_, parseErr = dotenv.Parse("=x")
	assert.Equal(t, ".env:1: empty key\n", styles.FormatFileError(".env", parseErr))

	assert.Equal(t, ".env: error: boom\n", styles.FormatFileError(".env", errors.New("boom")))
}

func TestFormatFileStatus(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name    string
		outcome runner.FileOutcome
		dryRun  bool
		want    string
	}{
		{name: "unchanged", outcome: runner.FileOutcome{}, want: ""},
		{name: "written", outcome: runner.FileOutcome{Changed: true, Written: true}, want: ".env formatted\n"},
		{name: "dry run", outcome: runner.FileOutcome{Changed: true}, dryRun: true, want: ".env would be formatted\n"},
		{name: "check", outcome: runner.FileOutcome{Changed: true}, want: ".env not formatted\n"},
		{name: "error", outcome: runner.FileOutcome{Error: errors.New("denied")}, want: ".env: error: denied\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, styles.FormatFileStatus(".env", tc.outcome, tc.dryRun))
		})
	}
}

func TestFormatFileHeader(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, ".env", styles.FormatFileHeader(".env", 0))
	assert.Equal(t, ".env (1 variable)", styles.FormatFileHeader(".env", 1))
	assert.Equal(t, ".env (3 variables)", styles.FormatFileHeader(".env", 3))
}
