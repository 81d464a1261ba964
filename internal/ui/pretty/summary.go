package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/stdkit/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 files need formatting, 1 failed (5 files checked)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, dryRun bool) string {
	checked := s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed+stats.FilesErrored,
		plural(stats.FilesProcessed+stats.FilesErrored, wordFile, wordFiles)))

	if stats.FilesChanged == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("All files formatted") + checked + "\n"
	}

	var parts []string

	switch {
	case stats.FilesWritten > 0:
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s formatted",
			stats.FilesWritten, plural(stats.FilesWritten, wordFile, wordFiles))))
	case stats.FilesChanged > 0:
		files := plural(stats.FilesChanged, wordFile, wordFiles)
		msg := fmt.Sprintf("%d %s %s formatting", stats.FilesChanged, files, plural(stats.FilesChanged, "needs", "need"))
		if dryRun {
			msg = fmt.Sprintf("%d %s would be formatted", stats.FilesChanged, files)
		}
		parts = append(parts, s.Warning.Render(msg))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + checked + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed+stats.FilesErrored)) + "\n")
	builder.WriteString("  Variables:         " +
		s.SummaryValue.Render(strconv.Itoa(stats.KeysTotal)) + "\n")

	if stats.FilesChanged > 0 {
		builder.WriteString("  Files unformatted: " +
			s.Warning.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}
	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Check failed"))
	case stats.FilesChanged > stats.FilesWritten:
		builder.WriteString(s.Warning.Render("Formatting needed"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
