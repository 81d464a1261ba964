package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/stdkit/internal/ui/pretty"
	"github.com/yaklabco/stdkit/pkg/runner"
)

// DiffReporter formats results as unified diffs in git style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var filesWithDiffs, totalAdditions, totalDeletions int

	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			fmt.Fprint(r.out, r.styles.FormatFileError(path, file.Error))
			continue
		}

		diff := NewDiff(path, file.Original, file.Formatted)
		if !diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		totalAdditions += diff.Additions
		totalDeletions += diff.Deletions
		r.writeDiff(diff)
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(filesWithDiffs, totalAdditions, totalDeletions)
	}

	return attention(result), nil
}

func (r *DiffReporter) writeDiff(diff *Diff) {
	header := fmt.Sprintf("diff --git a/%s b/%s", diff.Path, diff.Path)
	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(header))
	fmt.Fprintln(r.out, r.styles.DiffRemove.Render("--- a/"+diff.Path))
	fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+++ b/"+diff.Path))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(r.out, r.styles.DiffHunk.Render(hunk.Header()))
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineAdd:
				fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+"+line.Content))
			case LineRemove:
				fmt.Fprintln(r.out, r.styles.DiffRemove.Render("-"+line.Content))
			case LineContext:
				fmt.Fprintln(r.out, r.styles.DiffContext.Render(" "+line.Content))
			}
		}
	}

	fmt.Fprintln(r.out)
}

func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, pluralWord(files, "file", "files"))}

	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, pluralWord(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, pluralWord(deletions, "deletion", "deletions"))))
	}

	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}

func pluralWord(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
