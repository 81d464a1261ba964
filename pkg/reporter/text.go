package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/stdkit/internal/ui/pretty"
	"github.com/yaklabco/stdkit/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No dotenv files found."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)

		line := r.styles.FormatFileStatus(path, file, result.DryRun)
		if line == "" && r.opts.Verbose {
			line = r.styles.FormatFileHeader(path, file.Keys) + " " + r.styles.Dim.Render("ok") + "\n"
		}
		fmt.Fprint(r.bw, line)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, result.DryRun))
	}

	return attention(result), nil
}
