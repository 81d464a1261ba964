package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/stdkit/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	DryRun  bool             `json:"dryRun,omitempty"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path    string `json:"path"`
	Keys    int    `json:"keys"`
	Changed bool   `json:"changed"`
	Written bool   `json:"written,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked int `json:"filesChecked"`
	FilesChanged int `json:"filesChanged"`
	FilesWritten int `json:"filesWritten"`
	FilesErrored int `json:"filesErrored"`
	Keys         int `json:"keys"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return attention(result), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.DryRun = result.DryRun
	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:    displayPath(file.Path, r.opts.WorkingDir),
			Keys:    file.Keys,
			Changed: file.Changed,
			Written: file.Written,
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		output.Files = append(output.Files, fileResult)
	}

	output.Summary = JSONSummary{
		FilesChecked: result.Stats.FilesProcessed + result.Stats.FilesErrored,
		FilesChanged: result.Stats.FilesChanged,
		FilesWritten: result.Stats.FilesWritten,
		FilesErrored: result.Stats.FilesErrored,
		Keys:         result.Stats.KeysTotal,
	}

	return output
}
