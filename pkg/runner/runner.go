package runner

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/stdkit/internal/logging"
	"github.com/yaklabco/stdkit/pkg/config"
	"github.com/yaklabco/stdkit/pkg/dotenv"
	"github.com/yaklabco/stdkit/pkg/fsutil"
)

// Run discovers dotenv files under opts.Paths and processes them
// concurrently. Outcomes are returned in path order.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files:  make([]FileOutcome, 0, len(files)),
		DryRun: opts.DryRun,
	}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered dotenv files", logging.FieldFilesDiscovered, len(files), logging.FieldMode, opts.Mode)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	cfg := opts.effectiveConfig()

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range workCh {
				outcome := ProcessFile(ctx, path, opts.Mode, opts.DryRun, cfg)
				if outcome.Error != nil {
					logger.Debug("file failed", logging.FieldPath, path, logging.FieldError, outcome.Error)
				}
				select {
				case <-ctx.Done():
					return
				case outCh <- outcome:
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; collect then rebuild in discovery order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
	)
	return result, nil
}

// ProcessFile parses one file and, in ModeFormat without dryRun, writes
// its canonical form back.
func ProcessFile(ctx context.Context, path string, mode Mode, dryRun bool, cfg *config.Config) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Original = string(content)

	doc, err := dotenv.Parse(outcome.Original)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	for _, tok := range doc.All() {
		if tok.Kind == dotenv.KindItem {
			outcome.Keys++
		}
	}

	outcome.Formatted = dotenv.Stringify(doc, dotenv.StringifyOptions{OnlyLineFeed: cfg.OnlyLineFeed()})
	outcome.Changed = outcome.Formatted != outcome.Original

	if mode != ModeFormat || dryRun || !outcome.Changed {
		return outcome
	}

	written, err := dotenv.Save(ctx, path, doc, dotenv.SaveOptions{
		Backup:       cfg.BackupConfig(),
		OnlyLineFeed: cfg.OnlyLineFeed(),
	})
	if err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", path, err)
		return outcome
	}
	outcome.Written = written
	return outcome
}
