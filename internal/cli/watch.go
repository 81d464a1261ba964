package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/stdkit/internal/logging"
	"github.com/yaklabco/stdkit/pkg/ansi"
	"github.com/yaklabco/stdkit/pkg/dotenv"
	"github.com/yaklabco/stdkit/pkg/fsutil"
)

func newDotenvWatchCommand() *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report changes to dotenv files as they are saved",
		Long: `Watch dotenv files and print the keys that were added, removed or
changed each time one is saved. Values are never printed. Runs until
interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				files = cfg.Dotenv.Files
			}
			mode, err := ansi.ParseMode(cfg.Color)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrConfig, err)
			}
			out := cmd.OutOrStdout()
			return watchFiles(cmd.Context(), out, ansi.NewPalette(mode, out), files)
		},
	}

	cmd.Flags().StringSliceVarP(&files, "file", "f", nil, "dotenv files to watch (default from config)")
	return cmd
}

// watchFiles watches every file until ctx is done or a watcher fails.
func watchFiles(ctx context.Context, out io.Writer, palette *ansi.Palette, files []string) error {
	logger := logging.Default()

	var mu sync.Mutex
	report := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, format, args...)
	}

	type watched struct {
		path     string
		previous map[string]string
		watcher  *dotenv.Watcher
	}
	var targets []watched
	closeAll := func() {
		for _, target := range targets {
			_ = target.watcher.Close()
		}
	}
	for _, path := range files {
		previous, err := initialValues(ctx, path)
		if err != nil {
			closeAll()
			return err
		}
		watcher, err := dotenv.NewWatcher(path)
		if err != nil {
			closeAll()
			return err
		}
		targets = append(targets, watched{path: path, previous: previous, watcher: watcher})
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, target := range targets {
		logger.Info("watching", logging.FieldPath, target.path, logging.FieldKeys, len(target.previous))

		previous := target.previous
		eg.Go(func() error {
			return target.watcher.Run(egCtx, func(doc *dotenv.Document, err error) {
				if err != nil {
					logger.Error("reload failed", logging.FieldPath, target.path, logging.FieldError, err)
					return
				}
				current := doc.ToMap()
				for _, change := range diffKeys(previous, current) {
					report("%s: %s\n", palette.Bold(target.path), colorChange(palette, change))
				}
				previous = current
			})
		})
	}
	return eg.Wait()
}

func initialValues(ctx context.Context, path string) (map[string]string, error) {
	doc, err := dotenv.LoadFile(ctx, path)
	if errors.Is(err, fsutil.ErrNotFound) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.ToMap(), nil
}

// diffKeys describes how the key set moved from before to after, one
// line per key in sorted order.
func diffKeys(before, after map[string]string) []string {
	keys := slices.Sorted(maps.Keys(before))
	for key := range after {
		if _, ok := before[key]; !ok {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	var changes []string
	for _, key := range keys {
		old, had := before[key]
		value, has := after[key]
		switch {
		case !had:
			changes = append(changes, "+ "+key)
		case !has:
			changes = append(changes, "- "+key)
		case old != value:
			changes = append(changes, "~ "+key)
		}
	}
	return changes
}

func colorChange(palette *ansi.Palette, change string) string {
	switch change[0] {
	case '+':
		return palette.Green(change)
	case '-':
		return palette.Red(change)
	default:
		return palette.Yellow(change)
	}
}
