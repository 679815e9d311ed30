package commands

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/insertsym/cmd/insertsym/opts"
	"gitlab.com/tozd/go/errors"
)

const defaultDebounce = 250 * time.Millisecond

// NewWatchCmd creates a new watch command
func NewWatchCmd(opts *opts.RootOpts) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-import a symbol file every time it changes",
		Long: `Watch imports the file once, then again after every write. Rejected
imports leave the table unchanged and are reported; watching continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			reload := func(ctx context.Context) error {
				err := importFiles(cmd, opts, []string{path}, opts.Config.ImportFormat(), false)
				if errors.Is(err, ErrRejected) {
					return nil
				}
				return err
			}
			if err := reload(ctx); err != nil {
				return err
			}

			opts.UserLogger.LogStateChange("watching " + path + " for changes")
			w := &Watcher{
				Path:     path,
				Debounce: debounce,
				Reload:   reload,
				OnEvent: func(event string) {
					opts.UserLogger.LogWatch(path, event)
				},
			}
			return w.Run(ctx)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "wait this long after the last write before reloading")
	return cmd
}

// 👀 Watcher calls Reload after writes to Path settle. Events and reloads
// run on the goroutine calling Run.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Reload   func(ctx context.Context) error
	OnEvent  func(event string)
}

// Run watches until ctx is done. The parent directory is watched so that
// editors replacing the file by rename are seen.
func (w *Watcher) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	abs, err := filepath.Abs(w.Path)
	if err != nil {
		return errors.Errorf("resolving %s: %w", w.Path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return errors.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("watched file changed")
			timer.Reset(w.Debounce)

		case <-timer.C:
			event := "reloaded"
			if err := w.Reload(ctx); err != nil {
				logger.Error().Err(err).Str("file", abs).Msg("reloading watched file")
				event = "failed to reload"
			}
			if w.OnEvent != nil {
				w.OnEvent(event)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watcher error")
		}
	}
}
