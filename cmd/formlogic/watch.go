package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watch validates a form document once, then again every time it is
// written, created or renamed into place, until ctx is done.
func (c *cli) watch(ctx context.Context, args []string) error {
	fs := c.flags("watch")
	if err := fs.Parse(args); err != nil {
		return usageErrorf("%v", err)
	}
	if fs.NArg() != 1 {
		return usageErrorf("watch needs exactly one file")
	}
	path, err := filepath.Abs(fs.Arg(0))
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			c.logger.WarnContext(ctx, "closing watcher", "error", err)
		}
	}()

	// Editors often replace the file, so the directory is watched.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	logger := c.logger.WithGroup("watch").With("path", path)
	c.report(path)
	for {
		select {
		case <-ctx.Done():
			logger.DebugContext(ctx, "watch stopped")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			logger.DebugContext(ctx, "form changed", "op", ev.Op.String())
			c.report(path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.WarnContext(ctx, "watcher error", "error", err)
		}
	}
}

func (c *cli) report(path string) {
	res, err := validateFile(path)
	if err != nil {
		fmt.Fprintf(c.stdout, "%s: %v\n", path, err)
		return
	}
	writeReport(c.stdout, path, res)
}
