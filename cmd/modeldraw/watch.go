package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/syssam/modeldraw/compiler/gen"
)

// watch converts once, then again on every write to the input or the
// mapping table, until ctx is done. Failed conversions are logged and do
// not stop the loop.
func watch(ctx context.Context, cfg *Config, opts []gen.Option, logger *zap.Logger, stdout, stderr io.Writer) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		_ = w.Close()
	}()

	// Parent directories are watched since editors often replace files
	// instead of writing them in place.
	names := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range []string{cfg.Input, cfg.Mappings} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		names[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	once := func() {
		if err := convert(cfg, opts, logger, stdout, stderr); err != nil {
			logger.Error("conversion failed", zap.Error(err))
		}
	}
	once()
	logger.Info("watching for changes", zap.String("input", cfg.Input), zap.String("mappings", cfg.Mappings))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !names[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("change detected", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			once()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}
