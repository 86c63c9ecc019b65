package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the config file at path and calls onChange with the
// newly loaded Config each time a valid version is written. It blocks
// until ctx is cancelled.
//
// The watch is placed on the parent directory, not the file itself:
// editors and deploy tooling usually save atomically (write a temp file,
// rename it over the target), which retires the original inode and would
// silence a file-level watch after the first save. Events for other
// files in the directory are ignored.
//
// If a reload fails (invalid YAML, invalid thresholds), the error is
// logged and the previous config remains active — Watch does not call
// onChange.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	slog.Info("config: watching for changes", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			// Write covers in-place saves; Create and Rename cover the
			// atomic-save dance landing a fresh file at the target path.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			cfg, err := Load(target)
			if err != nil {
				slog.Error("config: reload failed — keeping previous config",
					"path", target, "err", err)
				continue
			}

			slog.Info("config: reloaded", "path", target)
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}
