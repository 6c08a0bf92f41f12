package loader

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch loads the document at path, hands the catalog to fn and reloads it
// whenever the file is written or re-created. A document that fails to load
// is logged and the previous catalog stays current. Watch blocks until ctx is
// done.
func (l *Loader) Watch(ctx context.Context, path string, fn func(*Catalog)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("loader: absolute path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("loader: create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors save atomically, so the directory is watched instead of the file.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("loader: watch directory: %w", err)
	}

	catalog, err := l.LoadFile(absPath)
	if err != nil {
		return err
	}
	fn(catalog)
	l.logger.Info().Str("path", absPath).Msg("watching definitions for changes")

	filename := filepath.Base(absPath)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			l.logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("definitions changed")

			next, err := l.LoadFile(absPath)
			if err != nil {
				l.logger.Error().Err(err).Msg("reload failed, keeping previous definitions")
				continue
			}
			l.logger.Info().Int("schemas", next.Len()).Msg("definitions reloaded")
			fn(next)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.logger.Error().Err(err).Msg("file watcher error")
		}
	}
}

// Watch is a shorthand for New(options...).Watch.
func Watch(ctx context.Context, path string, fn func(*Catalog), options ...Option) error {
	return New(options...).Watch(ctx, path, fn)
}
