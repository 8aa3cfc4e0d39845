package meetfile

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/okian/meetscore/internal/domain/model"
	"github.com/okian/meetscore/pkg/logger"
)

// Watch reloads the meet file at path whenever it is written or replaced and
// passes the new meet to onChange. A file that fails to load is logged and
// skipped. Watch returns when ctx is cancelled.
//
// The parent directory is watched, so saves that write a temporary file and
// rename it over path are seen as well.
func Watch(ctx context.Context, path string, log logger.Logger, onChange func(*model.Meet)) error {
	path = filepath.Clean(path)
	if _, err := os.Stat(path); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	log.Info(ctx, "watching meet file", logger.String("path", path))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			meet, err := Load(path)
			if err != nil {
				log.Warn(ctx, "meet file reload failed", logger.String("path", path), logger.Error(err))
				continue
			}
			log.Debug(ctx, "meet file reloaded", logger.String("path", path))
			onChange(meet)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error(ctx, "meet file watcher error", logger.Error(err))
		}
	}
}
