package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is how long Watch waits after the last change before
// reloading, so that editors writing in several steps cause one reload.
const WatchDebounce = 100 * time.Millisecond

// Watch reloads path with Load whenever it changes. Successful reloads
// arrive on the first channel and failures on the second; neither is
// applied to anything, so the receiver decides what to do with them. Both
// channels are closed when ctx is done.
//
// The parent directory is watched rather than the file so that editors
// that replace the file on save keep being followed.
func Watch(ctx context.Context, path string) (<-chan File, <-chan error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("watching %s: %w", path, err)
	}

	files := make(chan File)
	errs := make(chan error)

	go func() {
		defer close(errs)
		defer close(files)
		defer watcher.Close()

		base := filepath.Base(path)
		var reload <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				reload = time.After(WatchDebounce)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				case <-ctx.Done():
					return
				}

			case <-reload:
				reload = nil
				f, err := Load(path)
				if err != nil {
					select {
					case errs <- err:
					case <-ctx.Done():
						return
					}
					continue
				}
				select {
				case files <- f:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return files, errs, nil
}
