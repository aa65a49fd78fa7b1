package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchSettings watches the settings file and invokes onChange with the
// freshly loaded settings after each write. Events are debounced because
// editors tend to emit several writes per save. The returned stop function
// closes the watcher.
func WatchSettings(onChange func(), onError func(error)) (stop func(), err error) {
	if err := EnsureGlobalDir(); err != nil {
		return nil, err
	}
	path, err := SettingsFile()
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors replace files on save,
	// which would detach a direct file watch.
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		var debounce *time.Timer
		for {
			select {
			case event, ok := <-fsWatcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != SettingsFileName {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(200*time.Millisecond, onChange)
			case err, ok := <-fsWatcher.Errors:
				if !ok {
					return
				}
				if onError != nil {
					onError(err)
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		_ = fsWatcher.Close()
	}, nil
}
