package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"
)

// Watch calls onChange whenever the file at path is written or created.
// The parent directory is watched so that editors replacing the file are
// noticed too. Watching stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		if err2 := watcher.Close(); err2 != nil {
			glog.Errorf("failed to close config watcher: %s", err2.Error())
		}
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != path {
					continue
				}
				if evt.Has(fsnotify.Write) || evt.Has(fsnotify.Create) {
					glog.V(1).Infof("config file changed: %s", evt.String())
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				glog.Errorf("error while watching config: %s", err.Error())
			}
		}
	}()

	return nil
}
