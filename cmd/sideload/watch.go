package main

import (
	"context"

	"github.com/chainguard-dev/clog"
	"github.com/fsnotify/fsnotify"
)

// watchManifest blocks, regenerating whenever the manifest file is
// rewritten. Generation failures are logged and watching continues, so an
// editor save with a half-finished manifest does not kill the loop.
func watchManifest(ctx context.Context, path string, generate func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return err
	}
	log := clog.FromContext(ctx)
	log.Infof("watching %s", path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := generate(ctx); err != nil {
				log.Warnf("regeneration failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watch error: %v", err)
		}
	}
}
