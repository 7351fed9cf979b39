package mocks

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"moviedash/internal/logger"
)

// Watch reloads the fixture file whenever it changes on disk. The parent
// directory is watched so editors that replace the file are picked up too.
// Rapid events are coalesced within debounce. Watching stops when ctx ends.
func (b *Backend) Watch(ctx context.Context, debounce time.Duration) error {
	if b.path == "" {
		return fmt.Errorf("backend has no fixture file")
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	abs, err := filepath.Abs(b.path)
	if err != nil {
		return fmt.Errorf("resolve fixture path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return fmt.Errorf("watch directory %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer fsw.Close()

		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		pending := false

		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return

			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if pending && !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
				pending = true

			case <-timer.C:
				pending = false
				if err := b.Reload(); err != nil {
					b.log.Error("Fixture reload failed, keeping previous data", err, logger.Fields{"path": b.path})
				}

			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				b.log.Warn("Fixture watcher error", logger.Fields{"error": err.Error()})
			}
		}
	}()

	b.log.Info("Watching fixtures", logger.Fields{"path": abs})
	return nil
}
