package watcher

import (
	"context"
	"time"
)

// Watch calls fn for every debounced change to one of paths.
// It blocks until ctx is done and returns nil, or until the watcher fails.
// Calls to fn are serialized.
func Watch(ctx context.Context, paths []string, delay time.Duration, fn Handler) error {
	fw, err := NewFileWatcher(paths...)
	if err != nil {
		return err
	}
	return Run(ctx, NewDebouncer(fw, delay), fn)
}

// Run delivers events from src to fn until ctx is done. src is closed on return.
// Errors from src are returned; a closed source ends the run with ErrWatcherClosed.
func Run(ctx context.Context, src Source, fn Handler) error {
	defer src.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-src.Events():
			if !ok {
				return ErrWatcherClosed
			}
			fn(event)

		case err, ok := <-src.Errors():
			if !ok {
				return ErrWatcherClosed
			}
			return err
		}
	}
}
