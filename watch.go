package envgate

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeEvent notifies that the loaded configuration file changed on disk.
type ChangeEvent struct {
	At    time.Time
	Cause string // Description (e.g., "file-changed")
	Path  string
}

// watchDebounce coalesces bursts of filesystem events into one notification.
const watchDebounce = 100 * time.Millisecond

// Watch monitors the env file loaded by Init and emits a ChangeEvent
// when it changes on disk. The published configuration is never
// mutated; callers decide whether to re-run Init. The channel closes
// when ctx is cancelled.
//
// Returns ErrWatchNotSupported when Init loaded no file, and
// ErrNotInitialized before Init.
func Watch(ctx context.Context) (<-chan ChangeEvent, error) {
	st := current.Load()
	if st == nil {
		return nil, ErrNotInitialized
	}
	if st.path == "" {
		return nil, ErrWatchNotSupported
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors and config reloaders
	// typically replace files via rename, which drops a file watch.
	target := filepath.Clean(st.path)
	dir := filepath.Dir(target)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	ch := make(chan ChangeEvent, 1)
	go watchLoop(ctx, watcher, target, ch)
	return ch, nil
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string, ch chan<- ChangeEvent) {
	defer close(ch)
	defer watcher.Close()

	var debounce *time.Timer
	var debounceC <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target || ev.Op&relevant == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.NewTimer(watchDebounce)
			debounceC = debounce.C

		case <-debounceC:
			debounceC = nil
			select {
			case ch <- ChangeEvent{At: time.Now(), Cause: "file-changed", Path: target}:
			case <-ctx.Done():
				return
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
