package daemon

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// errNoDirsWatched is returned when none of the candidate directories
// could be added to the watcher.
var errNoDirsWatched = fmt.Errorf("no directories could be watched")

// watchDebounce coalesces rapid plugin-directory changes (a package
// manager unpacking several files) into a single refresh trigger.
const watchDebounce = 250 * time.Millisecond

// WatchDirs installs an fsnotify watch on every directory in dirs and
// returns a channel that receives a value whenever a create, write,
// remove, or rename event fires (debounced), plus a stop function to tear the
// watcher down. Watch-setup failure is returned as an error so the
// caller can degrade to tick-only refresh; it is never fatal.
func WatchDirs(dirs []string) (<-chan struct{}, func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	added := false
	for _, d := range dirs {
		if watcher.Add(d) == nil {
			added = true
		}
	}
	if !added {
		watcher.Close()
		return nil, nil, errNoDirsWatched
	}

	out := make(chan struct{}, 1)
	done := make(chan struct{})

	go func() {
		var timer *time.Timer
		fire := make(chan struct{}, 1)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDebounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			case <-fire:
				select {
				case out <- struct{}{}:
				default:
				}
			case <-watcher.Errors:
				// Individual watch errors are not fatal; keep watching.
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		watcher.Close()
	}
	return out, stop, nil
}
