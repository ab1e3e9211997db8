// Package monitor tails a continuous update file and re-reads it on
// change, so a dashboard can follow an in-progress test from another
// process. The writer overwrites in place without a rename swap, so
// reads may catch the file mid-write and are retried.
package monitor

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/tkorkmaz/prosed/internal/persistence"
)

const (
	debounce     = 100 * time.Millisecond
	readRetries  = 3
	readRetryGap = 50 * time.Millisecond
)

// Watcher follows one update file. The parent directory is watched, not
// the file itself, so the watch survives the file not existing yet.
type Watcher struct {
	path     string
	onUpdate func(*persistence.Snapshot)
	fsw      *fsnotify.Watcher
}

// New creates a watcher for path. onUpdate is called with each
// successfully parsed snapshot.
func New(path string, onUpdate func(*persistence.Snapshot)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{path: path, onUpdate: onUpdate, fsw: fsw}, nil
}

// Run watches until ctx is done. An initial read is attempted before the
// first event so the dashboard is not empty while the writer idles.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	if err := w.fsw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.refresh()

	var pending *time.Timer
	fire := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Debounce: the writer produces several events per flush.
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			w.refresh()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		}
	}
}

// Refresh reads the file once, retrying short parse failures caused by a
// concurrent overwrite.
func (w *Watcher) refresh() {
	for attempt := 0; attempt < readRetries; attempt++ {
		snap, err := persistence.ReadSnapshot(w.path)
		if err == nil {
			w.onUpdate(snap)
			return
		}
		time.Sleep(readRetryGap)
	}
	log.Debug().Str("path", w.path).Msg("snapshot unreadable after retries")
}
