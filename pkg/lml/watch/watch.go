// Package watch re-runs a callback when a template file changes on
// disk, for live-preview workflows. Events are debounced, since editors
// typically emit several filesystem events per save.
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/lmllang/lml/pkg/logging"
)

// DefaultDebounce is the event settle window used when none is given.
const DefaultDebounce = 100 * time.Millisecond

// Watcher observes one template file and invokes a callback after each
// settled change.
type Watcher struct {
	fw       *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(path string)
	done     chan struct{}
	log      zerolog.Logger
}

// New starts watching path and calls onChange with the path after each
// debounced change. The file's directory is watched rather than the
// file itself, so editors that replace the file on save keep being
// tracked. Stop releases the watcher.
func New(path string, debounce time.Duration, onChange func(path string)) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting file watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("resolving %q: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %q: %w", filepath.Dir(abs), err)
	}
	w := &Watcher{
		fw:       fw,
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		done:     make(chan struct{}),
		log:      logging.GetLogger("watch"),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug().Str("op", event.Op.String()).Str("path", event.Name).Msg("template changed")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watch error")
		case <-fire:
			timer = nil
			fire = nil
			w.onChange(w.path)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Name != w.path {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename)
}

// Stop releases the watcher's filesystem resources and ends the event
// loop.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fw.Close()
}
