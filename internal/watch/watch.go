// Package watch triggers a callback when files matching a set of patterns
// change.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDelay is the quiet period that coalesces bursts of events.
const DefaultDelay = 200 * time.Millisecond

// Watcher watches directories for changes to files matching patterns.
type Watcher struct {
	watcher  *fsnotify.Watcher
	patterns []string
	exclude  []string
	delay    time.Duration
	log      zerolog.Logger
	onChange func(paths []string)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay sets the quiet period before onChange is called.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) { w.delay = d }
}

// WithExclude skips files and directories whose base name matches one of
// the patterns.
func WithExclude(patterns ...string) Option {
	return func(w *Watcher) { w.exclude = append(w.exclude, patterns...) }
}

// WithLogger sets the logger receiving watcher errors.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

// New returns a Watcher calling onChange with the changed paths. Patterns
// match base names, or extensions when written as "**/*.ext".
func New(patterns []string, onChange func(paths []string), opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	w := &Watcher{
		watcher:  fw,
		patterns: patterns,
		delay:    DefaultDelay,
		log:      zerolog.Nop(),
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// AddDirectory watches dir and its subdirectories. The exclude patterns
// apply below dir only.
func (w *Watcher) AddDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path != dir && w.excluded(path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("watch: add %s: %w", path, err)
			}
		}
		return nil
	})
}

// Run dispatches events until ctx is done. Events arriving within the
// delay of each other are reported in a single onChange call.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		pending []string
		timer   *time.Timer
		fire    <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watch: event channel closed")
			}
			if event.Op&fsnotify.Create == fsnotify.Create && !w.excluded(event.Name) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.AddDirectory(event.Name); err != nil {
						w.log.Warn().Err(err).Str("dir", event.Name).Msg("watch new directory")
					}
				}
			}
			if event.Op == fsnotify.Chmod || !w.matches(event.Name) {
				continue
			}
			if !slices.Contains(pending, event.Name) {
				pending = append(pending, event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C
		case <-fire:
			paths := pending
			pending, fire = nil, nil
			w.onChange(paths)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watch: error channel closed")
			}
			if err != nil {
				w.log.Error().Err(err).Msg("watch")
			}
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) excluded(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range w.exclude {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

// matches reports whether a change to path is of interest.
func (w *Watcher) matches(path string) bool {
	if w.excluded(path) {
		return false
	}
	base := filepath.Base(path)
	for _, pattern := range w.patterns {
		if ext, ok := strings.CutPrefix(pattern, "**/*"); ok {
			if strings.HasSuffix(path, ext) {
				return true
			}
			continue
		}
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}
