// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/invowk/iconsprite/internal/scan"
)

// ErrWatchStartFailed reports that a Session could not be started.
var ErrWatchStartFailed = errors.New("cannot watch icons directory")

// closedCh is returned by Done on a nil Session.
var closedCh = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// Session is a live watch on one directory. The zero value is not usable;
// create sessions with Start.
type Session struct {
	dir      string
	fsw      *fsnotify.Watcher
	onChange func(Event)
	opts     options

	state atomic.Int32
	stop  chan struct{}
	done  chan struct{}
}

// Start watches dir and calls onChange for every qualifying event. It
// returns nil, after logging a warning, when dir does not exist or the OS
// watch cannot be set up. A nil onChange is a no-op callback.
func Start(dir string, onChange func(Event), opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	fsw, err := open(dir)
	if err != nil {
		o.logger.Warn("Not watching SVG directory", "dir", dir, "err", err)
		return nil
	}

	if onChange == nil {
		onChange = func(Event) {}
	}
	s := &Session{
		dir:      dir,
		fsw:      fsw,
		onChange: onChange,
		opts:     o,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	s.state.Store(int32(StateRunning))
	go s.loop()

	o.logger.Info("Watching SVG directory", "dir", dir)
	return s
}

func open(dir string) (*fsnotify.Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatchStartFailed, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrWatchStartFailed, dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: create fsnotify watcher: %w", ErrWatchStartFailed, err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("%w: add %q: %w", ErrWatchStartFailed, dir, err)
	}
	return fsw, nil
}

// Dir returns the watched directory.
func (s *Session) Dir() string {
	if s == nil {
		return ""
	}
	return s.dir
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	if s == nil {
		return StateStopped
	}
	return State(s.state.Load())
}

// Done is closed when the event loop has exited. It is already closed for a
// nil Session.
func (s *Session) Done() <-chan struct{} {
	if s == nil {
		return closedCh
	}
	return s.done
}

// Stop releases the watch handle. Only the first call does anything; later
// or concurrent calls, and calls on a nil Session, return immediately. Stop
// does not wait for a callback already in flight; use Done for that.
func (s *Session) Stop() {
	if s == nil {
		return
	}
	if !s.state.CompareAndSwap(int32(StateRunning), int32(StateStopped)) {
		return
	}
	close(s.stop)
	if err := s.fsw.Close(); err != nil {
		s.opts.logger.Warn("Closing SVG directory watch", "dir", s.dir, "err", err)
	}
}

// fail ends the session after a fatal fsnotify error. It loses to a
// concurrent Stop, so the handle is closed exactly once.
func (s *Session) fail(err error) {
	if !s.state.CompareAndSwap(int32(StateRunning), int32(StateFailed)) {
		return
	}
	s.opts.logger.Error("SVG directory watch failed", "dir", s.dir, "err", err)
	_ = s.fsw.Close()
}

func (s *Session) running() bool {
	return s.state.Load() == int32(StateRunning)
}

func (s *Session) loop() {
	defer close(s.done)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending *Event
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-s.stop:
			return

		case evt, ok := <-s.fsw.Events:
			if !ok {
				return
			}
			e, ok := s.qualify(evt)
			if !ok {
				continue
			}
			if s.opts.debounce <= 0 {
				s.dispatch(e)
				continue
			}
			pending = &e
			if timer == nil {
				timer = time.NewTimer(s.opts.debounce)
				timerC = timer.C
			} else {
				timer.Reset(s.opts.debounce)
			}

		case <-timerC:
			if pending != nil {
				e := *pending
				pending = nil
				s.dispatch(e)
			}

		case err, ok := <-s.fsw.Errors:
			if !ok {
				return
			}
			if sessionLost(err) {
				s.fail(fmt.Errorf("watch lost: %w", err))
				return
			}
			s.opts.logger.Warn("fsnotify error", "dir", s.dir, "err", err)
		}
	}
}

func (s *Session) qualify(evt fsnotify.Event) (Event, bool) {
	name := filepath.Base(evt.Name)
	if !scan.IsIcon(name) || scan.Ignored(name, s.opts.ignore) {
		return Event{}, false
	}
	return newEvent(evt)
}

func (s *Session) dispatch(e Event) {
	if !s.running() {
		return
	}
	s.opts.logger.Info("SVG file changed", "kind", e.Kind, "file", e.Name)
	s.onChange(e)
}
