// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/invowk/iconsprite/internal/inject"
	"github.com/invowk/iconsprite/internal/sprite"
	"github.com/invowk/iconsprite/internal/watch"
)

// Name identifies the plugin to hosts.
const Name = "svg-icons"

// MessageFullReload asks clients to reload the whole page.
const MessageFullReload = "full-reload"

type (
	// ReloadMessage is sent on the host's live-update channel.
	ReloadMessage struct {
		Type string `json:"type"`
		Path string `json:"path"`
	}

	// Reloader is the host's live-update channel.
	Reloader interface {
		Send(msg ReloadMessage)
	}

	// SpriteSource produces the current sprite markup.
	SpriteSource interface {
		Sprite(ctx context.Context) string
	}

	// Plugin wires a SpriteSource and an optional watch session to a host.
	// At most one watch session is active per Plugin.
	Plugin struct {
		source   SpriteSource
		dir      string
		watch    bool
		ignore   []string
		debounce time.Duration
		logger   *log.Logger

		mu      sync.Mutex
		session *watch.Session
	}

	// Option configures a Plugin.
	Option func(*Plugin)
)

// FullReload is the message sent for any icon change.
func FullReload() ReloadMessage {
	return ReloadMessage{Type: MessageFullReload, Path: "*"}
}

// WithWatch enables watching the icons directory in ConfigureServer.
func WithWatch(enabled bool) Option {
	return func(p *Plugin) {
		p.watch = enabled
	}
}

// WithIgnore passes ignore globs to the watcher.
func WithIgnore(patterns ...string) Option {
	return func(p *Plugin) {
		p.ignore = append(p.ignore, patterns...)
	}
}

// WithDebounce sets the watcher coalescing window.
func WithDebounce(d time.Duration) Option {
	return func(p *Plugin) {
		p.debounce = d
	}
}

// WithLogger sets the plugin logger; the watcher logs through it too.
func WithLogger(l *log.Logger) Option {
	return func(p *Plugin) {
		p.logger = l
	}
}

// New creates a Plugin that serves sprites from source and watches dir.
func New(source SpriteSource, dir string, opts ...Option) *Plugin {
	p := &Plugin{source: source, dir: dir}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: Name})
	}
	p.logger.Info("SVG icons plugin initialized", "dir", dir)
	return p
}

// NewFromBuilder creates a Plugin for a sprite.Builder, watching its directory.
func NewFromBuilder(b *sprite.Builder, opts ...Option) *Plugin {
	return New(b, b.Dir(), opts...)
}

// ConfigureServer starts watching when enabled. Every qualifying event sends a
// full reload to r. Calling it again replaces the previous session.
//
// The lock is held while the session starts so that a concurrent BuildEnd
// either runs first or stops the new session.
func (p *Plugin) ConfigureServer(r Reloader) {
	if !p.watch {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	session := watch.Start(p.dir, func(watch.Event) {
		r.Send(FullReload())
	},
		watch.WithIgnore(p.ignore...),
		watch.WithDebounce(p.debounce),
		watch.WithLogger(p.logger),
	)
	p.session.Stop()
	p.session = session
}

// Watching reports whether a watch session is active.
func (p *Plugin) Watching() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session != nil && p.session.State() == watch.StateRunning
}

// BuildEnd stops the watch session, if any. It is safe to call more than once.
func (p *Plugin) BuildEnd() {
	p.mu.Lock()
	session := p.session
	p.session = nil
	p.mu.Unlock()

	if session == nil {
		return
	}
	session.Stop()
	p.logger.Info("Stopped watching SVG directory")
}

// TransformIndexHTML rebuilds the sprite and injects it before </body>.
func (p *Plugin) TransformIndexHTML(ctx context.Context, html string) string {
	return inject.HTML(html, p.source.Sprite(ctx))
}
