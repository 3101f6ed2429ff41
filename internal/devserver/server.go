// SPDX-License-Identifier: MPL-2.0

package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/invowk/iconsprite/internal/inject"
	"github.com/invowk/iconsprite/internal/plugin"
)

const (
	// EventsPath is the SSE endpoint.
	EventsPath = "/__iconsprite/events"
	// SpritePath serves the current sprite.
	SpritePath = "/__iconsprite/sprite.svg"
	// MetricsPath serves Prometheus metrics.
	MetricsPath = "/metrics"

	// shutdownTimeout bounds Stop when the caller's context has no deadline.
	shutdownTimeout = 5 * time.Second
)

// reloadClient is appended to every HTML page.
const reloadClient = `<script type="module">
new EventSource("` + EventsPath + `").onmessage = (e) => {
  if (JSON.parse(e.data).type === "full-reload") location.reload();
};
</script>
`

const (
	stateCreated int32 = iota
	stateRunning
	stateStopped
)

type (
	// Plugin is the host-facing side of plugin.Plugin.
	Plugin interface {
		ConfigureServer(r plugin.Reloader)
		BuildEnd()
		TransformIndexHTML(ctx context.Context, html string) string
	}

	// Config configures a Server.
	Config struct {
		// Addr is the listen address, e.g. "127.0.0.1:5173" or ":0".
		Addr string
		// Root is the site directory.
		Root string
	}

	// Server serves a site with the sprite injected into its pages.
	// A Server is single-use: once stopped, create a new instance.
	Server struct {
		cfg     Config
		plugin  Plugin
		sprite  plugin.SpriteSource
		site    fs.FS
		hub     *Hub
		metrics *Metrics
		logger  *log.Logger
		handler http.Handler

		state      atomic.Int32
		httpServer *http.Server
		listener   net.Listener
		serveErr   chan error
	}

	// Option configures a Server.
	Option func(*Server)
)

// WithLogger sets the request and lifecycle logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMetrics replaces the default metrics registry.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates a Server. p transforms pages and owns the watcher; sprite
// backs the standalone sprite endpoint.
func New(cfg Config, p Plugin, sprite plugin.SpriteSource, opts ...Option) *Server {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	s := &Server{
		cfg:      cfg,
		plugin:   p,
		sprite:   sprite,
		site:     os.DirFS(cfg.Root),
		serveErr: make(chan error, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "serve"})
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	s.hub = NewHub(s.metrics)

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+EventsPath, s.handleEvents)
	mux.HandleFunc("GET "+SpritePath, s.handleSprite)
	mux.Handle("GET "+MetricsPath, s.metrics.Handler())
	mux.HandleFunc("GET /", s.handleSite)
	s.handler = mux

	return s
}

// Handler returns the server's routes without listening.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Hub returns the reload hub handed to the plugin.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start listens on the configured address, lets the plugin configure the
// reload channel and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled before start: %w", ctx.Err())
	default:
	}
	if !s.state.CompareAndSwap(stateCreated, stateRunning) {
		return errors.New("devserver: Start called more than once")
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		s.state.Store(stateStopped)
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.plugin.ConfigureServer(s.hub)

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.serveErr <- err
		}
		close(s.serveErr)
	}()

	s.logger.Info("Serving site", "url", s.URL(), "root", s.cfg.Root)
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Addr
}

// URL returns the server's base URL.
func (s *Server) URL() string {
	return "http://" + s.Addr()
}

// Err reports a failure of the background serve loop. It is closed once
// the loop has exited.
func (s *Server) Err() <-chan error {
	return s.serveErr
}

// Stop ends the plugin build, disconnects live-reload clients and shuts the
// HTTP server down. Only the first call has an effect.
func (s *Server) Stop(ctx context.Context) error {
	if !s.state.CompareAndSwap(stateRunning, stateStopped) {
		return nil
	}

	s.plugin.BuildEnd()
	s.hub.Close()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown dev server: %w", err)
	}
	return nil
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	messages, cancel := s.hub.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				s.logger.Error("Encoding reload message", "err", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (s *Server) handleSprite(w http.ResponseWriter, r *http.Request) {
	s.metrics.spriteRequested()
	out := s.sprite.Sprite(r.Context())
	if out == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write([]byte(out))
}

func (s *Server) handleSite(w http.ResponseWriter, r *http.Request) {
	name, ok := s.resolve(r.URL.Path)
	if !ok || !isHTML(name) {
		http.FileServerFS(s.site).ServeHTTP(w, r)
		return
	}

	data, err := fs.ReadFile(s.site, name)
	if err != nil {
		http.Error(w, "cannot read page", http.StatusInternalServerError)
		s.logger.Warn("Reading page", "file", name, "err", err)
		return
	}

	start := time.Now()
	page := s.plugin.TransformIndexHTML(r.Context(), string(data))
	page = inject.Script(page, reloadClient)
	s.metrics.pageTransformed(time.Since(start))
	s.logger.Debug("Transformed page", "file", name, "took", time.Since(start))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write([]byte(page))
}

// resolve maps a URL path to an existing regular file in the site, using
// index.html for directories.
func (s *Server) resolve(urlPath string) (string, bool) {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		name = "."
	}
	info, err := fs.Stat(s.site, name)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		if !strings.HasSuffix(urlPath, "/") {
			// Let the file server redirect to the trailing-slash URL.
			return "", false
		}
		name = path.Join(name, "index.html")
		if info, err = fs.Stat(s.site, name); err != nil {
			return "", false
		}
	}
	return name, info.Mode().IsRegular()
}

func isHTML(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".html" || ext == ".htm"
}
