// SPDX-License-Identifier: MPL-2.0

package devserver

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/invowk/iconsprite/internal/inject"
	"github.com/invowk/iconsprite/internal/plugin"
)

const testSprite = `<svg id="sprite"><symbol id="icon-a"></symbol></svg>`

type fakePlugin struct {
	mu         sync.Mutex
	sprite     string
	reloader   plugin.Reloader
	buildEnded int
}

func (p *fakePlugin) ConfigureServer(r plugin.Reloader) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reloader = r
}

func (p *fakePlugin) BuildEnd() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buildEnded++
}

func (p *fakePlugin) TransformIndexHTML(_ context.Context, html string) string {
	return inject.HTML(html, p.sprite)
}

func (p *fakePlugin) Sprite(context.Context) string {
	return p.sprite
}

func siteDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"index.html":      "<html><body><h1>home</h1></body></html>",
		"docs/index.html": "<html><body><h1>docs</h1></body></html>",
		"about.HTML":      "<body>about</body>",
		"style.css":       "body{color:red}</body>",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func newTestServer(t *testing.T, sprite string) (*Server, *fakePlugin) {
	t.Helper()
	p := &fakePlugin{sprite: sprite}
	s := New(Config{Addr: "127.0.0.1:0", Root: siteDir(t)}, p, p, WithLogger(log.New(io.Discard)))
	return s, p
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServeHTMLInjectsSpriteAndClient(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, testSprite)

	for _, target := range []string{"/", "/index.html", "/docs/", "/about.HTML"} {
		rec := get(t, s.Handler(), target)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s = %d", target, rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "  "+testSprite+"\n") {
			t.Errorf("GET %s: sprite not injected:\n%s", target, body)
		}
		if !strings.Contains(body, EventsPath) {
			t.Errorf("GET %s: live-reload client missing", target)
		}
		if strings.Index(body, testSprite) > strings.Index(body, "</body>") {
			t.Errorf("GET %s: sprite placed after </body>", target)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("GET %s: Content-Type = %q", target, ct)
		}
	}

	if got := testutil.ToFloat64(s.metrics.pageTransforms); got != 4 {
		t.Errorf("html_transforms_total = %v, want 4", got)
	}
}

func TestServeStaticUntouched(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, testSprite)

	rec := get(t, s.Handler(), "/style.css")
	if rec.Code != http.StatusOK || rec.Body.String() != "body{color:red}</body>" {
		t.Errorf("GET /style.css = %d %q", rec.Code, rec.Body.String())
	}
	if rec := get(t, s.Handler(), "/missing.html"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /missing.html = %d, want 404", rec.Code)
	}
	if rec := get(t, s.Handler(), "/docs"); rec.Code != http.StatusMovedPermanently {
		t.Errorf("GET /docs = %d, want redirect", rec.Code)
	}
}

func TestServeEmptySpriteKeepsPage(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, "")
	body := get(t, s.Handler(), "/").Body.String()
	if strings.Contains(body, "<svg") {
		t.Errorf("unexpected sprite:\n%s", body)
	}
	if !strings.HasPrefix(body, "<html><body><h1>home</h1>") {
		t.Errorf("page altered:\n%s", body)
	}
}

func TestSpriteEndpoint(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, testSprite)
	rec := get(t, s.Handler(), SpritePath)
	if rec.Code != http.StatusOK || rec.Body.String() != testSprite {
		t.Errorf("GET %s = %d %q", SpritePath, rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}

	empty, _ := newTestServer(t, "")
	if rec := get(t, empty.Handler(), SpritePath); rec.Code != http.StatusNoContent {
		t.Errorf("empty sprite status = %d, want 204", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, testSprite)
	get(t, s.Handler(), SpritePath)

	body := get(t, s.Handler(), MetricsPath).Body.String()
	for _, name := range []string{
		"iconsprite_sprite_requests_total 1",
		"iconsprite_html_transforms_total",
		"iconsprite_sse_clients",
		"go_goroutines",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %q", name)
		}
	}
}

func TestEventsStream(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, "")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+EventsPath, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q", ct)
	}

	lines := bufio.NewReader(resp.Body)
	if line, _ := lines.ReadString('\n'); line != ": connected\n" {
		t.Fatalf("first line = %q", line)
	}
	if _, err := lines.ReadString('\n'); err != nil {
		t.Fatal(err)
	}

	s.Hub().Send(plugin.FullReload())
	line, err := lines.ReadString('\n')
	if err != nil {
		t.Fatal(err)
	}
	if line != `data: {"type":"full-reload","path":"*"}`+"\n" {
		t.Errorf("event = %q", line)
	}

	// Closing the hub ends the stream.
	s.Hub().Close()
	if _, err := io.ReadAll(lines); err != nil {
		t.Errorf("stream did not end cleanly: %v", err)
	}
}

func TestStartStop(t *testing.T) {
	t.Parallel()

	s, p := newTestServer(t, testSprite)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if err := s.Start(context.Background()); err == nil {
		t.Error("second Start() should fail")
	}

	p.mu.Lock()
	configured := p.reloader == s.Hub()
	p.mu.Unlock()
	if !configured {
		t.Error("plugin was not configured with the hub")
	}

	resp, err := http.Get(s.URL() + SpritePath)
	if err != nil {
		t.Fatalf("GET sprite: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Errorf("second Stop() error: %v", err)
	}
	p.mu.Lock()
	ended := p.buildEnded
	p.mu.Unlock()
	if ended != 1 {
		t.Errorf("BuildEnd called %d times, want 1", ended)
	}

	select {
	case err, ok := <-s.Err():
		if ok && err != nil {
			t.Errorf("serve error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("serve loop did not exit")
	}
}

func TestStartCancelledContext(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Start(ctx); err == nil {
		t.Error("Start() with a cancelled context should fail")
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Errorf("Stop() on a never-started server: %v", err)
	}
}
