// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const page = "<html>\n  <body>\n    <h1>Hi</h1>\n  </body>\n</html>\n"

func TestInjectToStdout(t *testing.T) {
	t.Parallel()

	icons := t.TempDir()
	writeIcons(t, icons, map[string]string{"home.svg": homeIcon})
	site := t.TempDir()
	index := filepath.Join(site, "index.html")
	writeIcons(t, site, map[string]string{"index.html": page})

	res := runCLI(t, context.Background(), defaultsProvider(), "inject", "--dir", icons, index)
	if res.err != nil {
		t.Fatalf("inject error: %v\n%s", res.err, res.stderr)
	}

	body := strings.Index(res.stdout, "</body>")
	sym := strings.Index(res.stdout, `<symbol id="icon-home"`)
	if sym < 0 || body < 0 || sym > body {
		t.Errorf("sprite not injected before </body>:\n%s", res.stdout)
	}
	if data, _ := os.ReadFile(index); string(data) != page {
		t.Error("input page changed without --write")
	}
}

func TestInjectWriteInPlace(t *testing.T) {
	t.Parallel()

	icons := t.TempDir()
	writeIcons(t, icons, map[string]string{"home.svg": homeIcon})
	site := t.TempDir()
	writeIcons(t, site, map[string]string{"a.html": page, "b.html": "<p>fragment</p>"})
	a, b := filepath.Join(site, "a.html"), filepath.Join(site, "b.html")

	res := runCLI(t, context.Background(), defaultsProvider(), "inject", "--dir", icons, "-w", a, b)
	if res.err != nil {
		t.Fatalf("inject error: %v\n%s", res.err, res.stderr)
	}

	gotA, _ := os.ReadFile(a)
	if !strings.Contains(string(gotA), `id="icon-home"`) {
		t.Errorf("a.html not injected:\n%s", gotA)
	}
	gotB, _ := os.ReadFile(b)
	if string(gotB) != "<p>fragment</p>" {
		t.Errorf("page without </body> changed: %q", gotB)
	}
}

func TestInjectOutFile(t *testing.T) {
	t.Parallel()

	icons := t.TempDir()
	writeIcons(t, icons, map[string]string{"home.svg": homeIcon})
	site := t.TempDir()
	writeIcons(t, site, map[string]string{"index.html": page})
	out := filepath.Join(site, "out.html")

	res := runCLI(t, context.Background(), defaultsProvider(), "inject", "--dir", icons, "--out", out, filepath.Join(site, "index.html"))
	if res.err != nil {
		t.Fatalf("inject error: %v", res.err)
	}
	if got, _ := os.ReadFile(out); !strings.Contains(string(got), `id="icon-home"`) {
		t.Errorf("out.html:\n%s", got)
	}
}

func TestInjectErrors(t *testing.T) {
	t.Parallel()

	icons := t.TempDir()
	writeIcons(t, icons, map[string]string{"home.svg": homeIcon})

	multi := runCLI(t, context.Background(), defaultsProvider(), "inject", "--dir", icons, "a.html", "b.html")
	if exitCode(multi.err) != 1 || !strings.Contains(multi.stderr, "--write") {
		t.Errorf("multiple pages without --write: err %v, stderr %q", multi.err, multi.stderr)
	}

	missing := runCLI(t, context.Background(), defaultsProvider(), "inject", "--dir", icons, filepath.Join(t.TempDir(), "nope.html"))
	if exitCode(missing.err) != 1 || !strings.Contains(missing.stderr, "read page") {
		t.Errorf("missing page: err %v, stderr %q", missing.err, missing.stderr)
	}
}
