// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/iconsprite/internal/config"
)

func TestConfigInitShowAndDump(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), config.FileName())
	provider := config.NewProvider()

	res := runCLI(t, context.Background(), provider, "config", "init", "--config", path, "--dir", "assets/icons")
	if res.err != nil {
		t.Fatalf("config init error: %v\n%s", res.err, res.stderr)
	}
	if !strings.Contains(res.stdout, "Created") {
		t.Errorf("stdout = %q", res.stdout)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	again := runCLI(t, context.Background(), provider, "config", "init", "--config", path)
	if again.err != nil || !strings.Contains(again.stdout, "already exists") {
		t.Errorf("second init: err %v, stdout %q", again.err, again.stdout)
	}

	show := runCLI(t, context.Background(), provider, "config", "show", "--config", path)
	if show.err != nil {
		t.Fatalf("config show error: %v\n%s", show.err, show.stderr)
	}
	for _, want := range []string{"assets/icons", "icon", config.DefaultServeAddr} {
		if !strings.Contains(show.stdout, want) {
			t.Errorf("config show lacks %q:\n%s", want, show.stdout)
		}
	}

	dump := runCLI(t, context.Background(), provider, "config", "dump", "--config", path, "--prefix", "ui")
	if dump.err != nil {
		t.Fatalf("config dump error: %v", dump.err)
	}
	if !strings.Contains(dump.stdout, `prefix: "ui"`) || !strings.Contains(dump.stdout, `dir:`) {
		t.Errorf("config dump:\n%s", dump.stdout)
	}

	where := runCLI(t, context.Background(), provider, "config", "path", "--config", path)
	if strings.TrimSpace(where.stdout) != path {
		t.Errorf("config path = %q, want %q", where.stdout, path)
	}
}

func TestConfigShowWarnsOnInvalidConfig(t *testing.T) {
	t.Parallel()

	res := runCLI(t, context.Background(), defaultsProvider(), "config", "show")
	if res.err != nil {
		t.Fatalf("config show error: %v", res.err)
	}
	if !strings.Contains(res.stdout, "(not set)") || !strings.Contains(res.stdout, "dir") {
		t.Errorf("config show:\n%s", res.stdout)
	}
}

func TestConfigShowMissingFile(t *testing.T) {
	t.Parallel()

	res := runCLI(t, context.Background(), config.NewProvider(), "config", "show", "--config", filepath.Join(t.TempDir(), "nope.cue"))
	if exitCode(res.err) != 1 {
		t.Fatalf("exit code = %d, want 1", exitCode(res.err))
	}
	if !strings.Contains(res.stderr, "load configuration") {
		t.Errorf("stderr:\n%s", res.stderr)
	}
}
