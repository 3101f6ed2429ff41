// SPDX-License-Identifier: MPL-2.0

// Package cli contains CLI integration tests using testscript.
//
// TestMain builds the iconsprite binary once; each script in testdata/ then
// runs it in a fresh $WORK directory populated from the script's archive.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// binDir holds the iconsprite binary built by TestMain.
var binDir string

func TestMain(m *testing.M) {
	os.Exit(runMain(m))
}

func runMain(m *testing.M) int {
	root, err := moduleRoot()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	binDir, err = os.MkdirTemp("", "iconsprite-cli-")
	if err != nil {
		fmt.Fprintln(os.Stderr, "create bin directory:", err)
		return 1
	}
	defer os.RemoveAll(binDir)

	binary := "iconsprite"
	if runtime.GOOS == "windows" {
		binary += ".exe"
	}
	build := exec.CommandContext(context.Background(), "go", "build", "-o", filepath.Join(binDir, binary), ".")
	build.Dir = root
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "build iconsprite:", err)
		return 1
	}

	return m.Run()
}

// moduleRoot walks up from the working directory to the directory holding go.mod.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod above the working directory")
		}
		dir = parent
	}
}

func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			env.Setenv("PATH", binDir+string(os.PathListSeparator)+env.Getenv("PATH"))
			// Host overrides must not leak into the scripts.
			for _, kv := range os.Environ() {
				if key, _, _ := strings.Cut(kv, "="); strings.HasPrefix(key, "ICONSPRITE_") {
					env.Setenv(key, "")
				}
			}
			return nil
		},
		ContinueOnError: true,
	})
}
