// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		DirectoryNotFoundId,
		NoIconsFoundId,
		SymbolExtractionMissId,
		NormalizeFailedId,
		WatchStartFailedId,
		ConfigLoadFailedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true

		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}

	if DirectoryNotFoundId != 1 {
		t.Errorf("DirectoryNotFoundId = %d, want 1", DirectoryNotFoundId)
	}
}

func TestValues_SortedById(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Errorf("Values() not sorted at %d: %d >= %d", i, values[i-1].Id(), values[i].Id())
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		wantID Id
		wantOK bool
	}{
		{"directory-not-found", DirectoryNotFoundId, true},
		{"symbol-extraction-miss", SymbolExtractionMissId, true},
		{"watch-start-failed", WatchStartFailedId, true},
		{"unknown", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if ok && got.Id() != tt.wantID {
				t.Errorf("Lookup(%q) id = %d, want %d", tt.name, got.Id(), tt.wantID)
			}
		})
	}
}

func TestIssue_Render(t *testing.T) {
	// Not parallel: swaps the package-level render function.
	orig := render
	t.Cleanup(func() { render = orig })

	var rendered string
	render = func(in string, _ string) (string, error) {
		rendered = in
		return "ok", nil
	}

	out, err := Get(SymbolExtractionMissId).Render("dark")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if out != "ok" {
		t.Errorf("Render() = %q, want %q", out, "ok")
	}
	if !strings.Contains(rendered, "## See also") {
		t.Errorf("rendered markdown missing links section:\n%s", rendered)
	}

	render = func(string, string) (string, error) { return "", errors.New("boom") }
	if _, err := Get(NoIconsFoundId).Render("dark"); err == nil {
		t.Error("expected render error to propagate")
	}
}

func TestIssue_ExtLinksIsCopy(t *testing.T) {
	i := Get(SymbolExtractionMissId)
	links := i.ExtLinks()
	if len(links) == 0 {
		t.Fatal("expected at least one link")
	}
	links[0] = "mutated"
	if i.ExtLinks()[0] == "mutated" {
		t.Error("ExtLinks() must return a copy")
	}
}
