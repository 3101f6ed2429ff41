// SPDX-License-Identifier: MPL-2.0

package sprite

import (
	"slices"
	"strings"
	"testing"

	"github.com/invowk/iconsprite/internal/symbol"
)

func TestAssembleEmpty(t *testing.T) {
	t.Parallel()

	if got := Assemble(nil); got != "" {
		t.Errorf("Assemble(nil) = %q, want empty", got)
	}
	if got := NewDocument([]symbol.Symbol{}).String(); got != "" {
		t.Errorf("empty Document.String() = %q, want empty", got)
	}
}

func TestAssembleLayout(t *testing.T) {
	t.Parallel()

	got := Assemble([]symbol.Symbol{
		{ID: "icon-a", ViewBox: "0 0 1 1", Inner: "<path/>"},
		{ID: "icon-b", Inner: "<g/>"},
	})

	want := Open +
		"\n    " + `<symbol id="icon-a" viewBox="0 0 1 1"><path/></symbol>` +
		"\n    " + `<symbol id="icon-b"><g/></symbol>` +
		"\n" + Close
	if got != want {
		t.Errorf("Assemble() =\n%s\nwant\n%s", got, want)
	}

	for _, style := range []string{"position: absolute", "width: 0", "height: 0", "overflow: hidden"} {
		if !strings.Contains(got, style) {
			t.Errorf("wrapper style missing %q", style)
		}
	}
}

func TestAssembleDeterministic(t *testing.T) {
	t.Parallel()

	in := []symbol.Symbol{{ID: "icon-x"}, {ID: "icon-y"}, {ID: "icon-z"}}
	if a, b := Assemble(in), Assemble(in); a != b {
		t.Error("Assemble() is not deterministic")
	}
}

func TestDocumentDuplicateIDs(t *testing.T) {
	t.Parallel()

	doc := NewDocument([]symbol.Symbol{
		{ID: "icon-a", Inner: "first"},
		{ID: "icon-b", Inner: "b"},
		{ID: "icon-a", Inner: "last"},
	})

	if got := doc.IDs(); !slices.Equal(got, []string{"icon-a", "icon-b"}) {
		t.Fatalf("IDs() = %v", got)
	}
	if got := doc.Symbols()[0].Inner; got != "last" {
		t.Errorf("duplicate kept %q, want content of the last occurrence", got)
	}
	if n := strings.Count(doc.String(), `id="icon-a"`); n != 1 {
		t.Errorf("sprite has %d entries for icon-a, want 1", n)
	}
}

func TestDocumentSymbolsIsCopy(t *testing.T) {
	t.Parallel()

	doc := NewDocument([]symbol.Symbol{{ID: "icon-a"}})
	syms := doc.Symbols()
	syms[0].ID = "mutated"
	if doc.IDs()[0] != "icon-a" {
		t.Error("Symbols() must return a copy")
	}
}
