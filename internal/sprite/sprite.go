// SPDX-License-Identifier: MPL-2.0

package sprite

import (
	"strings"

	"github.com/invowk/iconsprite/internal/symbol"
)

const (
	// Open is the fixed root wrapper. It hides the sprite while keeping its
	// symbols referenceable through <use href="#id">.
	Open = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" style="position: absolute; width: 0; height: 0; overflow: hidden;">`
	// Close ends the root wrapper.
	Close = `</svg>`

	separator = "\n    "
)

// Document is an ordered, duplicate-free list of symbols.
type Document struct {
	symbols []symbol.Symbol
}

// NewDocument builds a Document from symbols in order. When an ID repeats,
// the entry stays at the position of its first occurrence and takes the
// content of the last one.
func NewDocument(symbols []symbol.Symbol) Document {
	index := make(map[string]int, len(symbols))
	out := make([]symbol.Symbol, 0, len(symbols))
	for _, s := range symbols {
		if i, ok := index[s.ID]; ok {
			out[i] = s
			continue
		}
		index[s.ID] = len(out)
		out = append(out, s)
	}
	return Document{symbols: out}
}

// Symbols returns a copy of the document's symbols.
func (d Document) Symbols() []symbol.Symbol {
	return append([]symbol.Symbol(nil), d.symbols...)
}

// Len returns the number of symbols.
func (d Document) Len() int {
	return len(d.symbols)
}

// IDs returns the symbol identifiers in document order.
func (d Document) IDs() []string {
	ids := make([]string, len(d.symbols))
	for i, s := range d.symbols {
		ids[i] = s.ID
	}
	return ids
}

// String serializes the document. An empty document serializes to "".
func (d Document) String() string {
	if len(d.symbols) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(Open)
	for _, s := range d.symbols {
		b.WriteString(separator)
		b.WriteString(s.String())
	}
	b.WriteString("\n")
	b.WriteString(Close)
	return b.String()
}

// Assemble joins symbols into sprite markup; "" when there is nothing to inject.
func Assemble(symbols []symbol.Symbol) string {
	return NewDocument(symbols).String()
}
