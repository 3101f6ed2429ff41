// SPDX-License-Identifier: MPL-2.0

// Package symbol turns one optimized SVG document into a reusable <symbol>.
//
// Extraction is a tag scan over internal/svgtok, not a full SVG parser: it
// takes the first <svg> element, keeps its viewBox and cuts everything up to
// the matching </svg> byte for byte. Later top-level <svg> elements are
// ignored.
package symbol

import (
	"html"
	"strings"

	"github.com/invowk/iconsprite/internal/svgtok"
)

const containerTag = "svg"

// Symbol is one icon's extracted payload.
type Symbol struct {
	// ID is the sprite identifier, "<prefix>-<name>".
	ID string
	// ViewBox is the container's viewBox attribute; empty when absent.
	ViewBox string
	// Inner is the raw markup between the container's start and end tags.
	Inner string
}

// ID builds a symbol identifier from a prefix and an icon base name.
func ID(prefix, name string) string {
	return prefix + "-" + name
}

// String serializes the symbol as a <symbol> element.
func (s Symbol) String() string {
	var b strings.Builder
	b.WriteString(`<symbol id="`)
	b.WriteString(html.EscapeString(s.ID))
	b.WriteString(`"`)
	if s.ViewBox != "" {
		b.WriteString(` viewBox="`)
		b.WriteString(html.EscapeString(s.ViewBox))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(s.Inner)
	b.WriteString("</symbol>")
	return b.String()
}

// Extract locates the first <svg> element of markup and returns its contents
// as a Symbol named id. It reports false when there is no container, when the
// container is self-closing, or when the input ends before the container is
// closed. Malformed markup is never an error.
func Extract(id, markup string) (Symbol, bool) {
	toks, _ := svgtok.Tokenize(markup)

	var (
		root  svgtok.Token
		depth int
	)
	for _, tok := range toks {
		switch {
		case depth == 0 && tok.Is(svgtok.SelfClosingTag, containerTag):
			return Symbol{}, false
		case tok.Is(svgtok.StartTag, containerTag):
			if depth == 0 {
				root = tok
			}
			depth++
		case depth > 0 && tok.Is(svgtok.EndTag, containerTag):
			depth--
			if depth == 0 {
				viewBox, _ := root.Attr("viewBox")
				return Symbol{ID: id, ViewBox: viewBox, Inner: markup[root.End:tok.Start]}, true
			}
		}
	}
	return Symbol{}, false
}
