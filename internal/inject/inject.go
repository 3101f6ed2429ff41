// SPDX-License-Identifier: MPL-2.0

package inject

import (
	"strings"

	"golang.org/x/net/html"
)

// HTML returns doc with sprite inserted in place of the first </body> tag as
// "  " + sprite + "\n  </body>". The document is returned unchanged when the
// sprite is empty or it has no closing body tag.
func HTML(doc, sprite string) string {
	if sprite == "" {
		return doc
	}
	start, end, ok := BodyClose(doc)
	if !ok {
		return doc
	}

	var b strings.Builder
	b.Grow(len(doc) + len(sprite) + 4)
	b.WriteString(doc[:start])
	b.WriteString("  ")
	b.WriteString(sprite)
	b.WriteString("\n  </body>")
	b.WriteString(doc[end:])
	return b.String()
}

// BodyClose locates the first </body> end tag. Tag names match
// case-insensitively; text inside comments, <script> and <style> is skipped.
func BodyClose(doc string) (start, end int, ok bool) {
	z := html.NewTokenizer(strings.NewReader(doc))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return 0, 0, false
		}
		n := len(z.Raw())
		if tt == html.EndTagToken {
			name, _ := z.TagName()
			if string(name) == "body" {
				return offset, offset + n, true
			}
		}
		offset += n
	}
}

// Script inserts snippet right before the first </body>, or appends it when
// the document has none. An empty snippet leaves doc unchanged.
func Script(doc, snippet string) string {
	if snippet == "" {
		return doc
	}
	start, _, ok := BodyClose(doc)
	if !ok {
		return doc + snippet
	}
	return doc[:start] + snippet + doc[start:]
}
