// SPDX-License-Identifier: MPL-2.0

// Package svgtok splits SVG markup into tags, text and comments with the byte
// offsets of each token in the source, so callers can cut or rewrite a
// document without re-serializing it.
//
// Tokenization follows XML rules through github.com/tdewolff/parse/v2/xml.
// There are no raw-text elements: <style/>, <script/> or <title/> close
// themselves and never swallow the markup that follows.
package svgtok

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// Token kinds.
const (
	Text Kind = iota
	StartTag
	EndTag
	SelfClosingTag
	Comment
	// Other covers processing instructions, DOCTYPE and CDATA sections.
	Other
)

type (
	// Kind classifies a Token.
	Kind int

	// Attr is one attribute of a tag. Value is unquoted and unescaped.
	Attr struct {
		Name  string
		Value string
	}

	// Token is one lexical unit of a document. markup[Start:End] is its
	// source text; a tag spans from '<' through its closing '>'.
	Token struct {
		Kind  Kind
		Name  string
		Attrs []Attr
		Start int
		End   int
	}
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case StartTag:
		return "start-tag"
	case EndTag:
		return "end-tag"
	case SelfClosingTag:
		return "self-closing-tag"
	case Comment:
		return "comment"
	default:
		return "other"
	}
}

// Is reports whether t is of kind k with the given element name. Names
// compare case-insensitively.
func (t Token) Is(k Kind, name string) bool {
	return t.Kind == k && strings.EqualFold(t.Name, name)
}

// IsTag reports whether t opens an element called name, self-closing or not.
func (t Token) IsTag(name string) bool {
	return t.Is(StartTag, name) || t.Is(SelfClosingTag, name)
}

// Attr returns the value of the named attribute.
func (t Token) Attr(name string) (string, bool) {
	for _, a := range t.Attrs {
		if strings.EqualFold(a.Name, name) {
			return a.Value, true
		}
	}
	return "", false
}

// Tokenize lexes markup. A document that ends inside an element is not an
// error; on a lexer error the tokens read so far are returned with it.
func Tokenize(markup string) ([]Token, error) {
	l := xml.NewLexer(parse.NewInputString(markup))

	var (
		toks   []Token
		open   *Token
		cursor int
	)
	for {
		tt, data := l.Next()
		if tt == xml.ErrorToken {
			if open != nil {
				// truncated inside a tag; keep it as text
				toks = append(toks, Token{Kind: Text, Start: open.Start, End: len(markup)})
			}
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return toks, fmt.Errorf("tokenize svg: %w", err)
			}
			return toks, nil
		}

		start := cursor
		switch tt {
		case xml.StartTagCloseToken, xml.StartTagCloseVoidToken, xml.StartTagClosePIToken:
			// the lexer drops whitespace before the closing delimiter
			for start < len(markup) && isSpace(markup[start]) {
				start++
			}
		}
		end := start + len(data)
		cursor = end

		switch tt {
		case xml.StartTagToken:
			open = &Token{Kind: StartTag, Name: string(l.Text()), Start: start}
		case xml.StartTagPIToken:
			open = &Token{Kind: Other, Name: string(l.Text()), Start: start}
		case xml.AttributeToken:
			if open != nil {
				open.Attrs = append(open.Attrs, Attr{Name: string(l.Text()), Value: attrValue(l.AttrVal())})
			}
		case xml.StartTagCloseToken, xml.StartTagCloseVoidToken, xml.StartTagClosePIToken:
			if open == nil {
				toks = append(toks, Token{Kind: Text, Start: start, End: end})
				continue
			}
			if tt == xml.StartTagCloseVoidToken && open.Kind == StartTag {
				open.Kind = SelfClosingTag
			}
			open.End = end
			toks = append(toks, *open)
			open = nil
		case xml.EndTagToken:
			toks = append(toks, Token{Kind: EndTag, Name: string(l.Text()), Start: start, End: end})
		case xml.CommentToken:
			toks = append(toks, Token{Kind: Comment, Start: start, End: end})
		case xml.TextToken:
			toks = append(toks, Token{Kind: Text, Start: start, End: end})
		default:
			toks = append(toks, Token{Kind: Other, Start: start, End: end})
		}
	}
}

func attrValue(raw []byte) string {
	v := string(raw)
	if n := len(v); n > 0 && (v[0] == '"' || v[0] == '\'') {
		v = v[1:]
		if n > 1 && v[len(v)-1] == raw[0] {
			v = v[:len(v)-1]
		}
	}
	return html.UnescapeString(v)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
