// SPDX-License-Identifier: MPL-2.0

package normalize

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/invowk/iconsprite/internal/svgtok"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/svg"
)

const svgMimetype = "image/svg+xml"

var (
	// xmlnsAttr matches xmlns and xmlns:prefix declarations inside a start tag.
	xmlnsAttr = regexp.MustCompile(`\s+xmlns(?::[A-Za-z0-9_.-]+)?\s*=\s*(?:"[^"]*"|'[^']*'|[^\s/>]+)`)
	// dimensionAttr matches width and height attributes inside a start tag.
	dimensionAttr = regexp.MustCompile(`\s+(?:width|height)\s*=\s*(?:"[^"]*"|'[^']*'|[^\s/>]+)`)
)

type (
	// Pass is one step of a Plan.
	Pass interface {
		Name() string
		Apply(markup string) (string, error)
	}

	funcPass struct {
		name  string
		apply func(string) (string, error)
	}
)

func (p funcPass) Name() string { return p.name }

func (p funcPass) Apply(markup string) (string, error) { return p.apply(markup) }

// builtinPass returns the pass registered under name.
func builtinPass(name string) (Pass, bool) {
	switch name {
	case PassCleanup:
		return newCleanupPass(), true
	case PassRemoveXMLNS:
		return funcPass{name, rootAttrRemover(xmlnsAttr)}, true
	case PassRemoveTitle:
		return funcPass{name, elementRemover("title")}, true
	case PassRemoveComments:
		return funcPass{name, removeComments}, true
	case PassRemoveDesc:
		return funcPass{name, elementRemover("desc")}, true
	case PassRemoveMetadata:
		return funcPass{name, elementRemover("metadata")}, true
	case PassRemoveDimensions:
		return funcPass{name, rootAttrRemover(dimensionAttr)}, true
	case PassRemoveStyleElement:
		return funcPass{name, elementRemover("style")}, true
	default:
		return nil, false
	}
}

func newCleanupPass() Pass {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc(svgMimetype, svg.Minify)
	return funcPass{
		name: PassCleanup,
		apply: func(markup string) (string, error) {
			return m.String(svgMimetype, markup)
		},
	}
}

func substitutionPass(rule SubstitutionRule) (Pass, error) {
	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return nil, fmt.Errorf("substitution %s: %w", rule.Name, err)
	}
	name := rule.Name
	if name == "" {
		name = "substitution"
	}
	return funcPass{
		name: name,
		apply: func(markup string) (string, error) {
			return re.ReplaceAllString(markup, rule.Replacement), nil
		},
	}, nil
}

// rewriteTokens re-emits markup token by token, replacing each token's raw
// text with the result of fn.
func rewriteTokens(markup string, fn func(tok svgtok.Token, raw string) string) (string, error) {
	toks, err := svgtok.Tokenize(markup)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.Grow(len(markup))
	last := 0
	for _, tok := range toks {
		out.WriteString(markup[last:tok.Start])
		out.WriteString(fn(tok, markup[tok.Start:tok.End]))
		last = tok.End
	}
	out.WriteString(markup[last:])
	return out.String(), nil
}

// elementRemover drops every element with one of the given tag names,
// including its content.
func elementRemover(tags ...string) func(string) (string, error) {
	matches := func(tok svgtok.Token) bool {
		return slices.ContainsFunc(tags, func(tag string) bool { return strings.EqualFold(tok.Name, tag) })
	}
	return func(markup string) (string, error) {
		var (
			dropTag string
			depth   int
		)
		return rewriteTokens(markup, func(tok svgtok.Token, raw string) string {
			if depth > 0 {
				switch {
				case tok.Is(svgtok.StartTag, dropTag):
					depth++
				case tok.Is(svgtok.EndTag, dropTag):
					depth--
				}
				return ""
			}
			if !matches(tok) {
				return raw
			}
			switch tok.Kind {
			case svgtok.StartTag:
				dropTag, depth = tok.Name, 1
				return ""
			case svgtok.SelfClosingTag:
				return ""
			}
			return raw
		})
	}
}

// rootAttrRemover strips attributes matching attr from the first <svg> start tag only.
func rootAttrRemover(attr *regexp.Regexp) func(string) (string, error) {
	return func(markup string) (string, error) {
		done := false
		return rewriteTokens(markup, func(tok svgtok.Token, raw string) string {
			if done || !tok.IsTag("svg") {
				return raw
			}
			done = true
			return attr.ReplaceAllString(raw, "")
		})
	}
}

func removeComments(markup string) (string, error) {
	return rewriteTokens(markup, func(tok svgtok.Token, raw string) string {
		if tok.Kind == svgtok.Comment {
			return ""
		}
		return raw
	})
}
