// SPDX-License-Identifier: MPL-2.0

package svgtok

import (
	"slices"
	"strings"
	"testing"
)

func TestTokenizeKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   []Kind
	}{
		{
			name:   "element with text",
			markup: `<title>Home</title>`,
			want:   []Kind{StartTag, Text, EndTag},
		},
		{
			name:   "self-closing text elements",
			markup: `<svg><style/><script/><title/><textarea/></svg>`,
			want:   []Kind{StartTag, SelfClosingTag, SelfClosingTag, SelfClosingTag, SelfClosingTag, EndTag},
		},
		{
			name:   "prolog doctype comment and cdata",
			markup: `<?xml version="1.0"?><!DOCTYPE svg><!-- c --><![CDATA[x]]>`,
			want:   []Kind{Other, Other, Comment, Other},
		},
		{
			name:   "truncated tag becomes text",
			markup: `<svg><path d="M0`,
			want:   []Kind{StartTag, Text},
		},
		{name: "empty", markup: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			toks, err := Tokenize(tt.markup)
			if err != nil {
				t.Fatalf("Tokenize() error: %v", err)
			}
			var got []Kind
			for _, tok := range toks {
				got = append(got, tok.Kind)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenizeOffsetsCoverSource(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`<svg viewBox="0 0 1 1"><path d="M0 0"/></svg>`,
		"<svg\n\tviewBox=\"0\n0 1 1\"\n  ><g\t/></svg >\n",
		`<?xml version="1.0" ?><svg><style>.a>b{fill:red}</style><!--x--></svg>`,
		`<svg><path d="M0`,
	}

	for _, in := range inputs {
		toks, err := Tokenize(in)
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", in, err)
		}
		var b strings.Builder
		last := 0
		for _, tok := range toks {
			if tok.Start < last || tok.End < tok.Start {
				t.Fatalf("Tokenize(%q): token %+v overlaps offset %d", in, tok, last)
			}
			b.WriteString(in[last:tok.End])
			last = tok.End
		}
		b.WriteString(in[last:])
		if b.String() != in {
			t.Errorf("reassembled %q, want %q", b.String(), in)
		}
		if strings.TrimSpace(in[last:]) != "" {
			t.Errorf("Tokenize(%q) left %q uncovered", in, in[last:])
		}
	}
}

func TestTokenAttributes(t *testing.T) {
	t.Parallel()

	const markup = "<svg VIEWBOX='0 0 24 24' fill=\"a&amp;b\"\n  data-x=1 hidden>"
	toks, err := Tokenize(markup)
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1", len(toks))
	}
	tok := toks[0]
	if !tok.IsTag("SVG") || tok.Start != 0 || tok.End != len(markup) {
		t.Fatalf("token = %+v", tok)
	}

	tests := []struct {
		attr   string
		want   string
		wantOK bool
	}{
		{attr: "viewBox", want: "0 0 24 24", wantOK: true},
		{attr: "fill", want: "a&b", wantOK: true},
		{attr: "data-x", want: "1", wantOK: true},
		{attr: "hidden", wantOK: true},
		{attr: "stroke"},
	}
	for _, tt := range tests {
		got, ok := tok.Attr(tt.attr)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Attr(%q) = %q, %v; want %q, %v", tt.attr, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestTokenNames(t *testing.T) {
	t.Parallel()

	const markup = `<linearGradient id="g"><stop/></linearGradient >`
	toks, err := Tokenize(markup)
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	want := []string{"linearGradient", "stop", "linearGradient"}
	var got []string
	for _, tok := range toks {
		got = append(got, tok.Name)
	}
	if !slices.Equal(got, want) {
		t.Errorf("names = %v, want %v", got, want)
	}
	if !toks[2].Is(EndTag, "lineargradient") {
		t.Errorf("end tag = %+v", toks[2])
	}
}
