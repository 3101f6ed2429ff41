// SPDX-License-Identifier: MPL-2.0

package inject

import "testing"

const sprite = `<svg style="display:none"><symbol id="icon-a"></symbol></svg>`

func TestHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		doc    string
		sprite string
		want   string
	}{
		{
			name:   "before body close",
			doc:    "<html><body>\n<p>hi</p>\n</body></html>",
			sprite: sprite,
			want:   "<html><body>\n<p>hi</p>\n  " + sprite + "\n  </body></html>",
		},
		{
			name:   "empty sprite leaves document unchanged",
			doc:    "<html><body></body></html>",
			sprite: "",
			want:   "<html><body></body></html>",
		},
		{
			name:   "no body close leaves document unchanged",
			doc:    "<p>fragment</p>",
			sprite: sprite,
			want:   "<p>fragment</p>",
		},
		{
			name:   "only the first body close",
			doc:    "<body></body></body>",
			sprite: "S",
			want:   "<body>  S\n  </body></body>",
		},
		{
			name:   "upper-case tag",
			doc:    "<BODY>x</BODY>",
			sprite: "S",
			want:   "<BODY>x  S\n  </body>",
		},
		{
			name:   "ignores body close inside comment and script",
			doc:    "<body><!-- </body> --><script>var s = \"</body>\";</script></body>",
			sprite: "S",
			want:   "<body><!-- </body> --><script>var s = \"</body>\";</script>  S\n  </body>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := HTML(tt.doc, tt.sprite); got != tt.want {
				t.Errorf("HTML() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestBodyClose(t *testing.T) {
	t.Parallel()

	doc := "<html><body>é</body>"
	start, end, ok := BodyClose(doc)
	if !ok {
		t.Fatal("BodyClose() found nothing")
	}
	if doc[start:end] != "</body>" {
		t.Errorf("span = %q", doc[start:end])
	}

	if _, _, ok := BodyClose(""); ok {
		t.Error("BodyClose(\"\") should report no match")
	}
}

func TestScript(t *testing.T) {
	t.Parallel()

	const js = "<script>reload()</script>"
	if got := Script("<body>x</body>", js); got != "<body>x"+js+"</body>" {
		t.Errorf("Script() = %q", got)
	}
	if got := Script("<p>x</p>", js); got != "<p>x</p>"+js {
		t.Errorf("Script() without body = %q", got)
	}
	if got := Script("<body></body>", ""); got != "<body></body>" {
		t.Errorf("Script() with empty snippet = %q", got)
	}
}
