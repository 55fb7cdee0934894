package filters

import (
	"testing"
)

func TestStripTags(t *testing.T) {
	tests := map[string]struct {
		in                 string
		preserveLinebreaks bool
		want               string
	}{
		"tags": {
			in:   "<p>Hello <b>world</b></p>",
			want: "Hello world",
		},
		"comment containing a tag": {
			in:   "a<!-- <b> -->b",
			want: "ab",
		},
		"whitespace collapsed": {
			in:   "<p>one\n\n  two\tthree</p>",
			want: "one two three",
		},
		"line breaks preserved": {
			in:                 "<p>one  \t two</p>\n<p>three</p>",
			preserveLinebreaks: true,
			want:               "one two\nthree",
		},
		"entities unescaped": {
			in:   "<p>a &amp; b &lt;c&gt;</p>",
			want: "a & b <c>",
		},
		"unterminated tag": {
			in:   "a <b c",
			want: "a <b c",
		},
		"unterminated comment": {
			in:   "a <!-- b <i>c</i>",
			want: "a c",
		},
		"less-than in text": {
			in:   "1 < 2 and 3 > 2",
			want: "1 2",
		},
	}
	for label, test := range tests {
		t.Run(label, func(t *testing.T) {
			if got := StripTags(test.in, test.preserveLinebreaks); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestUntagify(t *testing.T) {
	tests := map[string]struct {
		in                 string
		preserveLinebreaks bool
		want               string
	}{
		"tags": {
			in:   "  <p>Hello <B>world</B></p>  ",
			want: "Hello world",
		},
		"comment": {
			in:   "a<!-- x\ny -->b",
			want: "ab",
		},
		"less-than in text is kept": {
			in:   "1 < 2",
			want: "1 < 2",
		},
		"whitespace collapsed": {
			in:   "<p>one\n\n two</p>",
			want: "one two",
		},
		"line breaks preserved": {
			in:                 "<p> one   two </p>\n\n\n\n<p>three</p>",
			preserveLinebreaks: true,
			want:               "one two\n\nthree",
		},
		"crlf normalized": {
			in:                 "a\r\nb",
			preserveLinebreaks: true,
			want:               "a\nb",
		},
		"entities unescaped": {
			in:   "&quot;quoted&quot;",
			want: `"quoted"`,
		},
	}
	for label, test := range tests {
		t.Run(label, func(t *testing.T) {
			if got := Untagify(test.in, test.preserveLinebreaks); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestNL2BR(t *testing.T) {
	tests := map[string]string{
		"one":                     "<p>one</p>",
		"one\ntwo":                "<p>one<br>\ntwo</p>",
		"one\n\ntwo":              "<p>one</p>\n\n<p>two</p>",
		"one\r\n\r\n\r\ntwo\rtwo": "<p>one</p>\n\n<p>two<br>\ntwo</p>",
		"a < b":                   "<p>a &lt; b</p>",
		"one\r\ntwo":              "<p>one<br>\ntwo</p>",
	}
	for in, want := range tests {
		if got := NL2BR(in); got != want {
			t.Errorf("%q: got %q, want %q", in, got, want)
		}
	}
}
