package markdown

import (
	"strings"
	"testing"
)

func render(t *testing.T, r Renderer, source string) string {
	t.Helper()
	html, err := r.Render([]byte(source))
	if err != nil {
		t.Fatal(err)
	}
	return strings.TrimSpace(string(html))
}

func TestRenderers(t *testing.T) {
	for _, backend := range []Backend{Goldmark, Blackfriday} {
		t.Run(string(backend), func(t *testing.T) {
			r, err := New(Options{Backend: backend, Unsafe: true})
			if err != nil {
				t.Fatal(err)
			}

			t.Run("paragraph", func(t *testing.T) {
				got := render(t, r, "Hello **world**")
				want := "<p>Hello <strong>world</strong></p>"
				if got != want {
					t.Errorf("got %q, want %q", got, want)
				}
			})

			t.Run("fenced code with language", func(t *testing.T) {
				got := render(t, r, "```python\nprint(\"hi\") < 1\n```\n")
				if !strings.HasPrefix(got, `<pre lang="python"><code>print(`) {
					t.Errorf("got %q, want a <pre lang> block", got)
				}
				if !strings.Contains(got, "&lt; 1") || strings.Contains(got, `"hi"`) {
					t.Errorf("got %q, want escaped code", got)
				}
			})

			t.Run("fenced code without language", func(t *testing.T) {
				got := render(t, r, "```\nx\n```\n")
				if strings.Contains(got, "lang=") {
					t.Errorf("got %q, want no lang attribute", got)
				}
			})

			t.Run("raw HTML", func(t *testing.T) {
				got := render(t, r, "<div class=\"note\">hi</div>\n")
				if !strings.Contains(got, `<div class="note">hi</div>`) {
					t.Errorf("got %q, want raw HTML kept", got)
				}
			})
		})
	}
}

func TestGoldmarkSafe(t *testing.T) {
	r, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := render(t, r, "<script>alert(1)</script>\n"); strings.Contains(got, "<script>") {
		t.Errorf("got %q, want raw HTML omitted", got)
	}
}

func TestGoldmarkStateless(t *testing.T) {
	r, err := New(Options{Backend: Goldmark})
	if err != nil {
		t.Fatal(err)
	}
	want := `<h1 id="intro">Intro</h1>`
	for i := 0; i < 2; i++ {
		if got := render(t, r, "# Intro"); got != want {
			t.Errorf("render %d: got %q, want %q", i, got, want)
		}
	}
}

func TestBlackfridayHeadingIDs(t *testing.T) {
	r, err := New(Options{Backend: Blackfriday})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		source string
		reset  bool
		want   string
	}{
		{source: "# Intro", want: `<h1 id="intro">Intro</h1>`},
		{source: "# Intro", want: `<h1 id="intro-1">Intro</h1>`},
		{source: "# Intro", reset: true, want: `<h1 id="intro">Intro</h1>`},
		{source: "# Other {#custom}", want: `<h1 id="custom">Other</h1>`},
	}
	for i, test := range tests {
		if test.reset {
			r.Reset()
		}
		if got := render(t, r, test.source); got != test.want {
			t.Errorf("%d: got %q, want %q", i, got, test.want)
		}
	}

	r.Reset()
	got := render(t, r, "# Intro\n\n# Intro")
	for _, want := range []string{`id="intro"`, `id="intro-1"`} {
		if !strings.Contains(got, want) {
			t.Errorf("got %q, want it to contain %s", got, want)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := map[string]struct {
		opt     Options
		wantErr bool
	}{
		"zero":                   {opt: Options{}},
		"goldmark extensions":    {opt: Options{Backend: Goldmark, Extensions: []string{"GFM", "footnote"}}},
		"blackfriday extensions": {opt: Options{Backend: Blackfriday, Extensions: []string{"tables", "fenced_code"}}},
		"unknown backend":        {opt: Options{Backend: "pandoc"}, wantErr: true},
		"unknown extension":      {opt: Options{Extensions: []string{"mermaid"}}, wantErr: true},
		"extension of the other": {opt: Options{Backend: Goldmark, Extensions: []string{"fenced_code"}}, wantErr: true},
	}
	for label, test := range tests {
		t.Run(label, func(t *testing.T) {
			err := test.opt.Validate()
			if (err != nil) != test.wantErr {
				t.Errorf("got error %v, want error %v", err, test.wantErr)
			}
			if _, err := New(test.opt); (err != nil) != test.wantErr {
				t.Errorf("New: got error %v, want error %v", err, test.wantErr)
			}
		})
	}
}
