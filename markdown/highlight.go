package markdown

import (
	"bytes"
	"io"
	"regexp"

	"github.com/alecthomas/chroma"
	chromahtml "github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	"golang.org/x/net/html"
)

// codeBlockPattern matches the code blocks produced by the renderers for fenced code with a
// language. The code may be empty.
var codeBlockPattern = regexp.MustCompile(`(?s)<pre lang="([^"]+)"><code>(.*?)</code></pre>`)

// DefaultAliases maps fenced code languages to the lexer used for them.
func DefaultAliases() map[string]string {
	return map[string]string{
		"python": "python3",
	}
}

// Highlighter rewrites rendered HTML so that code blocks are syntax-highlighted. It is safe for
// concurrent use.
type Highlighter struct {
	aliases   map[string]string
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHighlighter returns a highlighter that resolves languages through aliases (DefaultAliases
// if nil) and styles output with the named chroma style.
func NewHighlighter(style string, aliases map[string]string) *Highlighter {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	return &Highlighter{
		aliases:   aliases,
		style:     styles.Get(style),
		formatter: chromahtml.New(chromahtml.WithClasses(true), chromahtml.PreventSurroundingPre(true)),
	}
}

// Rewrite replaces every <pre lang="LANG"><code>CODE</code></pre> block in html with highlighted
// markup wrapped in <div class="highlight"><pre>...</pre></div>. Unknown languages are
// highlighted as plain text. Rewrite never fails.
func (h *Highlighter) Rewrite(src []byte) []byte {
	return codeBlockPattern.ReplaceAllFunc(src, func(match []byte) []byte {
		m := codeBlockPattern.FindSubmatch(match)
		lang, code := string(m[1]), html.UnescapeString(string(m[2]))

		var buf bytes.Buffer
		buf.WriteString(`<div class="highlight"><pre>`)
		h.highlight(&buf, code, lang)
		buf.WriteString("</pre></div>")
		return buf.Bytes()
	})
}

func (h *Highlighter) highlight(w *bytes.Buffer, code, lang string) {
	iterator, err := h.lexer(lang).Tokenise(nil, code)
	if err == nil {
		var out bytes.Buffer
		if err = h.formatter.Format(&out, h.style, iterator); err == nil {
			w.Write(out.Bytes())
			return
		}
	}
	w.WriteString(html.EscapeString(code))
}

func (h *Highlighter) lexer(lang string) chroma.Lexer {
	if alias, ok := h.aliases[lang]; ok {
		lang = alias
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// WriteCSS writes the stylesheet for the highlighter's style.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}
