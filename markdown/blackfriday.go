package markdown

import (
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/russross/blackfriday/v2"
	"golang.org/x/net/html"
)

var blackfridayExtensions = map[string]blackfriday.Extensions{
	"gfm":               blackfriday.CommonExtensions,
	"tables":            blackfriday.Tables,
	"table":             blackfriday.Tables,
	"fenced_code":       blackfriday.FencedCode,
	"autolink":          blackfriday.Autolink,
	"strikethrough":     blackfriday.Strikethrough,
	"footnotes":         blackfriday.Footnotes,
	"footnote":          blackfriday.Footnotes,
	"definition_lists":  blackfriday.DefinitionLists,
	"definition":        blackfriday.DefinitionLists,
	"hard_line_break":   blackfriday.HardLineBreak,
	"heading_ids":       blackfriday.HeadingIDs,
	"no_intra_emphasis": blackfriday.NoIntraEmphasis,
}

func collectBlackfridayExtensions(names []string) (blackfriday.Extensions, error) {
	if len(names) == 0 {
		return blackfriday.CommonExtensions, nil
	}
	var exts blackfriday.Extensions
	for _, name := range names {
		ext, ok := blackfridayExtensions[extensionKey(name)]
		if !ok {
			return 0, errors.Errorf("unknown blackfriday extension %q", name)
		}
		exts |= ext
	}
	return exts | blackfriday.FencedCode, nil
}

type blackfridayRenderer struct {
	extensions blackfriday.Extensions
	flags      blackfriday.HTMLFlags
	headingIDs headingIDs
}

func newBlackfridayRenderer(opt Options) (*blackfridayRenderer, error) {
	exts, err := collectBlackfridayExtensions(opt.Extensions)
	if err != nil {
		return nil, err
	}
	flags := blackfriday.CommonHTMLFlags
	if !opt.Unsafe {
		flags |= blackfriday.SkipHTML
	}
	return &blackfridayRenderer{extensions: exts, flags: flags, headingIDs: headingIDs{}}, nil
}

func (r *blackfridayRenderer) Render(source []byte) ([]byte, error) {
	ast := blackfriday.New(blackfriday.WithExtensions(r.extensions)).Parse(source)
	r.headingIDs.set(ast)

	// The HTML renderer keeps its own heading ID table, so use a fresh one per document and
	// let headingIDs carry uniqueness across documents.
	rend := codeLangRenderer{Renderer: blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: r.flags,
	})}
	var buf bytes.Buffer
	rend.RenderHeader(&buf, ast)
	ast.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		return rend.RenderNode(&buf, node, entering)
	})
	rend.RenderFooter(&buf, ast)
	return buf.Bytes(), nil
}

// Reset forgets the heading IDs handed out so far.
func (r *blackfridayRenderer) Reset() {
	r.headingIDs = headingIDs{}
}

// codeLangRenderer renders fenced code blocks that have an info string as
// <pre lang="LANG"><code>.
type codeLangRenderer struct {
	blackfriday.Renderer
}

func (c codeLangRenderer) RenderNode(w io.Writer, node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
	if node.Type == blackfriday.CodeBlock {
		if lang := infoLanguage(node.Info); lang != "" {
			_, _ = io.WriteString(w, `<pre lang="`+html.EscapeString(lang)+`"><code>`)
			_, _ = io.WriteString(w, html.EscapeString(string(node.Literal)))
			_, _ = io.WriteString(w, "</code></pre>\n")
			return blackfriday.GoToNext
		}
	}
	return c.Renderer.RenderNode(w, node, entering)
}

// infoLanguage returns the first word of a fenced code block's info string.
func infoLanguage(info []byte) string {
	fields := strings.Fields(string(info))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
