package markdown

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

var goldmarkExtensions = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"footnotes":     extension.Footnote,
	"typographer":   extension.Typographer,
}

func collectGoldmarkExtensions(names []string) ([]goldmark.Extender, error) {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}, nil
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := extensionKey(name)
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := goldmarkExtensions[key]
		if !ok {
			return nil, errors.Errorf("unknown goldmark extension %q", name)
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}
	return extenders, nil
}

type goldmarkRenderer struct {
	md goldmark.Markdown
}

func newGoldmarkRenderer(opt Options) (*goldmarkRenderer, error) {
	exts, err := collectGoldmarkExtensions(opt.Extensions)
	if err != nil {
		return nil, err
	}
	exts = append(exts, &codeLangExtender{})

	rendererOptions := []renderer.Option{}
	if opt.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}
	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	)
	return &goldmarkRenderer{md: md}, nil
}

func (r *goldmarkRenderer) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return nil, errors.WithMessage(err, "rendering markdown")
	}
	return buf.Bytes(), nil
}

// Reset is a no-op: goldmark keeps no state between documents.
func (r *goldmarkRenderer) Reset() {}

var _ goldmark.Extender = (*codeLangExtender)(nil)

// codeLangExtender renders fenced code blocks as <pre lang="LANG"><code>.
type codeLangExtender struct{}

func (e *codeLangExtender) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&codeLangNodeRenderer{}, 100),
	))
}

var _ renderer.NodeRenderer = (*codeLangNodeRenderer)(nil)

type codeLangNodeRenderer struct{}

func (r *codeLangNodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, func(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		n := node.(*ast.FencedCodeBlock)
		_, _ = w.WriteString("<pre")
		if lang := n.Language(source); len(lang) > 0 {
			_, _ = w.WriteString(` lang="`)
			_, _ = w.Write(util.EscapeHTML(lang))
			_ = w.WriteByte('"')
		}
		_, _ = w.WriteString("><code>")
		for i := 0; i < n.Lines().Len(); i++ {
			line := n.Lines().At(i)
			_, _ = w.Write(util.EscapeHTML(line.Value(source)))
		}
		_, _ = w.WriteString("</code></pre>\n")
		return ast.WalkSkipChildren, nil
	})
}
