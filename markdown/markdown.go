// Package markdown renders Markdown document bodies to HTML and syntax-highlights the code
// blocks in the rendered output.
package markdown

import (
	"strings"

	"github.com/pkg/errors"
)

// Renderer converts Markdown to HTML.
//
// A Renderer may keep state between calls (such as the heading IDs already handed out) and is
// not safe for concurrent use. Reset clears that state; it is a no-op for stateless backends.
type Renderer interface {
	Render(source []byte) ([]byte, error)
	Reset()
}

// Backend names a Markdown implementation.
type Backend string

const (
	// Goldmark is the CommonMark/GFM renderer github.com/yuin/goldmark. It is stateless.
	Goldmark Backend = "goldmark"

	// Blackfriday is github.com/russross/blackfriday/v2. Heading IDs stay unique across Render
	// calls until Reset.
	Blackfriday Backend = "blackfriday"
)

// Options customize the renderer returned by New.
type Options struct {
	// Backend selects the implementation. The zero value means Goldmark.
	Backend Backend

	// Extensions are the names of the syntax extensions to enable. If empty, each backend
	// enables its GitHub-flavored defaults.
	Extensions []string

	// Unsafe passes raw HTML in the source through to the output.
	Unsafe bool
}

// New returns a renderer for the given options.
//
// Fenced code blocks with an info string are rendered as <pre lang="LANG"><code>...</code></pre>,
// the form Highlighter rewrites.
func New(opt Options) (Renderer, error) {
	switch opt.Backend {
	case "", Goldmark:
		return newGoldmarkRenderer(opt)
	case Blackfriday:
		return newBlackfridayRenderer(opt)
	default:
		return nil, errors.Errorf("unknown markdown backend %q", opt.Backend)
	}
}

// Validate reports whether New would accept opt.
func (opt Options) Validate() error {
	var known map[string]struct{}
	switch opt.Backend {
	case "", Goldmark:
		known = keys(goldmarkExtensions)
	case Blackfriday:
		known = keys(blackfridayExtensions)
	default:
		return errors.Errorf("unknown markdown backend %q", opt.Backend)
	}
	for _, name := range opt.Extensions {
		if _, ok := known[extensionKey(name)]; !ok {
			return errors.Errorf("unknown %s extension %q", opt.backend(), name)
		}
	}
	return nil
}

func (opt Options) backend() Backend {
	if opt.Backend == "" {
		return Goldmark
	}
	return opt.Backend
}

func extensionKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func keys[V any](m map[string]V) map[string]struct{} {
	set := make(map[string]struct{}, len(m))
	for k := range m {
		set[k] = struct{}{}
	}
	return set
}
