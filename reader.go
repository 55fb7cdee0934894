package mdreader

import (
	"bytes"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/mahmoudimus/mdreader/markdown"
	"github.com/mahmoudimus/mdreader/metadata"
)

var (
	// ErrEmptyContent is returned when a line-dialect document renders to no HTML at all.
	ErrEmptyContent = errors.New("rendered content is empty")

	// ErrNoReader is returned for files whose extension has no reader.
	ErrNoReader = errors.New("no reader for file extension")
)

// Document is a source document read from a content tree.
type Document struct {
	// Path is the document's path in the content file system.
	Path string `json:"path"`

	// HTML is the rendered body.
	HTML []byte `json:"-"`

	// Meta is the normalized front matter.
	Meta metadata.Metadata `json:"meta"`
}

// Reader reads the document at a path.
type Reader interface {
	Read(path string) (*Document, error)
}

// GFMReader reads documents with line-dialect front matter and syntax-highlights their code
// blocks.
type GFMReader struct {
	FS          http.FileSystem
	Renderer    markdown.Renderer
	Highlighter *markdown.Highlighter
	Normalizer  *metadata.Normalizer
	Log         *slog.Logger
}

func (r *GFMReader) Read(path string) (*Document, error) {
	text, err := ReadFile(r.FS, path)
	if err != nil {
		return nil, errors.WithMessagef(err, "reading %s", path)
	}
	return r.read(path, text)
}

func (r *GFMReader) read(path string, text []byte) (*Document, error) {
	metaText, body, _ := metadata.SplitLines(string(text))
	raw := metadata.ParseLines(metaText, logger(r.Log).With("path", path))
	meta, err := r.Normalizer.Normalize(raw, path)
	if err != nil {
		return nil, err
	}

	r.Renderer.Reset()
	html, err := r.Renderer.Render([]byte(body))
	if err != nil {
		return nil, errors.WithMessagef(err, "rendering %s", path)
	}
	if r.Highlighter != nil {
		html = r.Highlighter.Rewrite(html)
	}
	if len(bytes.TrimSpace(html)) == 0 {
		return nil, errors.WithMessage(ErrEmptyContent, path)
	}
	return &Document{Path: path, HTML: html, Meta: meta}, nil
}

// TOMLReader reads documents with TOML front matter. Documents without a complete "+++" block are
// read by Fallback instead.
type TOMLReader struct {
	FS         http.FileSystem
	Renderer   markdown.Renderer
	Normalizer *metadata.Normalizer
	Fallback   *GFMReader
	Log        *slog.Logger
}

func (r *TOMLReader) Read(path string) (*Document, error) {
	text, err := ReadFile(r.FS, path)
	if err != nil {
		return nil, errors.WithMessagef(err, "reading %s", path)
	}

	metaText, body, err := metadata.SplitTOML(string(text))
	if err != nil {
		logger(r.Log).Info("No TOML metadata header found, falling back to line metadata parsing",
			"path", path, "reason", err)
		return r.Fallback.read(path, text)
	}

	raw, err := metadata.ParseTOML(metaText)
	if err != nil {
		logger(r.Log).Error("Error parsing TOML metadata", "path", path, "error", err)
		raw = metadata.Raw{}
	}
	meta, err := r.Normalizer.Normalize(raw, path)
	if err != nil {
		return nil, err
	}

	r.Renderer.Reset()
	html, err := r.Renderer.Render([]byte(body))
	if err != nil {
		return nil, errors.WithMessagef(err, "rendering %s", path)
	}
	return &Document{Path: path, HTML: html, Meta: meta}, nil
}

// Dialect is a front matter format.
type Dialect string

const (
	LineDialect Dialect = "line"
	TOMLDialect Dialect = "toml"
)

// ReaderTable maps file extensions (lowercase, without the leading dot) to the dialect used to
// read them.
type ReaderTable map[string]Dialect

// DefaultReaderTable returns the table used when none is configured.
func DefaultReaderTable() ReaderTable {
	return ReaderTable{
		"md":       LineDialect,
		"markdown": LineDialect,
		"mkd":      LineDialect,
		"mdown":    LineDialect,
	}
}

func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Dialect returns the dialect for the file at path.
func (t ReaderTable) Dialect(path string) (Dialect, bool) {
	d, ok := t[extension(path)]
	return d, ok
}

// Handles reports whether a reader is registered for the file at path.
func (t ReaderTable) Handles(path string) bool {
	_, ok := t.Dialect(path)
	return ok
}

func (t ReaderTable) validate() error {
	for ext, d := range t {
		if ext == "" || strings.HasPrefix(ext, ".") || ext != strings.ToLower(ext) {
			return errors.Errorf("invalid reader extension %q (want lowercase, without a leading dot)", ext)
		}
		switch d {
		case LineDialect, TOMLDialect:
		default:
			return errors.Errorf("unknown dialect %q for extension %q", d, ext)
		}
	}
	return nil
}

// ReaderOptions configure the readers built by NewReaders.
type ReaderOptions struct {
	Markdown       markdown.Options
	HighlightStyle string
	Aliases        map[string]string
	Metadata       metadata.Settings
	Log            *slog.Logger
}

// Readers reads documents with the reader its table selects for each extension. It owns one
// markdown renderer, so it is not safe for concurrent use; give each goroutine its own.
type Readers struct {
	table ReaderTable
	gfm   *GFMReader
	toml  *TOMLReader
}

// NewReaders returns readers for the files of fs.
func NewReaders(fs http.FileSystem, table ReaderTable, opt ReaderOptions) (*Readers, error) {
	renderer, err := markdown.New(opt.Markdown)
	if err != nil {
		return nil, err
	}
	log := logger(opt.Log)
	normalizer := &metadata.Normalizer{Settings: opt.Metadata, Formatter: renderer, Log: log}
	gfm := &GFMReader{
		FS:          fs,
		Renderer:    renderer,
		Highlighter: markdown.NewHighlighter(opt.HighlightStyle, opt.Aliases),
		Normalizer:  normalizer,
		Log:         log,
	}
	return &Readers{
		table: table,
		gfm:   gfm,
		toml: &TOMLReader{
			FS:         fs,
			Renderer:   renderer,
			Normalizer: normalizer,
			Fallback:   gfm,
			Log:        log,
		},
	}, nil
}

func (rs *Readers) Read(path string) (*Document, error) {
	d, ok := rs.table.Dialect(path)
	if !ok {
		return nil, errors.WithMessage(ErrNoReader, path)
	}
	switch d {
	case TOMLDialect:
		return rs.toml.Read(path)
	default:
		return rs.gfm.Read(path)
	}
}

func logger(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}
