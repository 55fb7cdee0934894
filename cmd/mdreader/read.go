package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/mahmoudimus/mdreader"
	"github.com/mahmoudimus/mdreader/filters"
)

func init() {
	flagSet := flag.NewFlagSet("read", flag.ContinueOnError)
	var (
		format             = flagSet.String("format", "json", "output `format`: json, html, text, plain or paragraphs")
		preserveLinebreaks = flagSet.Bool("preserve-linebreaks", false, "keep line breaks when stripping tags (text and plain formats)")
	)

	handler := func(args []string) error {
		if len(args) == 0 {
			return &usageError{errors.New("no files given")}
		}
		if !validFormat(*format) {
			return &usageError{errors.Errorf("unknown format %q", *format)}
		}
		conf, err := configFromFlags()
		if err != nil {
			return err
		}

		for _, arg := range args {
			root, path, err := splitContentPath(conf.Content, arg)
			if err != nil {
				return err
			}
			readers, err := conf.NewReaders(http.Dir(root), nil)
			if err != nil {
				return err
			}
			doc, err := readers.Read(path)
			if err != nil {
				return err
			}
			out, err := formatDocument(doc, *format, *preserveLinebreaks)
			if err != nil {
				return err
			}
			if _, err := os.Stdout.Write(out); err != nil {
				return err
			}
		}
		return nil
	}

	commands = append(commands, &command{
		FlagSet:          flagSet,
		ShortDescription: "read documents and print them",
		LongDescription:  "The read subcommand reads each given file with the reader configured for its extension and prints the rendered document.",
		aliases:          []string{"r"},
		handler:          handler,
	})
}

var formats = []string{"json", "html", "text", "plain", "paragraphs"}

func validFormat(format string) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}

// splitContentPath returns the file system root and the slash-separated path within it of the
// file named by arg. Files under the content directory keep their content-relative path.
func splitContentPath(contentDir, arg string) (root, path string, err error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", "", err
	}
	if contentDir != "" {
		contentAbs, err := filepath.Abs(contentDir)
		if err != nil {
			return "", "", err
		}
		if rel, err := filepath.Rel(contentAbs, abs); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return contentAbs, filepath.ToSlash(rel), nil
		}
	}
	return filepath.Dir(abs), filepath.Base(abs), nil
}

type documentJSON struct {
	Path string      `json:"path"`
	HTML string      `json:"html"`
	Meta interface{} `json:"meta"`
}

func formatDocument(doc *mdreader.Document, format string, preserveLinebreaks bool) ([]byte, error) {
	html := string(doc.HTML)
	var out string
	switch format {
	case "json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(documentJSON{Path: doc.Path, HTML: html, Meta: doc.Meta}); err != nil {
			return nil, errors.WithMessagef(err, "encoding %s", doc.Path)
		}
		out = buf.String()
	case "html":
		out = html
	case "text":
		out = filters.StripTags(html, preserveLinebreaks)
	case "plain":
		out = filters.Untagify(html, preserveLinebreaks)
	case "paragraphs":
		out = filters.NL2BR(filters.StripTags(html, true))
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return []byte(out), nil
}
