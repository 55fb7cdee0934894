package metadata

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Formatter renders the Markdown value of a formatted field to HTML. Reset is called before
// each Render.
type Formatter interface {
	Render(source []byte) ([]byte, error)
	Reset()
}

// Normalizer turns raw metadata into normalized metadata.
type Normalizer struct {
	Settings Settings

	// Formatter renders formatted fields. If nil, formatted fields are stored as joined text.
	Formatter Formatter

	// Log receives warnings. If nil, slog.Default() is used.
	Log *slog.Logger
}

func (n *Normalizer) log() *slog.Logger {
	if n.Log != nil {
		return n.Log
	}
	return slog.Default()
}

// Normalize applies the field rules to raw. sourcePath identifies the document in warnings and
// errors. Only an invalid date or a failed render of a formatted field makes it fail.
func (n *Normalizer) Normalize(raw Raw, sourcePath string) (Metadata, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	out := Metadata{}
	for _, rawName := range names {
		value := raw[rawName]
		if value == nil {
			continue
		}
		name := strings.ToLower(rawName)

		list, isList := value.([]interface{})
		if isList {
			list = dropNil(list)
			value = list
		}

		switch {
		case n.Settings.IsFormatted(name):
			html, err := n.format(value)
			if err != nil {
				return nil, errors.WithMessagef(err, "%s: rendering metadata field %q", sourcePath, name)
			}
			out[name] = html
			continue
		case isList && len(list) > 1 && name == "author":
			name = "authors"
		case isList && !n.Settings.DuplicateAllowed(name):
			if len(list) == 0 {
				continue
			}
			if len(list) > 1 {
				n.log().Warn("Duplicate definition, using the first one",
					"field", name, "path", sourcePath, "values", list, "kept", list[0])
			}
			value = list[0]
		}

		if rule, ok := rules[name]; ok {
			v, err := rule(value, n.Settings)
			if err != nil {
				return nil, errors.WithMessagef(err, "%s: metadata field %q", sourcePath, name)
			}
			if v == omit {
				continue
			}
			value = v
		}
		n.store(out, name, value, sourcePath)
	}
	n.foldAuthor(out, sourcePath)
	return out, nil
}

func (n *Normalizer) format(value interface{}) (string, error) {
	var text string
	if list, ok := value.([]interface{}); ok {
		parts := make([]string, len(list))
		for i, v := range list {
			parts[i] = fmt.Sprint(v)
		}
		text = strings.Join(parts, "\n")
	} else {
		text = fmt.Sprint(value)
	}
	if n.Formatter == nil {
		return text, nil
	}
	n.Formatter.Reset()
	html, err := n.Formatter.Render([]byte(text))
	if err != nil {
		return "", err
	}
	return string(html), nil
}

// store sets out[name], merging author lists when "authors" was already produced by a
// pluralized "author" field.
func (n *Normalizer) store(out Metadata, name string, value interface{}, sourcePath string) {
	prev, ok := out[name].([]Author)
	next, isAuthors := value.([]Author)
	if ok && isAuthors {
		n.log().Warn("Both author and authors are defined, merging them", "path", sourcePath)
		out[name] = append(prev, next...)
		return
	}
	out[name] = value
}

// foldAuthor keeps the invariant that author and authors are never both present.
func (n *Normalizer) foldAuthor(out Metadata, sourcePath string) {
	author, ok := out["author"]
	if !ok {
		return
	}
	authors, ok := out["authors"].([]Author)
	if !ok {
		return
	}
	n.log().Warn("Both author and authors are defined, merging them", "path", sourcePath)
	if a, ok := author.(Author); ok {
		authors = append([]Author{a}, authors...)
	}
	out["authors"] = authors
	delete(out, "author")
}

func dropNil(list []interface{}) []interface{} {
	kept := list[:0:0]
	for _, v := range list {
		if v != nil {
			kept = append(kept, v)
		}
	}
	return kept
}
