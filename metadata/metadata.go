// Package metadata splits the front matter from a source document, parses it in one of two
// dialects (line-based "key: value" pairs or TOML) and normalizes the result into the values a
// publishing system consumes (dates, tags, authors, categories and rendered formatted fields).
package metadata

import (
	"time"
)

// Raw is the metadata of a document as it was parsed, before normalization. Keys are lowercase
// field names. Values are scalars or []interface{} lists in document order.
type Raw map[string]interface{}

// Metadata is normalized document metadata. Values are strings, time.Time, Tag, []Tag, Author,
// []Author, Category or raw values passed through unchanged. It never holds both "author" and
// "authors".
type Metadata map[string]interface{}

// Settings control how raw metadata is normalized.
type Settings struct {
	// FormattedFields are the fields whose values are Markdown and are stored rendered as HTML.
	FormattedFields []string

	// DuplicatesAllowed reports whether a field may be defined more than once. Fields missing
	// from the table allow duplicates. "tags" and "authors" are always lists and ignore it.
	DuplicatesAllowed map[string]bool

	// Location is the time zone used for dates without an explicit offset. If nil, time.Local is
	// used.
	Location *time.Location
}

// DefaultDuplicatesAllowed returns the fields that may be defined only once per document.
func DefaultDuplicatesAllowed() map[string]bool {
	return map[string]bool{
		"tags":     false,
		"date":     false,
		"modified": false,
		"status":   false,
		"category": false,
		"author":   false,
		"save_as":  false,
		"url":      false,
		"authors":  false,
		"slug":     false,
	}
}

// DefaultSettings returns the settings used when none are configured.
func DefaultSettings() Settings {
	return Settings{
		FormattedFields:   []string{"summary"},
		DuplicatesAllowed: DefaultDuplicatesAllowed(),
		Location:          time.Local,
	}
}

// IsFormatted reports whether name is a formatted field.
func (s Settings) IsFormatted(name string) bool {
	for _, f := range s.FormattedFields {
		if f == name {
			return true
		}
	}
	return false
}

// DuplicateAllowed reports whether the field name may hold more than one value.
func (s Settings) DuplicateAllowed(name string) bool {
	if name == "tags" || name == "authors" {
		return true
	}
	allowed, ok := s.DuplicatesAllowed[name]
	return !ok || allowed
}

func (s Settings) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}
