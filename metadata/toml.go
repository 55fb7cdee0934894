package metadata

import (
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// ParseTOML parses a TOML metadata block. Top-level keys are lowercased; nested tables and
// arrays are kept as map[string]interface{} and []interface{}. When keys differ only in case,
// the one defined last in the document wins.
func ParseTOML(text string) (Raw, error) {
	var doc map[string]interface{}
	md, err := toml.Decode(text, &doc)
	if err != nil {
		return nil, errors.Wrap(err, "parsing TOML metadata")
	}
	raw := make(Raw, len(doc))
	for _, key := range md.Keys() {
		if len(key) != 1 {
			continue
		}
		raw[strings.ToLower(key[0])] = doc[key[0]]
	}
	return raw, nil
}

// isLocalTOMLTime reports whether t was decoded from a TOML local date, time or datetime, which
// carry no offset of their own.
func isLocalTOMLTime(t time.Time) bool {
	switch t.Location().String() {
	case "datetime-local", "date-local", "time-local":
		return true
	}
	return false
}
