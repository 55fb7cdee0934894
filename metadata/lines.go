package metadata

import (
	"log/slog"
	"strings"
)

// ParseLines parses line-dialect metadata ("name: value" per line). Blank lines are skipped and
// lines without a colon are skipped with a warning. Names are lowercased. A name defined more
// than once maps to a []interface{} of its values in document order.
func ParseLines(text string, log *slog.Logger) Raw {
	if log == nil {
		log = slog.Default()
	}
	raw := Raw{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, value, found := strings.Cut(line, ":")
		if !found {
			log.Warn("Malformed metadata line, missing colon (':'). Skipping.", "line", line)
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)

		switch prev := raw[name].(type) {
		case nil:
			raw[name] = value
		case []interface{}:
			raw[name] = append(prev, value)
		default:
			raw[name] = []interface{}{prev, value}
		}
	}
	return raw
}
