package metadata

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

// ParseDate converts a metadata value to a time. TOML dates are used directly (local ones are
// placed in loc). Any other value is formatted as a string, trimmed, has underscores replaced by
// spaces and is parsed in loc.
func ParseDate(value interface{}, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if t, ok := value.(time.Time); ok {
		if isLocalTOMLTime(t) {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), nil
		}
		return t, nil
	}

	s := strings.ReplaceAll(strings.TrimSpace(fmt.Sprint(value)), "_", " ")
	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, errors.WithMessagef(err, "invalid date %q", s)
	}
	return t, nil
}
