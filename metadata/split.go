package metadata

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

var (
	// ErrMissingHeader is returned by SplitTOML when the first line is not "+++".
	ErrMissingHeader = errors.New("could not find metadata header '+++'")

	// ErrMissingFooter is returned by SplitTOML when no line closes the metadata block.
	ErrMissingFooter = errors.New("could not find end of metadata block")
)

// openerPattern matches the first line of a line-dialect metadata block.
var openerPattern = regexp.MustCompile(`^(\+{3,}|-{3,})$`)

// SplitLines separates line-dialect front matter from the body of text.
//
// The first non-blank line must be a run of at least three "+" or "-" characters. The metadata
// block ends at the next line that is exactly "+++", "---" or "...". If there is no opener or no
// closer, ok is false, meta is empty and body is the whole text.
func SplitLines(text string) (meta, body string, ok bool) {
	lines := strings.SplitAfter(text, "\n")
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	if start == len(lines) || !openerPattern.MatchString(trimEOL(lines[start])) {
		return "", text, false
	}
	for end := start + 1; end < len(lines); end++ {
		switch trimEOL(lines[end]) {
		case "+++", "---", "...":
			return strings.Join(lines[start+1:end], ""), strings.Join(lines[end+1:], ""), true
		}
	}
	return "", text, false
}

// SplitTOML separates TOML front matter from the body of text. The first line must be "+++" and
// the block ends at the next "+++" line (trailing whitespace is ignored on both). It returns
// ErrMissingHeader or ErrMissingFooter when either delimiter is absent.
//
// A closing "+++" directly on the second line is an empty block, not a missing footer, so
// "+++\n+++\nbody" yields empty metadata and the body instead of falling back to line metadata.
func SplitTOML(text string) (meta, body string, err error) {
	if text == "" {
		return "", "", ErrMissingHeader
	}
	lines := strings.SplitAfter(text, "\n")
	if strings.TrimRightFunc(lines[0], unicode.IsSpace) != "+++" {
		return "", "", ErrMissingHeader
	}
	for end := 1; end < len(lines); end++ {
		if strings.TrimRightFunc(lines[end], unicode.IsSpace) == "+++" {
			return strings.Join(lines[1:end], ""), strings.Join(lines[end+1:], ""), nil
		}
	}
	return "", "", ErrMissingFooter
}

func trimEOL(line string) string {
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
}
