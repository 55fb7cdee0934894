// Package filters converts rendered HTML into plain text for excerpts, feeds and search
// snippets.
package filters

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	tagsPattern              = regexp.MustCompile(`(?i)</?([a-z][a-z0-9]*)\b[^>]*>|<!--[\s\S]*?-->`)
	edgeSpacesPattern        = regexp.MustCompile(`(?m)^ +| +$`)
	adjacentSpacesPattern    = regexp.MustCompile(` +`)
	abnormalLinebreakPattern = regexp.MustCompile(`\n\n\n+`)
	allWhitespacePattern     = regexp.MustCompile(`\s+`)
	collapseSpacesPattern    = regexp.MustCompile(`[ \t]+`)
	paragraphBreakPattern    = regexp.MustCompile(`\n{2,}`)
)

// StripTags removes comments and tags from s by textual excision, collapses whitespace and
// unescapes entities.
//
// Comments are removed first so that a tag inside a comment cannot end it early. Excision stops
// at the first unterminated comment or tag. A "<" inside an attribute value or text is treated as
// the start of a tag.
//
// If preserveLinebreaks is false, every run of whitespace becomes one space. Otherwise only runs
// of spaces and tabs are collapsed.
func StripTags(s string, preserveLinebreaks bool) string {
	s = excise(s, "<!--", "-->")
	s = excise(s, "<", ">")

	if preserveLinebreaks {
		s = collapseSpacesPattern.ReplaceAllString(s, " ")
	} else {
		s = strings.Join(strings.Fields(s), " ")
	}
	return html.UnescapeString(s)
}

// excise repeatedly removes the text from open to the next close after it.
func excise(s, open, close string) string {
	for {
		start := strings.Index(s, open)
		if start == -1 {
			return s
		}
		end := strings.Index(s[start:], close)
		if end == -1 {
			return s
		}
		s = s[:start] + s[start+end+len(close):]
	}
}

// Untagify removes well-formed tags and comments from s, trims it and unescapes entities.
//
// If preserveLinebreaks is false, all whitespace collapses to single spaces. Otherwise spaces at
// the start and end of lines are removed, runs of spaces are squashed, CRLF becomes LF and more
// than two consecutive line breaks become two.
func Untagify(s string, preserveLinebreaks bool) string {
	s = strings.TrimSpace(tagsPattern.ReplaceAllString(s, ""))

	if preserveLinebreaks {
		s = edgeSpacesPattern.ReplaceAllString(s, "")
		s = adjacentSpacesPattern.ReplaceAllString(s, " ")
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = abnormalLinebreakPattern.ReplaceAllString(s, "\n\n")
	} else {
		s = allWhitespacePattern.ReplaceAllString(s, " ")
	}
	return html.UnescapeString(s)
}

// NL2BR escapes s and converts it to HTML paragraphs: blank lines separate paragraphs and single
// line breaks become <br>.
func NL2BR(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	paragraphs := paragraphBreakPattern.Split(html.EscapeString(s), -1)
	for i, p := range paragraphs {
		paragraphs[i] = "<p>" + strings.ReplaceAll(p, "\n", "<br>\n") + "</p>"
	}
	return strings.Join(paragraphs, "\n\n")
}
