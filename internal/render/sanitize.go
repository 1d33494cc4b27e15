package render

import (
	"regexp"

	"nfoforge/internal/derive"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	dotRun        = regexp.MustCompile(`\.{2,}`)
	colonDot      = regexp.MustCompile(`:\.`)
	dashDot       = regexp.MustCompile(`\.-\.|\.-|-\.`)
)

// SanitizeFilename turns flattened text into a dotted filename body:
// whitespace becomes ".", dot runs collapse, ":." becomes "." and dots next
// to a dash are absorbed into it. The result is a fixed point, so running it
// again changes nothing.
func SanitizeFilename(s string) string {
	for {
		next := sanitizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func sanitizeOnce(s string) string {
	s = whitespaceRun.ReplaceAllString(s, ".")
	s = dotRun.ReplaceAllString(s, ".")
	s = colonDot.ReplaceAllString(s, ".")
	return dashDot.ReplaceAllString(s, "-")
}

// titleLine is the non-filename flatten output: one line with single spaces
// and no dot runs, then the override rules in order.
func titleLine(s string, rules []derive.TitleRule) string {
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = dotRun.ReplaceAllString(s, ".")
	if len(rules) == 0 {
		return s
	}
	return derive.CleanTitle(s, rules)
}
