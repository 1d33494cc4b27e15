package textutil

import "regexp"

var (
	titleUnsafePattern = regexp.MustCompile(`[:\\/<>\?*"|]`)
	multiSpacePattern  = regexp.MustCompile(`\s{2,}`)
)

// StandardTitle folds diacritics, turns characters that are unsafe in
// filenames into spaces and collapses repeated whitespace. Empty input stays
// empty.
func StandardTitle(title string) string {
	if title == "" {
		return ""
	}
	title = FoldDiacritics(title)
	title = titleUnsafePattern.ReplaceAllString(title, " ")
	return CollapseSpaces(title)
}

// CollapseSpaces replaces every run of two or more whitespace characters with
// a single space.
func CollapseSpaces(value string) string {
	return multiSpacePattern.ReplaceAllString(value, " ")
}
