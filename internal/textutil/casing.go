package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
func TitleCase(value string) string {
	return cases.Title(language.Und).String(value)
}

// Capitalize upper-cases the first character and lower-cases the remainder.
func Capitalize(value string) string {
	if value == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(value)
	return string(unicode.ToUpper(r)) + strings.ToLower(value[size:])
}

// SwapCase inverts the case of every letter.
func SwapCase(value string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		default:
			return r
		}
	}, value)
}

// ZeroFill left-pads value with zeros to width runes. A leading sign stays in
// front of the padding.
func ZeroFill(value string, width int) string {
	n := utf8.RuneCountInString(value)
	if width <= n {
		return value
	}
	pad := strings.Repeat("0", width-n)
	if value != "" && (value[0] == '-' || value[0] == '+') {
		return value[:1] + pad + value[1:]
	}
	return pad + value
}
