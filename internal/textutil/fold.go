package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters that do not decompose into base + combining mark under NFD.
var foldReplacer = strings.NewReplacer(
	"ß", "ss",
	"Æ", "AE", "æ", "ae",
	"Œ", "OE", "œ", "oe",
	"Ø", "O", "ø", "o",
	"Ð", "D", "ð", "d",
	"Þ", "Th", "þ", "th",
	"Ł", "L", "ł", "l",
	"Đ", "D", "đ", "d",
	"ı", "i",
	"‘", "'", "’", "'",
	"“", "\"", "”", "\"",
	"–", "-", "—", "-",
	"…", "...",
)

// FoldDiacritics strips combining marks and maps common non-decomposable
// letters to ASCII so "Amélie" becomes "Amelie" and "Straße" becomes "Strasse".
func FoldDiacritics(value string) string {
	if value == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, value)
	if err != nil {
		folded = value
	}
	return foldReplacer.Replace(folded)
}
