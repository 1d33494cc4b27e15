package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is a resolved language identity.
type Language struct {
	ISO1 string // ISO 639-1, empty when the language has no 2-letter code
	ISO2 string // ISO 639-2/B (bibliographic)
	Name string // English display name
}

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2/B primary (3-letter)
	alt3    string   // ISO 639-2/T alternate (e.g. "fra" vs "fre")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}},
	{"es", "spa", "", "Spanish", []string{"spanish", "castilian"}},
	{"fr", "fre", "fra", "French", []string{"french"}},
	{"de", "ger", "deu", "German", []string{"german"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"zh", "chi", "zho", "Chinese", []string{"chinese", "mandarin"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"ar", "ara", "", "Arabic", []string{"arabic"}},
	{"hi", "hin", "", "Hindi", []string{"hindi"}},
	{"nl", "dut", "nld", "Dutch", []string{"dutch", "flemish"}},
	{"pl", "pol", "", "Polish", []string{"polish"}},
	{"sv", "swe", "", "Swedish", []string{"swedish"}},
	{"da", "dan", "", "Danish", []string{"danish"}},
	{"no", "nor", "", "Norwegian", []string{"norwegian"}},
	{"fi", "fin", "", "Finnish", []string{"finnish"}},
	{"cs", "cze", "ces", "Czech", []string{"czech"}},
	{"el", "gre", "ell", "Greek", []string{"greek"}},
	{"hu", "hun", "", "Hungarian", []string{"hungarian"}},
	{"tr", "tur", "", "Turkish", []string{"turkish"}},
	{"he", "heb", "", "Hebrew", []string{"hebrew"}},
	{"th", "tha", "", "Thai", []string{"thai"}},
	{"ro", "rum", "ron", "Romanian", []string{"romanian"}},
	{"sk", "slo", "slk", "Slovak", []string{"slovak"}},
	{"is", "ice", "isl", "Icelandic", []string{"icelandic"}},
	{"fa", "per", "fas", "Persian", []string{"persian", "farsi"}},
}

// ISO 639-2/T to ISO 639-2/B for languages outside the table above.
var terminologicToBibliographic = map[string]string{
	"sqi": "alb",
	"hye": "arm",
	"eus": "baq",
	"mya": "bur",
	"kat": "geo",
	"mkd": "mac",
	"mri": "mao",
	"msa": "may",
	"bod": "tib",
	"cym": "wel",
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// Resolve maps a language code, tag or English name to a Language. Region
// subtags ("en-US") are ignored. "und", "zxx" and unknown input report false.
func Resolve(value string) (Language, bool) {
	value = strings.TrimSpace(strings.ReplaceAll(value, "\u0000", ""))
	if value == "" {
		return Language{}, false
	}
	if e := lookup(value); e != nil {
		return Language{ISO1: strings.ToUpper(e.code2), ISO2: strings.ToUpper(e.code3), Name: e.display}, true
	}
	code := value
	if idx := strings.IndexAny(code, "-_"); idx > 0 {
		code = code[:idx]
		if e := lookup(code); e != nil {
			return Language{ISO1: strings.ToUpper(e.code2), ISO2: strings.ToUpper(e.code3), Name: e.display}, true
		}
	}
	if len(code) != 2 && len(code) != 3 {
		return Language{}, false
	}
	base, err := xlanguage.ParseBase(strings.ToLower(code))
	if err != nil {
		return Language{}, false
	}
	short := base.String()
	if short == "und" || short == "zxx" {
		return Language{}, false
	}
	iso3 := base.ISO3()
	if b, ok := terminologicToBibliographic[iso3]; ok {
		iso3 = b
	}
	out := Language{ISO2: strings.ToUpper(iso3)}
	if len(short) == 2 {
		out.ISO1 = strings.ToUpper(short)
	}
	// Reserved and private-use codes parse but carry no English name.
	out.Name = display.English.Languages().Name(base)
	if out.Name == "" {
		return Language{}, false
	}
	return out, true
}

// Code returns the requested ISO 639 part (1 or 2) for value, uppercased, or
// an empty string when value cannot be resolved.
func Code(value string, part int) string {
	lang, ok := Resolve(value)
	if !ok {
		return ""
	}
	if part == 1 {
		return lang.ISO1
	}
	return lang.ISO2
}

// FullName returns the English display name for value, or an empty string.
func FullName(value string) string {
	lang, ok := Resolve(value)
	if !ok {
		return ""
	}
	return lang.Name
}

// FromCandidates resolves the first usable language from a primary code and
// the alternate descriptions a track reports. Each alternate is tried whole
// and then by its first whitespace-separated word.
func FromCandidates(primary string, alternates []string) (Language, bool) {
	if strings.TrimSpace(primary) == "" {
		return Language{}, false
	}
	if lang, ok := Resolve(primary); ok {
		return lang, true
	}
	for _, alt := range alternates {
		if lang, ok := Resolve(alt); ok {
			return lang, true
		}
		if fields := strings.Fields(alt); len(fields) > 0 {
			if lang, ok := Resolve(fields[0]); ok {
				return lang, true
			}
		}
	}
	return Language{}, false
}

// ExtractFromTags extracts and normalizes the language from stream metadata tags.
// Checks common tag keys: language, LANGUAGE, Language, language_ietf, lang, LANG.
func ExtractFromTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	keys := []string{"language", "LANGUAGE", "Language", "language_ietf", "lang", "LANG"}
	for _, key := range keys {
		if value, ok := tags[key]; ok {
			value = strings.TrimSpace(strings.ReplaceAll(value, "\u0000", ""))
			if value != "" {
				return strings.ToLower(value)
			}
		}
	}
	return ""
}
