package derive

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"nfoforge/internal/guess"
	"nfoforge/internal/language"
)

// Normalization maps the patterns found in release names to one canonical
// label.
type Normalization struct {
	Label    string
	Patterns []*regexp.Regexp
}

func normalization(label string, patterns ...string) Normalization {
	n := Normalization{Label: label}
	for _, p := range patterns {
		n.Patterns = append(n.Patterns, regexp.MustCompile(`(?i)`+p))
	}
	return n
}

// Match reports whether value matches any pattern.
func (n Normalization) Match(value string) bool {
	for _, re := range n.Patterns {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// EditionTable is the ordered set of recognized editions.
var EditionTable = []Normalization{
	normalization("Alternative Cut", `alternative(?:[\s.\-_]*cut)?`),
	normalization("Collectors Edition", `collector'?s?([\s.\-_]*edition)?`),
	normalization("Criterion Edition", `criterion(?:[\s.\-_]*edition)?`),
	normalization("Deluxe Edition", `deluxe(?:[\s.\-_]*edition)?`),
	normalization("Directors Cut", `(?:director's|directors)[\s.\-_]*cut`),
	normalization("Extended Cut", `extended(?:[\s.\-_]*cut)?`),
	normalization("Limited Edition", `limited(?:[\s.\-_]*edition)?`),
	normalization("Remastered", `remastered`),
	normalization("Special Edition", `special(?:[\s.\-_]*edition)?`),
	normalization("Theatrical Cut", `theatrical(?:[\s.\-_]*cut)?`),
	normalization("Uncensored", `uncensored`),
	normalization("Ultimate", `ultimate(?:[\s.\-_]*edition)?`),
	normalization("Unrated", `unrated`),
	normalization("Uncut", `uncut`),
}

// FrameSizeTable lists the frame-size markers, in output order.
var FrameSizeTable = []Normalization{
	normalization("IMAX", `imax`),
	normalization("Open Matte", `open[\s.\-_]*matte`),
}

// edition collects editions from the filename and the guess, canonical
// labels first in table order, then unrecognized guess values as given.
func (s *State) edition() string {
	stem := strings.ToLower(s.ctx.primaryStem())
	found := make(map[string]bool)
	for _, n := range EditionTable {
		if n.Match(stem) {
			found[n.Label] = true
		}
	}
	var extra []string
	for _, item := range s.ctx.guess().Edition {
		lowered := strings.ToLower(item)
		if strings.Contains(lowered, "imax") {
			continue
		}
		matched := false
		for _, n := range EditionTable {
			if n.Match(lowered) {
				found[n.Label] = true
				matched = true
				break
			}
		}
		if !matched && !containsString(extra, item) {
			extra = append(extra, item)
		}
	}
	var out []string
	for _, n := range EditionTable {
		if found[n.Label] {
			out = append(out, n.Label)
		}
	}
	for _, item := range extra {
		if !containsString(out, item) {
			out = append(out, item)
		}
	}
	return strings.Join(out, " ")
}

// frameSize reports IMAX and Open Matte from the guesses of both files and
// from the filename.
func (s *State) frameSize() string {
	var values []string
	values = append(values, s.ctx.primaryStem())
	for _, g := range []*guess.Result{s.ctx.Guess, s.ctx.SourceGuess} {
		if g == nil {
			continue
		}
		values = append(values, g.Edition...)
		values = append(values, g.Other...)
	}
	var out []string
	for _, n := range FrameSizeTable {
		for _, v := range values {
			if n.Match(v) {
				out = append(out, n.Label)
				break
			}
		}
	}
	return strings.Join(out, " ")
}

func (s *State) stemHas(word string) bool {
	return strings.Contains(strings.ToLower(s.ctx.primaryStem()), word)
}

func (s *State) hybrid() string {
	if s.stemHas("hybrid") {
		return "HYBRID"
	}
	return ""
}

func (s *State) remux() string {
	if s.stemHas("remux") {
		return "REMUX"
	}
	return ""
}

func (s *State) localization() string {
	switch {
	case s.stemHas("subbed"):
		return "Subbed"
	case s.stemHas("dubbed"):
		return "Dubbed"
	}
	return ""
}

var reReleasePattern = regexp.MustCompile(`(?i)\b(PROPER\d*|REPACK\d*)\b`)

func (s *State) reRelease() string {
	matches := reReleasePattern.FindAllString(s.ctx.primaryName(), -1)
	for i, m := range matches {
		matches[i] = strings.ToUpper(m)
	}
	return strings.Join(matches, " ")
}

var (
	repackPattern = regexp.MustCompile(`(?i)(repack\d*)`)
	properPattern = regexp.MustCompile(`(?i)(proper\d*)`)
)

// reReleaseFlag returns label when the filename mentions it or a numbered
// value was supplied.
func (s *State) reReleaseFlag(word, label, supplied string) string {
	if s.stemHas(word) || strings.TrimSpace(supplied) != "" {
		return label
	}
	return ""
}

// reReleaseNumbered extracts "REPACK2"-style markers; a supplied value that
// matches wins over the filename.
func (s *State) reReleaseNumbered(pattern *regexp.Regexp, supplied string) string {
	out := pattern.FindString(s.ctx.primaryStem())
	if m := pattern.FindString(supplied); m != "" {
		out = m
	}
	return strings.ToUpper(out)
}

func (s *State) releaseGroup() string {
	return strings.TrimLeft(s.ctx.guess().ReleaseGroup, "-")
}

func (s *State) releasersName() string {
	if name := strings.TrimSpace(s.ctx.ReleasersName); name != "" {
		return name
	}
	return "Anonymous"
}

func (s *State) releaseYear() string {
	if y := s.ctx.search().Year; y > 0 {
		return strconv.Itoa(y)
	}
	if y := s.ctx.guess().Year; y > 0 {
		return strconv.Itoa(y)
	}
	return ""
}

func (s *State) releaseDate() string {
	if !s.ctx.Search.IsMovie() {
		return ""
	}
	return s.ctx.Search.ReleaseDate
}

// originalFilename is the pack directory name for series input, else the
// primary file's stem.
func (s *State) originalFilename() string {
	if s.ctx.Search.IsSeries() && s.ctx.InputDir != "" {
		return filepath.Base(filepath.Clean(s.ctx.InputDir))
	}
	return s.ctx.primaryStem()
}

func (s *State) originalLanguage(part int) string {
	code := s.ctx.search().OriginalLanguage
	if code == "" {
		return ""
	}
	lang, ok := language.Resolve(code)
	if !ok {
		return ""
	}
	return languagePart(lang, part)
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
