package tokens

import (
	"regexp"
	"strings"
)

var referencePattern = regexp.MustCompile(`{(?::opt=([^:}]*):)?([^}]+?)(?::opt=([^:}]*):)?}`)

// FilterCall is one |filter element of a reference.
type FilterCall struct {
	// Raw is the trimmed filter text, e.g. "zfill(2)".
	Raw string
	// Name is the part before any parenthesis.
	Name string
	// Args is the text between the parentheses; HasArgs is false when the
	// filter was written without them.
	Args    string
	HasArgs bool
}

// ParseFilter splits filter text into name and argument text.
func ParseFilter(raw string) FilterCall {
	raw = strings.TrimSpace(raw)
	call := FilterCall{Raw: raw, Name: raw}
	if open := strings.Index(raw, "("); open >= 0 && strings.HasSuffix(raw, ")") {
		call.Name = raw[:open]
		call.Args = raw[open+1 : len(raw)-1]
		call.HasArgs = true
	}
	return call
}

// Reference is one token usage found in a template.
type Reference struct {
	Pre     string
	Name    string
	Post    string
	Raw     string // the full bracket text, e.g. "{:opt=(:release_year:opt=):}"
	Filters []FilterCall
}

// Bracketed returns the bare token form, e.g. "{release_year}".
func (r Reference) Bracketed() string {
	return "{" + r.Name + "}"
}

// Wrap applies the optional literals around a non-empty core value. Empty
// values are never wrapped.
func (r Reference) Wrap(core string) string {
	if core == "" {
		return ""
	}
	return r.Pre + core + r.Post
}

// Scan extracts token references from template. A reference is kept only
// when its name is a catalog token or a usr_/prompt_ name present in user.
// References are deduplicated by raw text and returned in leftmost
// occurrence order.
func Scan(template string, user map[string]string) []Reference {
	matches := referencePattern.FindAllStringSubmatch(template, -1)
	seen := make(map[string]struct{}, len(matches))
	refs := make([]Reference, 0, len(matches))
	for _, m := range matches {
		raw := m[0]
		if _, dup := seen[raw]; dup {
			continue
		}
		parts := strings.Split(m[2], "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		name := parts[0]
		if !accepted(name, user) {
			continue
		}
		seen[raw] = struct{}{}
		ref := Reference{Pre: m[1], Name: name, Post: m[3], Raw: raw}
		for _, f := range parts[1:] {
			if f == "" {
				continue
			}
			ref.Filters = append(ref.Filters, ParseFilter(f))
		}
		refs = append(refs, ref)
	}
	return refs
}

func accepted(name string, user map[string]string) bool {
	if Known(name) {
		return true
	}
	if IsUserName(name) {
		_, ok := user[name]
		return ok
	}
	return false
}

// CatalogReferences returns a bare reference for every catalog token, the
// set template mode resolves unconditionally.
func CatalogReferences() []Reference {
	refs := make([]Reference, 0, len(catalog))
	for _, t := range catalog {
		refs = append(refs, Reference{Name: t.Name, Raw: t.Bracketed()})
	}
	return refs
}
