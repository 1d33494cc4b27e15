package render

import (
	"nfoforge/internal/derive"
	"nfoforge/internal/tokens"
)

// Source names the layer a token value came from.
type Source string

const (
	SourceUser     Source = "user"
	SourceOverride Source = "override"
	SourceDerived  Source = "derived"
)

// Resolved is one reference with its value.
type Resolved struct {
	Ref    tokens.Reference
	Source Source
	// Value is the core value after filters and before wrapping.
	Value tokens.Value
	// Text is what replaces Ref.Raw: the flattened value with the optional
	// literals around it, or "" when the value is empty.
	Text string
}

// filenameAttributes are derived only when the context asks for filename
// parsing.
var filenameAttributes = map[string]bool{
	tokens.Remux:     true,
	tokens.Hybrid:    true,
	tokens.ReRelease: true,
}

// resolve applies the precedence user value, override, derivation. Only
// derived text values are filtered, and only when filter is set.
func resolve(state *derive.State, ref tokens.Reference, filter bool, registry tokens.Registry) Resolved {
	rc := state.Context()
	if tokens.IsUserName(ref.Name) {
		return wrap(ref, SourceUser, tokens.Text(rc.User[ref.Name]))
	}
	if v, ok := rc.Overrides[ref.Name]; ok {
		// A source override names a quality; the token shows its canonical
		// form ("webdl" renders as WEBDL).
		if ref.Name == tokens.Source {
			if q, ok := derive.ParseQuality(v); ok {
				v = q.String()
			}
		}
		return wrap(ref, SourceOverride, tokens.Text(v))
	}

	var value tokens.Value
	if rc.ParseFilenameAttributes || !filenameAttributes[ref.Name] {
		// Scan only accepts catalog names here, so Resolve cannot fail.
		value, _ = state.Resolve(ref.Name)
	}
	if filter && len(ref.Filters) > 0 && value.IsText() && !value.IsEmpty() {
		value = tokens.Text(tokens.ApplyFilters(value.Text, ref.Filters, registry))
	}
	return wrap(ref, SourceDerived, value)
}

func wrap(ref tokens.Reference, source Source, value tokens.Value) Resolved {
	return Resolved{
		Ref:    ref,
		Source: source,
		Value:  value,
		Text:   ref.Wrap(value.String()),
	}
}
