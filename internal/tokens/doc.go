// Package tokens defines the token vocabulary and the template grammar.
//
// The catalog lists every named token with its category and a short
// description. Scan extracts token references of the form
//
//	{:opt=PRE:name|filter|filter(args):opt=POST:}
//
// from a template, and ApplyFilters runs a reference's filter chain over a
// resolved value. Nothing here knows how a token is resolved; that lives in
// the derive and render packages.
package tokens
