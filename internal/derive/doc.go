// Package derive computes the value of every catalog token from a render
// Context.
//
// Each token has exactly one resolver in a closed table that is checked
// against the catalog at init. Resolvers read from layered sources (the
// embedded metadata of the primary and source files, filename guesses and
// the title-database search result) and degrade to the empty value whenever
// data is missing; none of them performs I/O.
//
// A State is created per render. It owns the episode lookup cache, so one
// State must never be shared between renders.
package derive
