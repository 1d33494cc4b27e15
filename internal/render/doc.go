// Package render turns a template and a derive.Context into output text.
//
// Flatten mode scans the template for token references, resolves each one
// (user value, then override, then derivation), substitutes the results in
// leftmost-occurrence order and applies the colon, unfilled-token and
// filename policies. Template mode resolves the whole catalog into a value
// map and hands it, with the untouched template, to a Renderer.
//
// An Engine holds only read-only options and may be shared between
// goroutines; every call builds its own derive.State.
package render
