// Package textutil provides the small string transforms shared by token
// derivations and output assembly.
//
// The primary use cases are:
//   - Folding diacritics to ASCII before titles reach a filename
//   - Case transforms backing the built-in template filters
//   - Sanitizing filenames and collapsing whitespace runs
package textutil
