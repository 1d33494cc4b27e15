// Package guess models the attributes a release filename implies (title,
// year, source, codecs, edition, "other" flags, release group) and produces
// them with a release-title parser.
//
// The field vocabulary follows guessit so that guess documents produced by
// other tools can be loaded with Load and consumed unchanged.
package guess
