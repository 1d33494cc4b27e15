// Package language provides unified language code normalization and mapping.
//
// Embedded track metadata, filename guesses and search results all report
// languages differently (ISO 639-1, terminologic or bibliographic ISO 639-2,
// English names, "English (US)" style descriptions). Everything funnels
// through Resolve so token derivations see one shape: an ISO 639-1 code, an
// ISO 639-2/B code and an English display name.
package language
