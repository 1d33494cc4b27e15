// Package main hosts the nfoforge CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration, gathers render inputs
// from JSON metadata files, filename guesses and ffprobe, and hands them to
// the render engine. It also lists the token catalog and scaffolds
// configuration files.
//
// Keep this package lean: file and process I/O live here and in the loaders,
// while token derivation and output assembly stay in the internal packages.
package main
