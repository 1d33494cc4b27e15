// Package logging assembles the slog loggers used by nfoforge.
//
// It owns the console and JSON handlers, maps configuration onto levels and
// outputs, and defines the structured field keys shared by the render engine
// and the CLI. Renders carry a render ID through their context so every line
// a render emits can be correlated. NewNop gives tests and optional wiring a
// logger that discards everything.
package logging
