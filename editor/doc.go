// Package editor owns an editing session over a buffer and exposes it as a
// Bubble Tea component.
//
// A Session tracks the run state, resolves key events into characters, and
// keeps a wrapped frame of the text that is only recomputed after the buffer
// changes. Model drives a Session from tea messages and renders its frame
// into a viewport with an optional line number gutter and a hint row.
package editor
