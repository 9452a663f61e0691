// Package buffer implements the linear edit buffer behind the code editor.
//
// Text is a flat sequence of runes with a single cursor offset in
// [0, Len()]. Offsets count runes, and '\n' occupies one offset like any
// other rune.
package buffer
