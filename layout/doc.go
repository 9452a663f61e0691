// Package layout word-wraps buffer text into visual lines and translates
// between buffer offsets and (line, column) positions on those lines.
//
// Columns count runes and assume every rune fills one cell of a fixed-width
// grid. Proportional fonts and wide glyphs only approximate that grid.
//
// Both directions of the translation read the same line table produced by
// the wrapper, so a cursor offset is always addressed on the line the
// renderer draws it on.
package layout
