// Package renderer holds the cell, style and color primitives shared by the
// terminal backend and the UI components drawn on top of it.
//
// Cells carry whole grapheme clusters rather than runes so that emoji
// sequences such as "🐈‍⬛" occupy the right number of columns.
package renderer
