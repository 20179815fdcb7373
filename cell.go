package rxtui

import "github.com/mattn/go-runewidth"

// Attr represents text attributes as a bitfield for efficient comparison.
type Attr uint8

const (
	// AttrNone represents no text attributes.
	AttrNone Attr = 0
	// AttrBold makes text bold/bright.
	AttrBold Attr = 1 << iota
	// AttrItalic makes text italic.
	AttrItalic
	// AttrUnderline underlines the text.
	AttrUnderline
	// AttrStrikethrough draws a line through the text.
	AttrStrikethrough
)

// Has returns true if the attribute set includes all of the given bits.
func (a Attr) Has(bits Attr) bool {
	return a&bits == bits
}

// AttrsFromTextStyle extracts the attribute bits of a text style.
func AttrsFromTextStyle(ts *TextStyle) Attr {
	if ts == nil {
		return AttrNone
	}
	var a Attr
	if ts.Bold != nil && *ts.Bold {
		a |= AttrBold
	}
	if ts.Italic != nil && *ts.Italic {
		a |= AttrItalic
	}
	if ts.Underline != nil && *ts.Underline {
		a |= AttrUnderline
	}
	if ts.Strikethrough != nil && *ts.Strikethrough {
		a |= AttrStrikethrough
	}
	return a
}

// Cell is a single terminal grid position: a glyph with optional foreground
// and background colors and attribute flags. The default color values mean
// "terminal default". Cells are comparable with ==.
type Cell struct {
	Rune  rune
	Fg    Color
	Bg    Color
	Attrs Attr
}

// NewCell creates a Cell with the given rune and default styling.
func NewCell(r rune) Cell {
	return Cell{Rune: r}
}

// EmptyCell returns a space cell with default styling.
func EmptyCell() Cell {
	return Cell{Rune: ' '}
}

// WithFg returns a copy of the cell with the foreground color set.
func (c Cell) WithFg(color Color) Cell {
	c.Fg = color
	return c
}

// WithBg returns a copy of the cell with the background color set.
func (c Cell) WithBg(color Color) Cell {
	c.Bg = color
	return c
}

// WithAttrs returns a copy of the cell with the attribute set.
func (c Cell) WithAttrs(a Attr) Cell {
	c.Attrs = a
	return c
}

// RuneDisplayWidth returns the display width of a rune in terminal cells
// (1 for most characters, 2 for wide CJK and emoji).
func RuneDisplayWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 1 {
		return 1
	}
	return w
}

// DisplayWidth returns the display width of a string in terminal cells.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}
