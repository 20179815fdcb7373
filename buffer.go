package rxtui

import "strings"

// ScreenBuffer is a 2D grid of cells covering the terminal.
// Out-of-range reads return an empty cell; out-of-range writes are dropped.
type ScreenBuffer struct {
	cells  []Cell
	width  int
	height int
}

// NewScreenBuffer creates a buffer of the given dimensions filled with
// empty cells.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	cells := make([]Cell, width*height)
	empty := EmptyCell()
	for i := range cells {
		cells[i] = empty
	}

	return &ScreenBuffer{cells: cells, width: width, height: height}
}

// Width returns the buffer width in columns.
func (b *ScreenBuffer) Width() int {
	return b.width
}

// Height returns the buffer height in rows.
func (b *ScreenBuffer) Height() int {
	return b.height
}

// Size returns the buffer dimensions.
func (b *ScreenBuffer) Size() (width, height int) {
	return b.width, b.height
}

// Rect returns the buffer bounds as a Rect at (0, 0).
func (b *ScreenBuffer) Rect() Rect {
	return NewRect(0, 0, b.width, b.height)
}

// idx converts (x, y) to a flat index, or -1 when out of bounds.
func (b *ScreenBuffer) idx(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.width + x
}

// Cell returns the cell at (x, y), or an empty Cell when out of bounds.
func (b *ScreenBuffer) Cell(x, y int) Cell {
	i := b.idx(x, y)
	if i < 0 {
		return EmptyCell()
	}
	return b.cells[i]
}

// SetCell writes the cell at (x, y). Out-of-bounds writes are dropped.
func (b *ScreenBuffer) SetCell(x, y int, c Cell) {
	i := b.idx(x, y)
	if i < 0 {
		return
	}
	b.cells[i] = c
}

// WriteString writes text starting at (x, y) with the given colors.
// Wide characters occupy two cells: the glyph followed by a styled space.
// Writing stops when the next glyph would not fit in the buffer width.
// Returns the display width written.
func (b *ScreenBuffer) WriteString(x, y int, text string, fg, bg Color) int {
	return b.writeRunes(x, y, text, fg, bg, AttrNone)
}

// WriteStyledString writes text starting at (x, y) with a full text style.
func (b *ScreenBuffer) WriteStyledString(x, y int, text string, ts *TextStyle) int {
	var fg, bg Color
	if ts != nil {
		if ts.Fg != nil {
			fg = *ts.Fg
		}
		if ts.Bg != nil {
			bg = *ts.Bg
		}
	}
	return b.writeRunes(x, y, text, fg, bg, AttrsFromTextStyle(ts))
}

func (b *ScreenBuffer) writeRunes(x, y int, text string, fg, bg Color, attrs Attr) int {
	if y < 0 || y >= b.height {
		return 0
	}

	written := 0
	curX := x
	for _, r := range text {
		w := RuneDisplayWidth(r)

		// Stop when the glyph would not fit.
		if curX+w > b.width {
			break
		}
		if curX < 0 {
			curX += w
			continue
		}

		b.SetCell(curX, y, Cell{Rune: r, Fg: fg, Bg: bg, Attrs: attrs})
		if w == 2 {
			// Trailing cell of a wide character is a styled space.
			b.SetCell(curX+1, y, Cell{Rune: ' ', Fg: fg, Bg: bg, Attrs: attrs})
		}

		curX += w
		written += w
	}
	return written
}

// Fill fills a rectangle with the given cell, clipped to the buffer.
func (b *ScreenBuffer) Fill(rect Rect, c Cell) {
	rect = rect.Intersect(b.Rect())
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			b.cells[y*b.width+x] = c
		}
	}
}

// Clear resets every cell to an empty cell.
func (b *ScreenBuffer) Clear() {
	empty := EmptyCell()
	for i := range b.cells {
		b.cells[i] = empty
	}
}

// Resize changes the buffer dimensions, preserving content in the
// overlapping region and padding new cells with empty cells.
func (b *ScreenBuffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == b.width && height == b.height {
		return
	}

	cells := make([]Cell, width*height)
	empty := EmptyCell()
	for i := range cells {
		cells[i] = empty
	}

	copyWidth := min(width, b.width)
	copyHeight := min(height, b.height)
	for y := 0; y < copyHeight; y++ {
		copy(cells[y*width:y*width+copyWidth], b.cells[y*b.width:y*b.width+copyWidth])
	}

	b.cells = cells
	b.width = width
	b.height = height
}

// String renders the buffer content for debugging, one row per line.
func (b *ScreenBuffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			r := b.cells[y*b.width+x].Rune
			if r == 0 {
				r = ' '
			}
			sb.WriteRune(r)
		}
		if y < b.height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// CellUpdate is a single cell that differs between front and back buffers.
type CellUpdate struct {
	X, Y int
	Cell Cell
}

// DoubleBuffer pairs a front buffer (what is on screen) with a back buffer
// (the frame being built). Diffing the two yields the minimal cell updates
// needed to bring the screen up to date.
type DoubleBuffer struct {
	front *ScreenBuffer
	back  *ScreenBuffer
}

// NewDoubleBuffer creates front and back buffers of identical dimensions.
func NewDoubleBuffer(width, height int) *DoubleBuffer {
	return &DoubleBuffer{
		front: NewScreenBuffer(width, height),
		back:  NewScreenBuffer(width, height),
	}
}

// Back returns the back buffer for rendering the next frame.
func (d *DoubleBuffer) Back() *ScreenBuffer {
	return d.back
}

// Size returns the buffer dimensions.
func (d *DoubleBuffer) Size() (width, height int) {
	return d.back.Size()
}

// Swap exchanges the front and back buffers.
func (d *DoubleBuffer) Swap() {
	d.front, d.back = d.back, d.front
}

// ClearBack clears the back buffer.
func (d *DoubleBuffer) ClearBack() {
	d.back.Clear()
}

// Reset clears both buffers, keeping dimensions. After a reset the next
// frame retransmits every cell.
func (d *DoubleBuffer) Reset() {
	d.front.Clear()
	d.back.Clear()
}

// Resize resizes both buffers to the new dimensions.
func (d *DoubleBuffer) Resize(width, height int) {
	d.front.Resize(width, height)
	d.back.Resize(width, height)
}

// Diff returns the cells that differ between front and back buffers in
// row-major order.
func (d *DoubleBuffer) Diff() []CellUpdate {
	var updates []CellUpdate
	for y := 0; y < d.back.height; y++ {
		for x := 0; x < d.back.width; x++ {
			i := y*d.back.width + x
			if d.back.cells[i] != d.front.cells[i] {
				updates = append(updates, CellUpdate{X: x, Y: y, Cell: d.back.cells[i]})
			}
		}
	}
	return updates
}
