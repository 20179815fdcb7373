package rxtui

import (
	"strconv"
	"unicode/utf8"
)

// escBuilder efficiently builds ANSI escape sequences.
// It uses a pre-allocated buffer to minimize allocations.
type escBuilder struct {
	buf []byte
}

// newEscBuilder creates an escape sequence builder with the given capacity.
func newEscBuilder(capacity int) *escBuilder {
	return &escBuilder{buf: make([]byte, 0, capacity)}
}

// Reset clears the buffer for reuse.
func (e *escBuilder) Reset() {
	e.buf = e.buf[:0]
}

// Bytes returns the built sequence.
func (e *escBuilder) Bytes() []byte {
	return e.buf
}

// writeCSI writes the Control Sequence Introducer (ESC [).
func (e *escBuilder) writeCSI() {
	e.buf = append(e.buf, '\x1b', '[')
}

// writeInt appends an integer.
func (e *escBuilder) writeInt(n int) {
	e.buf = strconv.AppendInt(e.buf, int64(n), 10)
}

// MoveTo moves the cursor to (x, y), 0-indexed.
func (e *escBuilder) MoveTo(x, y int) {
	e.writeCSI()
	e.writeInt(y + 1)
	e.buf = append(e.buf, ';')
	e.writeInt(x + 1)
	e.buf = append(e.buf, 'H')
}

// MoveUp moves the cursor up by n rows.
func (e *escBuilder) MoveUp(n int) {
	if n <= 0 {
		return
	}
	e.writeCSI()
	if n > 1 {
		e.writeInt(n)
	}
	e.buf = append(e.buf, 'A')
}

// ClearScreen clears the entire screen (ESC[2J).
func (e *escBuilder) ClearScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '2', 'J')
}

// ClearToEndOfScreen clears from cursor to end of screen (ESC[J).
func (e *escBuilder) ClearToEndOfScreen() {
	e.writeCSI()
	e.buf = append(e.buf, 'J')
}

// ClearLine clears the entire current line (ESC[2K).
func (e *escBuilder) ClearLine() {
	e.writeCSI()
	e.buf = append(e.buf, '2', 'K')
}

// HideCursor makes the cursor invisible.
func (e *escBuilder) HideCursor() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '5', 'l')
}

// ShowCursor makes the cursor visible.
func (e *escBuilder) ShowCursor() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '5', 'h')
}

// EnterAltScreen switches to the alternate screen buffer.
func (e *escBuilder) EnterAltScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '4', '9', 'h')
}

// ExitAltScreen switches back to the main screen buffer.
func (e *escBuilder) ExitAltScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '4', '9', 'l')
}

// BeginSyncUpdate starts a synchronized update block (ESC[?2026h).
// The terminal buffers output until EndSyncUpdate, then displays it
// atomically so partial frames are never visible. Terminals that don't
// support the protocol ignore the sequence.
func (e *escBuilder) BeginSyncUpdate() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '0', '2', '6', 'h')
}

// EndSyncUpdate ends a synchronized update block (ESC[?2026l).
func (e *escBuilder) EndSyncUpdate() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '0', '2', '6', 'l')
}

// EnableMouse enables mouse reporting with SGR extended coordinates.
func (e *escBuilder) EnableMouse() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '0', '0', 'h')
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '0', '3', 'h')
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '0', '6', 'h')
}

// DisableMouse disables mouse reporting.
func (e *escBuilder) DisableMouse() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '0', '6', 'l')
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '0', '3', 'l')
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '0', '0', 'l')
}

// ResetStyle resets all colors and attributes to default (ESC[0m).
func (e *escBuilder) ResetStyle() {
	e.writeCSI()
	e.buf = append(e.buf, '0', 'm')
}

// SetForeground emits the SGR sequence for a foreground color.
// Default colors emit the explicit default-foreground code.
func (e *escBuilder) SetForeground(c Color) {
	e.setColor(c, true)
}

// SetBackground emits the SGR sequence for a background color.
func (e *escBuilder) SetBackground(c Color) {
	e.setColor(c, false)
}

func (e *escBuilder) setColor(c Color, fg bool) {
	e.writeCSI()
	switch c.Type() {
	case ColorDefault:
		if fg {
			e.buf = append(e.buf, '3', '9')
		} else {
			e.buf = append(e.buf, '4', '9')
		}
	case ColorANSI:
		idx := int(c.ANSI())
		// 30-37/90-97 for foreground, 40-47/100-107 for background.
		switch {
		case fg && idx < 8:
			e.writeInt(30 + idx)
		case fg:
			e.writeInt(90 + idx - 8)
		case idx < 8:
			e.writeInt(40 + idx)
		default:
			e.writeInt(100 + idx - 8)
		}
	case ColorRGB:
		r, g, b := c.RGB()
		if fg {
			e.buf = append(e.buf, '3', '8')
		} else {
			e.buf = append(e.buf, '4', '8')
		}
		e.buf = append(e.buf, ';', '2', ';')
		e.writeInt(int(r))
		e.buf = append(e.buf, ';')
		e.writeInt(int(g))
		e.buf = append(e.buf, ';')
		e.writeInt(int(b))
	}
	e.buf = append(e.buf, 'm')
}

// SetAttrs emits the SGR on/off codes for the attribute bits that differ
// between prev and next. Colors are untouched, so the attribute transition
// never disturbs tracked color state.
func (e *escBuilder) SetAttrs(prev, next Attr) {
	if prev == next {
		return
	}
	e.writeCSI()
	first := true
	sep := func() {
		if !first {
			e.buf = append(e.buf, ';')
		}
		first = false
	}
	emit := func(bit Attr, on, off string) {
		if prev&bit == next&bit {
			return
		}
		sep()
		if next.Has(bit) {
			e.WriteString(on)
		} else {
			e.WriteString(off)
		}
	}
	emit(AttrBold, "1", "22")
	emit(AttrItalic, "3", "23")
	emit(AttrUnderline, "4", "24")
	emit(AttrStrikethrough, "9", "29")
	e.buf = append(e.buf, 'm')
}

// WriteRune appends a UTF-8 encoded rune.
func (e *escBuilder) WriteRune(r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	e.buf = append(e.buf, buf[:n]...)
}

// WriteString appends a string verbatim.
func (e *escBuilder) WriteString(s string) {
	e.buf = append(e.buf, s...)
}
