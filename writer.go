package rxtui

import (
	"fmt"
	"io"
	"sort"
)

// TerminalWriter converts cell updates into a minimal sequence of terminal
// commands. It tracks the cursor position, colors, and attributes it last
// emitted so redundant commands are skipped, and wraps each frame in the
// synchronized-update escape pair when the terminal supports it.
type TerminalWriter struct {
	out io.Writer
	esc *escBuilder

	// Tracked terminal state. posValid is false when the cursor position is
	// unknown (startup, after a clear).
	posValid bool
	curX     int
	curY     int
	fg       Color
	bg       Color
	attrs    Attr

	syncOutput bool
}

// NewTerminalWriter creates a writer emitting to out.
func NewTerminalWriter(out io.Writer, caps Capabilities) *TerminalWriter {
	return &TerminalWriter{
		out:        out,
		esc:        newEscBuilder(4096),
		syncOutput: caps.SyncOutput,
	}
}

// run is a maximal sequence of consecutive cells on one row with identical
// foreground, background, and attributes.
type run struct {
	x, y  int
	cells []Cell
	fg    Color
	bg    Color
	attrs Attr
}

// width returns the display width of the run in columns.
func (r *run) width() int {
	return len(r.cells)
}

// canAppend reports whether a cell at (x, y) extends this run.
func (r *run) canAppend(x, y int, c Cell) bool {
	if y != r.y || x != r.x+r.width() {
		return false
	}
	return c.Fg == r.fg && c.Bg == r.bg && c.Attrs == r.attrs
}

// ApplyUpdates writes the given cell updates to the terminal.
// Updates are sorted by (y, x), grouped into runs, and emitted with only the
// commands that differ from tracked state. A write error leaves tracked
// state unchanged so the next call re-emits from a known position.
func (t *TerminalWriter) ApplyUpdates(updates []CellUpdate) error {
	return t.ApplyUpdatesOffset(updates, 0)
}

// ApplyUpdatesOffset applies updates translated down by originRow rows.
// Used by inline mode, where the frame renders into a reserved region of the
// main screen buffer.
func (t *TerminalWriter) ApplyUpdatesOffset(updates []CellUpdate, originRow int) error {
	if len(updates) == 0 {
		return nil
	}

	// Tracking mutates while the batch builds; a failed write restores the
	// snapshot so the next call re-emits from known state.
	saved := *t

	t.esc.Reset()
	if t.syncOutput {
		t.esc.BeginSyncUpdate()
	}

	sort.Slice(updates, func(i, j int) bool {
		if updates[i].Y != updates[j].Y {
			return updates[i].Y < updates[j].Y
		}
		return updates[i].X < updates[j].X
	})

	for _, r := range groupRuns(updates) {
		t.emitRun(r, originRow)
	}

	if t.syncOutput {
		t.esc.EndSyncUpdate()
	}

	if _, err := t.out.Write(t.esc.Bytes()); err != nil {
		t.posValid = saved.posValid
		t.curX = saved.curX
		t.curY = saved.curY
		t.fg = saved.fg
		t.bg = saved.bg
		t.attrs = saved.attrs
		return fmt.Errorf("terminal write: %w", err)
	}
	return nil
}

// groupRuns groups sorted updates into style-homogeneous runs.
func groupRuns(updates []CellUpdate) []run {
	var runs []run
	var cur *run

	for _, u := range updates {
		if cur != nil && cur.canAppend(u.X, u.Y, u.Cell) {
			cur.cells = append(cur.cells, u.Cell)
			continue
		}
		if cur != nil {
			runs = append(runs, *cur)
		}
		cur = &run{
			x:     u.X,
			y:     u.Y,
			cells: []Cell{u.Cell},
			fg:    u.Cell.Fg,
			bg:    u.Cell.Bg,
			attrs: u.Cell.Attrs,
		}
	}
	if cur != nil {
		runs = append(runs, *cur)
	}
	return runs
}

// emitRun emits the commands for a single run, skipping any command whose
// effect matches tracked state.
func (t *TerminalWriter) emitRun(r run, originRow int) {
	y := r.y + originRow

	if !t.posValid || t.curY != y || t.curX != r.x {
		t.esc.MoveTo(r.x, y)
		t.posValid = true
		t.curX = r.x
		t.curY = y
	}

	if r.fg != t.fg {
		t.esc.SetForeground(r.fg)
		t.fg = r.fg
	}
	if r.bg != t.bg {
		t.esc.SetBackground(r.bg)
		t.bg = r.bg
	}
	if r.attrs != t.attrs {
		t.esc.SetAttrs(t.attrs, r.attrs)
		t.attrs = r.attrs
	}

	// Print the run text. A wide rune already covers its trailing filler
	// cell, so the filler is consumed without being printed.
	cols := 0
	for i := 0; i < len(r.cells); i++ {
		c := r.cells[i]
		rw := RuneDisplayWidth(c.Rune)
		t.esc.WriteRune(c.Rune)
		cols += rw
		if rw == 2 && i+1 < len(r.cells) {
			i++
		}
	}
	t.curX = r.x + cols

	// Reset after any run that used non-default attrs so attributes never
	// bleed into the next write.
	if r.attrs != AttrNone {
		t.esc.ResetStyle()
		t.fg = DefaultColor()
		t.bg = DefaultColor()
		t.attrs = AttrNone
	}
}

// ApplyUpdatesDirect emits one positioned, fully-styled write per cell,
// bypassing run batching. Kept for debugging terminal issues.
func (t *TerminalWriter) ApplyUpdatesDirect(updates []CellUpdate, originRow int) error {
	if len(updates) == 0 {
		return nil
	}

	t.esc.Reset()
	for _, u := range updates {
		t.esc.MoveTo(u.X, u.Y+originRow)
		t.esc.ResetStyle()
		if !u.Cell.Fg.IsDefault() {
			t.esc.SetForeground(u.Cell.Fg)
		}
		if !u.Cell.Bg.IsDefault() {
			t.esc.SetBackground(u.Cell.Bg)
		}
		if u.Cell.Attrs != AttrNone {
			t.esc.SetAttrs(AttrNone, u.Cell.Attrs)
		}
		t.esc.WriteRune(u.Cell.Rune)
	}
	t.esc.ResetStyle()

	if _, err := t.out.Write(t.esc.Bytes()); err != nil {
		return fmt.Errorf("terminal write: %w", err)
	}
	t.resetTracking()
	return nil
}

// Clear clears the screen and resets tracked state. The next ApplyUpdates
// re-emits position and style from scratch.
func (t *TerminalWriter) Clear() error {
	t.esc.Reset()
	t.esc.ResetStyle()
	t.esc.MoveTo(0, 0)
	t.esc.ClearScreen()
	if _, err := t.out.Write(t.esc.Bytes()); err != nil {
		return fmt.Errorf("terminal clear: %w", err)
	}
	t.resetTracking()
	return nil
}

// ClearRegion clears rows [originRow, originRow+height) of the screen.
func (t *TerminalWriter) ClearRegion(originRow, height int) error {
	t.esc.Reset()
	t.esc.ResetStyle()
	for i := 0; i < height; i++ {
		t.esc.MoveTo(0, originRow+i)
		t.esc.ClearLine()
	}
	t.esc.MoveTo(0, originRow)
	if _, err := t.out.Write(t.esc.Bytes()); err != nil {
		return fmt.Errorf("terminal clear region: %w", err)
	}
	t.resetTracking()
	return nil
}

// resetTracking forgets tracked terminal state.
func (t *TerminalWriter) resetTracking() {
	t.posValid = false
	t.fg = DefaultColor()
	t.bg = DefaultColor()
	t.attrs = AttrNone
}
