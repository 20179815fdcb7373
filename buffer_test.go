package rxtui

import "testing"

func TestDoubleBuffer_DiffEmpty(t *testing.T) {
	db := NewDoubleBuffer(10, 5)
	if updates := db.Diff(); len(updates) != 0 {
		t.Errorf("fresh buffers diff = %d updates, want 0", len(updates))
	}
}

func TestDoubleBuffer_SingleChange(t *testing.T) {
	db := NewDoubleBuffer(10, 5)
	db.Back().SetCell(2, 1, NewCell('A'))

	updates := db.Diff()
	if len(updates) != 1 {
		t.Fatalf("diff = %d updates, want 1", len(updates))
	}
	if updates[0].X != 2 || updates[0].Y != 1 || updates[0].Cell.Rune != 'A' {
		t.Errorf("update = %+v, want 'A' at (2,1)", updates[0])
	}
}

// Rendering an identical scene after a swap produces an empty diff.
func TestDoubleBuffer_IdenticalSceneAfterSwap(t *testing.T) {
	db := NewDoubleBuffer(20, 3)

	draw := func() {
		db.ClearBack()
		db.Back().WriteString(0, 0, "Hello", White, Blue)
	}

	draw()
	if n := len(db.Diff()); n == 0 {
		t.Fatal("first frame should produce updates")
	}
	db.Swap()

	draw()
	if updates := db.Diff(); len(updates) != 0 {
		t.Errorf("identical scene diff = %d updates, want 0", len(updates))
	}
}

// "Hello World" -> "Hello Rust!" on a blue
// row changes exactly 5 cells, columns 6-10.
func TestDoubleBuffer_FlickerFreeRepaint(t *testing.T) {
	db := NewDoubleBuffer(20, 1)

	frame := func(text string) {
		db.ClearBack()
		db.Back().Fill(NewRect(0, 0, 20, 1), Cell{Rune: ' ', Bg: Blue})
		db.Back().WriteString(0, 0, text, White, Blue)
	}

	frame("Hello World")
	db.Swap()
	frame("Hello Rust!")

	updates := db.Diff()
	if len(updates) != 5 {
		t.Fatalf("diff = %d updates, want 5", len(updates))
	}
	for i, u := range updates {
		if u.Y != 0 || u.X != 6+i {
			t.Errorf("update %d at (%d,%d), want column %d on row 0", i, u.X, u.Y, 6+i)
		}
	}
}

func TestScreenBuffer_WriteString_StaysInBounds(t *testing.T) {
	buf := NewScreenBuffer(5, 2)

	written := buf.WriteString(3, 0, "abcdef", DefaultColor(), DefaultColor())
	if written != 2 {
		t.Errorf("written = %d, want 2 (truncated at buffer edge)", written)
	}
	if buf.Cell(3, 0).Rune != 'a' || buf.Cell(4, 0).Rune != 'b' {
		t.Error("string content not written at expected cells")
	}

	// Out-of-range rows are dropped entirely.
	if n := buf.WriteString(0, 5, "xyz", DefaultColor(), DefaultColor()); n != 0 {
		t.Errorf("out-of-range write wrote %d columns, want 0", n)
	}
}

func TestScreenBuffer_WriteString_WideRunes(t *testing.T) {
	buf := NewScreenBuffer(6, 1)

	written := buf.WriteString(0, 0, "世界", Red, DefaultColor())
	if written != 4 {
		t.Fatalf("written = %d, want 4", written)
	}
	if buf.Cell(0, 0).Rune != '世' {
		t.Errorf("cell (0,0) = %q, want 世", buf.Cell(0, 0).Rune)
	}
	// Trailing cell of a wide character is a styled space.
	trail := buf.Cell(1, 0)
	if trail.Rune != ' ' || !trail.Fg.Equal(Red) {
		t.Errorf("trailing cell = %+v, want styled space", trail)
	}
	if buf.Cell(2, 0).Rune != '界' {
		t.Errorf("cell (2,0) = %q, want 界", buf.Cell(2, 0).Rune)
	}
}

func TestScreenBuffer_WriteString_WideRuneTruncation(t *testing.T) {
	buf := NewScreenBuffer(3, 1)

	// "a" fits, then 世 would need columns 1-2, fits; next wide rune would
	// not fit at all.
	written := buf.WriteString(0, 0, "a世界", DefaultColor(), DefaultColor())
	if written != 3 {
		t.Errorf("written = %d, want 3 (truncated at last whole glyph)", written)
	}
}

func TestScreenBuffer_SetCell_OutOfBoundsDropped(t *testing.T) {
	buf := NewScreenBuffer(3, 3)
	buf.SetCell(-1, 0, NewCell('X'))
	buf.SetCell(3, 0, NewCell('X'))
	buf.SetCell(0, 3, NewCell('X'))

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if buf.Cell(x, y).Rune != ' ' {
				t.Errorf("cell (%d,%d) modified by out-of-bounds write", x, y)
			}
		}
	}
}

func TestScreenBuffer_Resize(t *testing.T) {
	buf := NewScreenBuffer(4, 2)
	buf.SetCell(1, 1, NewCell('A'))

	buf.Resize(6, 3)
	if buf.Cell(1, 1).Rune != 'A' {
		t.Error("resize lost overlapping content")
	}
	if buf.Cell(5, 2).Rune != ' ' {
		t.Error("new cells should be empty")
	}

	buf.Resize(2, 1)
	if w, h := buf.Size(); w != 2 || h != 1 {
		t.Errorf("size = %dx%d, want 2x1", w, h)
	}
}

func TestScreenBuffer_WriteStyledString(t *testing.T) {
	buf := NewScreenBuffer(10, 1)
	ts := NewTextStyle().Color(Green).Background(Black).WithBold().WithUnderline()

	buf.WriteStyledString(0, 0, "ok", ts)
	cell := buf.Cell(0, 0)
	if !cell.Fg.Equal(Green) || !cell.Bg.Equal(Black) {
		t.Errorf("cell colors = %+v, want green on black", cell)
	}
	if !cell.Attrs.Has(AttrBold) || !cell.Attrs.Has(AttrUnderline) {
		t.Errorf("cell attrs = %v, want bold+underline", cell.Attrs)
	}
	if cell.Attrs.Has(AttrItalic) {
		t.Error("italic should not be set")
	}
}

func TestDoubleBuffer_ResetRetransmitsEverything(t *testing.T) {
	db := NewDoubleBuffer(4, 1)
	db.Back().WriteString(0, 0, "hi", White, DefaultColor())
	db.Swap()

	db.Reset()
	db.Back().WriteString(0, 0, "hi", White, DefaultColor())
	if n := len(db.Diff()); n != 2 {
		t.Errorf("post-reset diff = %d updates, want 2", n)
	}
}
