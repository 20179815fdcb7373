package rxtui

import (
	"strings"
	"testing"
)

// rasterize lays out and draws a virtual tree into a fresh buffer.
func rasterize(t *testing.T, node Node, width, height int) (*RenderTree, *ScreenBuffer) {
	t.Helper()
	v := NewVDom()
	v.Render(node)
	v.Layout(width, height)
	buf := NewScreenBuffer(width, height)
	RenderToBuffer(v.Tree().Root, buf, NewRect(0, 0, width, height), nil)
	return v.Tree(), buf
}

func TestRaster_BackgroundFill(t *testing.T) {
	_, buf := rasterize(t, NewDiv().Width(4).Height(2).Background(Blue), 10, 5)

	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if !buf.Cell(x, y).Bg.Equal(Blue) {
				t.Errorf("cell (%d,%d) bg = %v, want Blue", x, y, buf.Cell(x, y).Bg)
			}
		}
	}
	if buf.Cell(4, 0).Bg.Equal(Blue) {
		t.Error("background should not spill outside the element")
	}
}

func TestRaster_FullBorder(t *testing.T) {
	_, buf := rasterize(t, NewDiv().Width(5).Height(3).Border(NewBorder(White)), 10, 5)

	if buf.Cell(0, 0).Rune != '┌' || buf.Cell(4, 0).Rune != '┐' {
		t.Errorf("top corners = %q %q", buf.Cell(0, 0).Rune, buf.Cell(4, 0).Rune)
	}
	if buf.Cell(0, 2).Rune != '└' || buf.Cell(4, 2).Rune != '┘' {
		t.Errorf("bottom corners = %q %q", buf.Cell(0, 2).Rune, buf.Cell(4, 2).Rune)
	}
	if buf.Cell(2, 0).Rune != '─' || buf.Cell(0, 1).Rune != '│' {
		t.Error("edges not drawn")
	}
}

func TestRaster_RoundedBorderGlyphs(t *testing.T) {
	_, buf := rasterize(t, NewDiv().Width(4).Height(3).
		Border(BorderWith(BorderRounded, White)), 10, 5)

	if buf.Cell(0, 0).Rune != '╭' || buf.Cell(3, 0).Rune != '╮' {
		t.Errorf("rounded top corners = %q %q", buf.Cell(0, 0).Rune, buf.Cell(3, 0).Rune)
	}
	if buf.Cell(0, 2).Rune != '╰' || buf.Cell(3, 2).Rune != '╯' {
		t.Errorf("rounded bottom corners = %q %q", buf.Cell(0, 2).Rune, buf.Cell(3, 2).Rune)
	}
}

// A top+bottom-only border paints horizontal glyphs on the
// first and last rows, no corner glyphs, and the corner cells carry the
// element's background.
func TestRaster_BorderEdgeSubset(t *testing.T) {
	_, buf := rasterize(t, NewDiv().Width(5).Height(3).Background(Green).
		Border(BorderWithEdges(BorderSingle, White, BorderEdgesHorizontal)),
		10, 5)

	for _, y := range []int{0, 2} {
		for x := 1; x <= 3; x++ {
			if buf.Cell(x, y).Rune != '─' {
				t.Errorf("cell (%d,%d) = %q, want ─", x, y, buf.Cell(x, y).Rune)
			}
		}
		// Corner cells: no corner glyphs, background preserved.
		for _, x := range []int{0, 4} {
			cell := buf.Cell(x, y)
			if cell.Rune == '┌' || cell.Rune == '┐' || cell.Rune == '└' || cell.Rune == '┘' {
				t.Errorf("cell (%d,%d) = %q, corner glyph should not be drawn", x, y, cell.Rune)
			}
			if !cell.Bg.Equal(Green) {
				t.Errorf("cell (%d,%d) bg = %v, want element background", x, y, cell.Bg)
			}
		}
	}
	// No vertical edges.
	if buf.Cell(0, 1).Rune == '│' || buf.Cell(4, 1).Rune == '│' {
		t.Error("left/right edges should not be drawn")
	}
}

// No descendant cell of an overflow-clipping container is written outside
// its padding box.
func TestRaster_OverflowHiddenClips(t *testing.T) {
	_, buf := rasterize(t, NewDiv().Width(20).Height(10).
		Child(NewDiv().Width(5).Height(3).Overflow(OverflowHidden).
			Child(NewDiv().Width(12).Height(8).Background(Red))),
		20, 10)

	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			inside := x < 5 && y < 3
			if !inside && buf.Cell(x, y).Bg.Equal(Red) {
				t.Errorf("descendant painted outside padding box at (%d,%d)", x, y)
			}
		}
	}
	if !buf.Cell(0, 0).Bg.Equal(Red) {
		t.Error("descendant should paint inside the padding box")
	}
}

func TestRaster_TextInheritsParentBackground(t *testing.T) {
	_, buf := rasterize(t, NewDiv().Width(10).Height(1).Background(Blue).
		Child(NewText("Hi").Color(White)),
		10, 1)

	cell := buf.Cell(0, 0)
	if cell.Rune != 'H' {
		t.Fatalf("cell (0,0) = %q, want H", cell.Rune)
	}
	if !cell.Bg.Equal(Blue) {
		t.Errorf("text bg = %v, want inherited Blue", cell.Bg)
	}
	if !cell.Fg.Equal(White) {
		t.Errorf("text fg = %v, want White", cell.Fg)
	}
}

func TestRaster_TextOwnBackgroundWins(t *testing.T) {
	_, buf := rasterize(t, NewDiv().Width(10).Height(1).Background(Blue).
		Child(NewText("Hi").Background(Red)),
		10, 1)

	if !buf.Cell(0, 0).Bg.Equal(Red) {
		t.Errorf("text bg = %v, want its own Red", buf.Cell(0, 0).Bg)
	}
}

func TestRaster_RichTextSpanStyles(t *testing.T) {
	_, buf := rasterize(t, NewDiv().Width(10).Height(1).
		Child(NewRichText().
			Span("ab", NewTextStyle().Color(Red)).
			Span("cd", NewTextStyle().Color(Blue))),
		10, 1)

	if !buf.Cell(0, 0).Fg.Equal(Red) || !buf.Cell(1, 0).Fg.Equal(Red) {
		t.Error("first span should be red")
	}
	if !buf.Cell(2, 0).Fg.Equal(Blue) || !buf.Cell(3, 0).Fg.Equal(Blue) {
		t.Error("second span should be blue")
	}
}

func TestRaster_ZIndexOrdering(t *testing.T) {
	_, buf := rasterize(t, NewDiv().Width(6).Height(2).
		Child(NewDiv().Width(6).Height(2).Background(Red).Position(PositionAbsolute).Top(0).Left(0).ZIndex(2)).
		Child(NewDiv().Width(6).Height(2).Background(Blue).Position(PositionAbsolute).Top(0).Left(0).ZIndex(1)),
		6, 2)

	// The higher z-index paints on top even though it comes first.
	if !buf.Cell(0, 0).Bg.Equal(Red) {
		t.Errorf("top cell bg = %v, want Red (z=2)", buf.Cell(0, 0).Bg)
	}
}

func TestRaster_ScrollOffsetShiftsChildren(t *testing.T) {
	div := NewDiv().Width(10).Height(3).Overflow(OverflowScroll).ShowScrollbar(false)
	for i := 0; i < 6; i++ {
		div.Child(NewText(strings.Repeat(string(rune('a'+i)), 3)))
	}

	v := NewVDom()
	v.Render(div)
	v.Layout(10, 3)
	v.Tree().Root.SetScrollY(2)

	buf := NewScreenBuffer(10, 3)
	RenderToBuffer(v.Tree().Root, buf, NewRect(0, 0, 10, 3), nil)

	// Rows 0-1 scrolled away; the viewport starts at the third child.
	if buf.Cell(0, 0).Rune != 'c' {
		t.Errorf("first visible row = %q, want c", buf.Cell(0, 0).Rune)
	}
	if buf.Cell(0, 2).Rune != 'e' {
		t.Errorf("last visible row = %q, want e", buf.Cell(0, 2).Rune)
	}
}

func TestRaster_ScrollbarThumb(t *testing.T) {
	div := NewDiv().Width(10).Height(4).Overflow(OverflowScroll)
	for i := 0; i < 8; i++ {
		div.Child(NewDiv().Width(5).Height(1))
	}

	v := NewVDom()
	v.Render(div)
	v.Layout(10, 4)

	buf := NewScreenBuffer(10, 4)
	RenderToBuffer(v.Tree().Root, buf, NewRect(0, 0, 10, 4), nil)

	// Track in the last column; thumb at the top when unscrolled.
	if buf.Cell(9, 0).Rune != '█' {
		t.Errorf("thumb cell = %q, want █", buf.Cell(9, 0).Rune)
	}
	if buf.Cell(9, 3).Rune != '│' {
		t.Errorf("track cell = %q, want │", buf.Cell(9, 3).Rune)
	}

	// Scrolled to the bottom, the thumb moves to the last row.
	v.Tree().Root.SetScrollY(v.Tree().Root.MaxScrollY())
	buf.Clear()
	RenderToBuffer(v.Tree().Root, buf, NewRect(0, 0, 10, 4), nil)
	if buf.Cell(9, 3).Rune != '█' {
		t.Errorf("thumb should reach the last row, got %q", buf.Cell(9, 3).Rune)
	}
}

func TestRaster_ScrollbarHiddenWhenDisabled(t *testing.T) {
	div := NewDiv().Width(10).Height(4).Overflow(OverflowScroll).ShowScrollbar(false)
	for i := 0; i < 8; i++ {
		div.Child(NewDiv().Width(5).Height(1))
	}

	_, buf := rasterize(t, div, 10, 4)
	if buf.Cell(9, 0).Rune == '█' || buf.Cell(9, 0).Rune == '│' {
		t.Error("scrollbar drawn despite show_scrollbar=false")
	}
}

func TestRaster_ShortScrollableSkipsScrollbar(t *testing.T) {
	div := NewDiv().Width(10).Height(2).Overflow(OverflowScroll)
	for i := 0; i < 8; i++ {
		div.Child(NewDiv().Width(5).Height(1))
	}

	_, buf := rasterize(t, div, 10, 2)
	// Height 2 containers never draw a scrollbar.
	if buf.Cell(9, 0).Rune == '█' || buf.Cell(9, 0).Rune == '│' {
		t.Error("scrollbar drawn on a 2-row container")
	}
}

func TestRaster_WrappedTextAlignment(t *testing.T) {
	_, buf := rasterize(t, NewDiv().Width(11).Height(3).
		Child(NewText("aaaa bb").Wrapped(TextWrapWord).Aligned(TextAlignRight)),
		11, 3)

	// Each wrapped line aligns independently within the node width.
	row0 := strings.TrimRight(buf.String()[:11], " ")
	if !strings.HasSuffix(row0, "aaaa bb") {
		t.Errorf("row 0 = %q, want right-aligned content", row0)
	}
}
