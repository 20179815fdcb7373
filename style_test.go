package rxtui

import "testing"

func TestMergeStyles_OverlayWins(t *testing.T) {
	base := NewStyle().Background(Blue).Direction(Horizontal)
	overlay := NewStyle().Background(Red)

	merged := MergeStyles(base, overlay)
	if merged.Bg == nil || !merged.Bg.Equal(Red) {
		t.Errorf("merged background = %v, want Red", merged.Bg)
	}
	if merged.Dir == nil || *merged.Dir != Horizontal {
		t.Error("merged direction should be kept from base")
	}
}

func TestMergeStyles_NilHandling(t *testing.T) {
	s := NewStyle().Background(Green)

	if MergeStyles(nil, nil) != nil {
		t.Error("merge of two nils should be nil")
	}
	if got := MergeStyles(s, nil); !got.Equal(s) {
		t.Error("merge with nil overlay should return base")
	}
	if got := MergeStyles(nil, s); !got.Equal(s) {
		t.Error("merge with nil base should return overlay")
	}
}

// Merging is idempotent: merge(x, merge(x, y)) == merge(x, y).
func TestMergeStyles_Idempotent(t *testing.T) {
	x := NewStyle().Background(Blue).Pad(SpacingAll(1))
	y := NewStyle().Background(Red).Direction(Horizontal)

	xy := MergeStyles(x, y)
	again := MergeStyles(x, xy)
	if !again.Equal(xy) {
		t.Errorf("merge not idempotent: %+v vs %+v", again, xy)
	}
}

func TestMergeTextStyles_OverlayWins(t *testing.T) {
	base := NewTextStyle().Color(White).WithBold()
	overlay := NewTextStyle().Color(Red)

	merged := MergeTextStyles(base, overlay)
	if merged.Fg == nil || !merged.Fg.Equal(Red) {
		t.Errorf("merged color = %v, want Red", merged.Fg)
	}
	if merged.Bold == nil || !*merged.Bold {
		t.Error("bold should carry over from base")
	}
}

func TestComposeStateStyle_DefaultFocusBorder(t *testing.T) {
	styles := DivStyles{Base: NewStyle().Background(Blue)}

	composed := ComposeStateStyle(styles, true, true, false)
	if composed.Border == nil {
		t.Fatal("focused focusable element should get the default focus border")
	}
	if !composed.Border.Color.Equal(Yellow) || composed.Border.Style != BorderSingle {
		t.Errorf("default focus border = %+v, want yellow single", composed.Border)
	}
	if composed.Bg == nil || !composed.Bg.Equal(Blue) {
		t.Error("base background should survive the focus overlay")
	}
}

func TestComposeStateStyle_ExplicitFocusOverlay(t *testing.T) {
	styles := DivStyles{
		Base:  NewStyle().Background(Blue),
		Focus: NewStyle().Background(Green),
	}

	composed := ComposeStateStyle(styles, true, true, false)
	if composed.Bg == nil || !composed.Bg.Equal(Green) {
		t.Errorf("focus overlay background = %v, want Green", composed.Bg)
	}
}

func TestComposeStateStyle_HoverOnTopOfFocus(t *testing.T) {
	styles := DivStyles{
		Base:  NewStyle().Background(Blue),
		Focus: NewStyle().Background(Green),
		Hover: NewStyle().Background(Red),
	}

	composed := ComposeStateStyle(styles, true, true, true)
	if composed.Bg == nil || !composed.Bg.Equal(Red) {
		t.Errorf("hover overlay should win: bg = %v, want Red", composed.Bg)
	}
}

func TestComposeStateStyle_Unfocused(t *testing.T) {
	styles := DivStyles{Base: NewStyle().Background(Blue)}

	composed := ComposeStateStyle(styles, true, false, false)
	if composed.Border != nil {
		t.Error("unfocused element should not get the focus border")
	}
}

func TestPct_ClampsAtIntake(t *testing.T) {
	if d := Pct(1.5); d.Frac != 1.0 {
		t.Errorf("Pct(1.5).Frac = %v, want 1.0", d.Frac)
	}
	if d := Pct(-0.5); d.Frac != 0.0 {
		t.Errorf("Pct(-0.5).Frac = %v, want 0.0", d.Frac)
	}
}

func TestStyle_Equal(t *testing.T) {
	a := NewStyle().Background(Blue)
	b := NewStyle().Background(Blue)
	c := NewStyle().Background(Red)

	if !a.Equal(b) {
		t.Error("identical styles should be equal")
	}
	if a.Equal(c) {
		t.Error("different backgrounds should not be equal")
	}
	if a.Equal(nil) {
		t.Error("style should not equal nil")
	}
}
