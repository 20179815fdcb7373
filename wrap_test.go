package rxtui

import "testing"

func TestWrapText_None(t *testing.T) {
	lines := WrapText("hello world", 5, TextWrapNone)
	if len(lines) != 1 || lines[0] != "hello world" {
		t.Errorf("no-wrap should return the text unchanged, got %q", lines)
	}
}

func TestWrapText_Character(t *testing.T) {
	lines := WrapText("abcdefgh", 3, TextWrapCharacter)
	want := []string{"abc", "def", "gh"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapText_Word(t *testing.T) {
	lines := WrapText("the quick brown fox", 9, TextWrapWord)
	want := []string{"the quick", "brown fox"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapText_Word_LongWordOverflows(t *testing.T) {
	lines := WrapText("hi extraordinarily", 6, TextWrapWord)
	if len(lines) != 2 {
		t.Fatalf("lines = %q, want 2 lines", lines)
	}
	// Word mode lets an oversized word overflow on its own line.
	if lines[1] != "extraordinarily" {
		t.Errorf("long word should stay intact, got %q", lines[1])
	}
}

// For WordBreak, every output line fits within the width.
func TestWrapText_WordBreak_NeverExceedsWidth(t *testing.T) {
	texts := []string{
		"hi extraordinarily long",
		"abcdefghijklmnop",
		"a bb ccc dddd eeeee ffffff",
		"wide 世界世界世界 chars",
	}
	for _, text := range texts {
		for width := 1; width <= 10; width++ {
			if width < 2 && DisplayWidth(text) > len([]rune(text)) {
				// A double-width rune can never fit in a single column.
				continue
			}
			for _, line := range WrapText(text, width, TextWrapWordBreak) {
				if w := DisplayWidth(line); w > width {
					t.Errorf("WrapText(%q, %d): line %q has width %d", text, width, line, w)
				}
			}
		}
	}
}

func TestWrapText_NewlinesForceBreaks(t *testing.T) {
	lines := WrapText("one\ntwo", 10, TextWrapWord)
	if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
		t.Errorf("lines = %q, want [one two]", lines)
	}
}

func TestSubstringByColumns(t *testing.T) {
	if got := SubstringByColumns("hello", 1, 4); got != "ell" {
		t.Errorf("SubstringByColumns = %q, want %q", got, "ell")
	}
	if got := SubstringByColumns("hello", 0, 10); got != "hello" {
		t.Errorf("SubstringByColumns = %q, want %q", got, "hello")
	}
}

func TestSubstringByColumns_WideBoundary(t *testing.T) {
	// 世 covers columns 0-1, 界 columns 2-3. A cut at column 1 excludes the
	// straddling rune rather than splitting it.
	if got := SubstringByColumns("世界", 1, 4); got != "界" {
		t.Errorf("SubstringByColumns = %q, want %q", got, "界")
	}
	if got := SubstringByColumns("世界", 0, 3); got != "世" {
		t.Errorf("SubstringByColumns = %q, want %q", got, "世")
	}
}

func TestWrapSpans_PreservesStyles(t *testing.T) {
	red := NewTextStyle().Color(Red)
	blue := NewTextStyle().Color(Blue)
	spans := []TextSpan{
		{Content: "aaa", Style: red},
		{Content: "bbb", Style: blue},
	}

	lines := wrapSpans(spans, 4, TextWrapCharacter)
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	// First line: "aaa" red + "b" blue.
	if len(lines[0]) != 2 {
		t.Fatalf("first line spans = %d, want 2", len(lines[0]))
	}
	if lines[0][0].Content != "aaa" || !lines[0][0].Style.Equal(red) {
		t.Errorf("first span = %+v, want red aaa", lines[0][0])
	}
	if lines[0][1].Content != "b" || !lines[0][1].Style.Equal(blue) {
		t.Errorf("second span = %+v, want blue b", lines[0][1])
	}
	if len(lines[1]) != 1 || lines[1][0].Content != "bb" {
		t.Errorf("second line = %+v, want blue bb", lines[1])
	}
}
