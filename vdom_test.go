package rxtui

import "testing"

func TestVDom_FirstRenderMaterializes(t *testing.T) {
	v := NewVDom()
	v.Render(NewDiv().Background(Blue).
		Child(NewText("hello").Color(White)).
		Child(NewRichText().Span("a", nil).Span("b", nil)))

	root := v.Tree().Root
	if root == nil || root.Kind != NodeElement {
		t.Fatal("root element not materialized")
	}
	if len(root.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(root.Children))
	}

	text := root.Children[0]
	if text.Kind != NodeText || text.Text != "hello" {
		t.Errorf("text child = %+v", text)
	}
	if text.Width != 5 || text.Height != 1 {
		t.Errorf("text size = %dx%d, want 5x1", text.Width, text.Height)
	}
	if text.Parent != root {
		t.Error("child parent back-link not set")
	}

	rich := root.Children[1]
	if rich.Kind != NodeRichText || rich.Width != 2 {
		t.Errorf("rich child = %+v, want width 2", rich)
	}
}

func TestVDom_UpdatePropsPreservesFocusState(t *testing.T) {
	v := NewVDom()
	v.Render(NewDiv().Background(Blue).WithFocusable().OnClick(func() {}))

	root := v.Tree().Root
	v.Tree().SetFocusedNode(root)
	root.Hovered = true

	v.Render(NewDiv().Background(Red).WithFocusable().OnClick(func() {}))

	if v.Tree().Root != root {
		t.Fatal("props update should mutate in place, not replace")
	}
	if !root.Focused {
		t.Error("focused flag should survive UpdateProps")
	}
	if !root.Hovered {
		t.Error("hovered flag should survive UpdateProps")
	}
	if root.Styles.Base.Bg == nil || !root.Styles.Base.Bg.Equal(Red) {
		t.Error("styles should be updated")
	}
}

func TestVDom_UpdateTextRecomputesWidth(t *testing.T) {
	v := NewVDom()
	v.Render(NewText("hi"))
	v.Render(NewText("longer text"))

	root := v.Tree().Root
	if root.Text != "longer text" {
		t.Errorf("text = %q, want updated content", root.Text)
	}
	if root.Width != DisplayWidth("longer text") {
		t.Errorf("width = %d, want display width", root.Width)
	}
	if !root.Dirty {
		t.Error("updated node should be dirty")
	}
}

func TestVDom_ReplacePreservesSlot(t *testing.T) {
	v := NewVDom()
	v.Render(NewDiv().
		Child(NewText("first")).
		Child(NewText("second")).
		Child(NewText("third")))

	// Second child changes tag: replaced in place at index 1.
	v.Render(NewDiv().
		Child(NewText("first")).
		Child(NewDiv().Background(Green)).
		Child(NewText("third")))

	root := v.Tree().Root
	if len(root.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(root.Children))
	}
	if root.Children[1].Kind != NodeElement {
		t.Errorf("child 1 kind = %v, want element", root.Children[1].Kind)
	}
	if root.Children[1].Parent != root {
		t.Error("replacement should carry the parent back-link")
	}
	if root.Children[0].Text != "first" || root.Children[2].Text != "third" {
		t.Error("siblings should be untouched")
	}
}

func TestVDom_RemoveChildDropsFocus(t *testing.T) {
	v := NewVDom()
	v.Render(NewDiv().
		Child(NewDiv().WithFocusable()).
		Child(NewText("keep")))

	focusTarget := v.Tree().Root.Children[0]
	v.Tree().SetFocusedNode(focusTarget)

	v.Render(NewDiv().Child(NewText("keep")))

	if got := v.Tree().FocusedNode(); got != nil {
		t.Errorf("focus should clear when the focused subtree is removed, got %+v", got)
	}
	if len(v.Tree().Root.Children) != 1 {
		t.Errorf("children = %d, want 1", len(v.Tree().Root.Children))
	}
}

func TestVDom_TextBackgroundLiftsToStyle(t *testing.T) {
	v := NewVDom()
	v.Render(NewText("x").Background(Blue))

	root := v.Tree().Root
	if root.Style == nil || root.Style.Bg == nil || !root.Style.Bg.Equal(Blue) {
		t.Error("explicit text background should surface on the node style")
	}
}
