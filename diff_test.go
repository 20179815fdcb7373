package rxtui

import "testing"

// renderTreeFor materializes a render tree from a virtual tree.
func renderTreeFor(node Node) *VDom {
	v := NewVDom()
	v.Render(node)
	return v
}

func TestDiff_TagMismatchReplaces(t *testing.T) {
	v := renderTreeFor(NewText("hello"))

	patches := diffNodes(v.Tree().Root, NewDiv())
	if len(patches) != 1 {
		t.Fatalf("patches = %d, want 1", len(patches))
	}
	if _, ok := patches[0].(ReplacePatch); !ok {
		t.Errorf("patch = %T, want ReplacePatch", patches[0])
	}
}

func TestDiff_TextContentChange(t *testing.T) {
	v := renderTreeFor(NewText("hello"))

	patches := diffNodes(v.Tree().Root, NewText("world"))
	if len(patches) != 1 {
		t.Fatalf("patches = %d, want 1", len(patches))
	}
	up, ok := patches[0].(UpdateTextPatch)
	if !ok {
		t.Fatalf("patch = %T, want UpdateTextPatch", patches[0])
	}
	if up.Text != "world" {
		t.Errorf("patch text = %q, want %q", up.Text, "world")
	}
}

func TestDiff_TextUnchangedNoPatches(t *testing.T) {
	v := renderTreeFor(NewText("same").Color(Red))

	patches := diffNodes(v.Tree().Root, NewText("same").Color(Red))
	if len(patches) != 0 {
		t.Errorf("patches = %d, want 0 for identical text", len(patches))
	}
}

func TestDiff_TextStyleChange(t *testing.T) {
	v := renderTreeFor(NewText("same").Color(Red))

	patches := diffNodes(v.Tree().Root, NewText("same").Color(Blue))
	if len(patches) != 1 {
		t.Fatalf("patches = %d, want 1", len(patches))
	}
	if _, ok := patches[0].(UpdateTextPatch); !ok {
		t.Errorf("patch = %T, want UpdateTextPatch", patches[0])
	}
}

func TestDiff_RichTextSpanChange(t *testing.T) {
	v := renderTreeFor(NewRichText().Span("a", nil).Span("b", nil))

	patches := diffNodes(v.Tree().Root, NewRichText().Span("a", nil).Span("c", nil))
	if len(patches) != 1 {
		t.Fatalf("patches = %d, want 1", len(patches))
	}
	if _, ok := patches[0].(UpdateRichTextPatch); !ok {
		t.Errorf("patch = %T, want UpdateRichTextPatch", patches[0])
	}
}

func TestDiff_AddChildren(t *testing.T) {
	v := renderTreeFor(NewDiv().Child(NewText("a")))

	next := NewDiv().Child(NewText("a")).Child(NewText("b")).Child(NewText("c"))
	patches := diffNodes(v.Tree().Root, next)

	var adds []AddChildPatch
	for _, p := range patches {
		if add, ok := p.(AddChildPatch); ok {
			adds = append(adds, add)
		}
	}
	if len(adds) != 2 {
		t.Fatalf("adds = %d, want 2", len(adds))
	}
	if adds[0].Index != 1 || adds[1].Index != 2 {
		t.Errorf("add indices = %d,%d, want 1,2", adds[0].Index, adds[1].Index)
	}
}

// RemoveChild patches come in descending index order so sequential
// application never invalidates a later index.
func TestDiff_RemoveChildrenDescendingOrder(t *testing.T) {
	v := renderTreeFor(NewDiv().
		Child(NewText("a")).Child(NewText("b")).Child(NewText("c")).Child(NewText("d")))

	patches := diffNodes(v.Tree().Root, NewDiv().Child(NewText("a")))

	var removes []RemoveChildPatch
	for _, p := range patches {
		if rm, ok := p.(RemoveChildPatch); ok {
			removes = append(removes, rm)
		}
	}
	if len(removes) != 3 {
		t.Fatalf("removes = %d, want 3", len(removes))
	}
	for i := 1; i < len(removes); i++ {
		if removes[i].Index >= removes[i-1].Index {
			t.Fatalf("remove indices not descending: %d then %d", removes[i-1].Index, removes[i].Index)
		}
	}
}

func TestDiff_PropsChange(t *testing.T) {
	v := renderTreeFor(NewDiv().Background(Blue))

	patches := diffNodes(v.Tree().Root, NewDiv().Background(Red))
	if len(patches) != 1 {
		t.Fatalf("patches = %d, want 1", len(patches))
	}
	if _, ok := patches[0].(UpdatePropsPatch); !ok {
		t.Errorf("patch = %T, want UpdatePropsPatch", patches[0])
	}
}

func TestDiff_IdenticalDivsNoPatches(t *testing.T) {
	build := func() Node {
		return NewDiv().Background(Blue).Child(NewText("x").Color(White))
	}
	v := renderTreeFor(build())

	if patches := diffNodes(v.Tree().Root, build()); len(patches) != 0 {
		t.Errorf("patches = %d, want 0 for identical trees", len(patches))
	}
}

// structurallyEqual compares two render trees by kind, content, and props.
func structurallyEqual(a, b *RenderNode) bool {
	if a.Kind != b.Kind || a.Text != b.Text || !spansEqual(a.Spans, b.Spans) {
		return false
	}
	if !a.Styles.Equal(b.Styles) || a.Focusable != b.Focusable {
		return false
	}
	if !a.TextStyle.Equal(b.TextStyle) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !structurallyEqual(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// Applying the patch sequence from diff(R, V) to R yields a tree equal in
// structure and props to one built directly from V.
func TestDiff_PatchApplicationEquivalence(t *testing.T) {
	first := NewDiv().Background(Blue).
		Child(NewText("one")).
		Child(NewDiv().Child(NewText("two")).Child(NewText("three"))).
		Child(NewText("four"))

	second := NewDiv().Background(Red).
		Child(NewText("one!")).
		Child(NewRichText().Span("styled", NewTextStyle().Color(Green))).
		Child(NewDiv().WithFocusable().Child(NewText("deep")))

	patched := renderTreeFor(first)
	patched.Render(second)

	direct := renderTreeFor(second)

	if !structurallyEqual(patched.Tree().Root, direct.Tree().Root) {
		t.Errorf("patched tree differs from directly built tree:\n%s\nvs\n%s",
			patched.Tree().DebugString(), direct.Tree().DebugString())
	}
}

func TestDiff_RootReplace(t *testing.T) {
	v := renderTreeFor(NewText("root"))
	v.Render(NewDiv().Child(NewText("child")))

	root := v.Tree().Root
	if root.Kind != NodeElement {
		t.Fatalf("root kind = %v, want element", root.Kind)
	}
	if len(root.Children) != 1 || root.Children[0].Text != "child" {
		t.Error("replacement subtree not built")
	}
}
