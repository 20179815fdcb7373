package rxtui

import (
	"strings"
	"testing"
)

func focusableTree(t *testing.T, count int) *RenderTree {
	t.Helper()
	div := NewDiv().Width(20).Height(10)
	for i := 0; i < count; i++ {
		div.Child(NewDiv().Width(5).Height(1).WithFocusable())
	}
	v := NewVDom()
	v.Render(div)
	v.Layout(20, 10)
	return v.Tree()
}

// After SetFocusedNode(x), exactly one node in the tree is focused, and it
// is x; on_blur fires on the previous holder before on_focus on the new.
func TestTree_SetFocusedNode(t *testing.T) {
	var calls []string

	v := NewVDom()
	v.Render(NewDiv().
		Child(NewDiv().WithFocusable().
			OnFocus(func() { calls = append(calls, "focus-a") }).
			OnBlur(func() { calls = append(calls, "blur-a") })).
		Child(NewDiv().WithFocusable().
			OnFocus(func() { calls = append(calls, "focus-b") }).
			OnBlur(func() { calls = append(calls, "blur-b") })))
	tree := v.Tree()

	a := tree.Root.Children[0]
	b := tree.Root.Children[1]

	tree.SetFocusedNode(a)
	tree.SetFocusedNode(b)

	want := []string{"focus-a", "blur-a", "focus-b"}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Errorf("callback order = %v, want %v", calls, want)
	}

	focusedCount := 0
	var check func(*RenderNode)
	check = func(n *RenderNode) {
		if n.Focused {
			focusedCount++
			if n != b {
				t.Error("a node other than the target is focused")
			}
		}
		for _, c := range n.Children {
			check(c)
		}
	}
	check(tree.Root)
	if focusedCount != 1 {
		t.Errorf("focused nodes = %d, want exactly 1", focusedCount)
	}
}

func TestTree_SetFocusedNode_SameNodeNoOp(t *testing.T) {
	blurs := 0
	v := NewVDom()
	v.Render(NewDiv().Child(NewDiv().WithFocusable().OnBlur(func() { blurs++ })))
	tree := v.Tree()

	node := tree.Root.Children[0]
	tree.SetFocusedNode(node)
	tree.SetFocusedNode(node)
	if blurs != 0 {
		t.Errorf("refocusing the same node fired blur %d times", blurs)
	}
}

func TestTree_SetFocusedNode_AppliesFocusStyle(t *testing.T) {
	v := NewVDom()
	v.Render(NewDiv().Child(NewDiv().WithFocusable()))
	tree := v.Tree()

	node := tree.Root.Children[0]
	tree.SetFocusedNode(node)
	if node.Style == nil || node.Style.Border == nil {
		t.Fatal("focused node should carry the default focus border")
	}
	tree.SetFocusedNode(nil)
	if node.Style != nil && node.Style.Border != nil {
		t.Error("blurred node should drop the focus border")
	}
}

// Repeated FocusNext calls cycle through the focusable nodes in DFS
// pre-order and return to the start after N calls.
func TestTree_FocusNextCycles(t *testing.T) {
	tree := focusableTree(t, 4)
	focusable := tree.CollectFocusableNodes()
	if len(focusable) != 4 {
		t.Fatalf("focusable = %d, want 4", len(focusable))
	}

	tree.FocusNext()
	start := tree.FocusedNode()
	if start != focusable[0] {
		t.Fatal("first FocusNext should land on the first focusable node")
	}

	for i := 0; i < len(focusable); i++ {
		tree.FocusNext()
	}
	if tree.FocusedNode() != start {
		t.Error("N FocusNext calls should return to the starting node")
	}
}

func TestTree_FocusPrevWrapsAround(t *testing.T) {
	tree := focusableTree(t, 3)
	focusable := tree.CollectFocusableNodes()

	tree.FocusNext() // first
	tree.FocusPrev()
	if tree.FocusedNode() != focusable[2] {
		t.Error("FocusPrev from the first node should wrap to the last")
	}
}

func TestTree_FindNodeAt_TopmostChild(t *testing.T) {
	v := NewVDom()
	v.Render(NewDiv().Width(20).Height(10).
		Child(NewDiv().Width(5).Height(5)))
	v.Layout(20, 10)
	tree := v.Tree()

	if got := tree.FindNodeAt(2, 2); got != tree.Root.Children[0] {
		t.Error("click inside child should return the child")
	}
	if got := tree.FindNodeAt(10, 8); got != tree.Root {
		t.Error("click outside children should return the container")
	}
	if got := tree.FindNodeAt(50, 50); got != nil {
		t.Errorf("click outside the tree = %+v, want nil", got)
	}
}

// Text nodes are transparent to clicks.
func TestTree_FindNodeAt_TextTransparent(t *testing.T) {
	v := NewVDom()
	v.Render(NewDiv().Width(10).Height(1).
		Child(NewText("clickme")))
	v.Layout(10, 1)
	tree := v.Tree()

	if got := tree.FindNodeAt(2, 0); got != tree.Root {
		t.Error("click on text should fall through to the containing div")
	}
}

// A child scrolled above the viewport is not hit; the
// click lands on the scroll container.
func TestTree_FindNodeAt_ScrolledChildAboveViewport(t *testing.T) {
	div := NewDiv().Width(10).Height(5).Overflow(OverflowScroll)
	for i := 0; i < 8; i++ {
		div.Child(NewDiv().Width(10).Height(1))
	}
	v := NewVDom()
	v.Render(div)
	v.Layout(10, 5)
	tree := v.Tree()
	tree.Root.SetScrollY(3)

	got := tree.FindNodeAt(0, 0)
	if got == nil {
		t.Fatal("hit returned nil, want the scroll container or visible child")
	}
	// The child logically at y=2 has scrolled above the clip region; the
	// hit at (0,0) must resolve to the child at y=3 (now at row 0), never
	// to the y=2 child.
	if got == tree.Root.Children[2] {
		t.Error("hit returned a child scrolled out of view")
	}
	if got != tree.Root.Children[3] {
		t.Errorf("hit should land on the child now at row 0")
	}
}

func TestTree_FindNodeAt_OverflowClipsClicks(t *testing.T) {
	v := NewVDom()
	v.Render(NewDiv().Width(20).Height(10).
		Child(NewDiv().Width(5).Height(3).Overflow(OverflowHidden).
			Child(NewDiv().Width(12).Height(8))))
	v.Layout(20, 10)
	tree := v.Tree()

	inner := tree.Root.Children[0].Children[0]
	if got := tree.FindNodeAt(2, 2); got != inner {
		t.Error("click inside the clip region should reach the inner child")
	}
	// The inner child extends to (11,7) but is clipped at (5,3).
	if got := tree.FindNodeAt(8, 5); got == inner {
		t.Error("click outside the clip region should not reach the clipped child")
	}
}

func TestTree_SetHoveredNode(t *testing.T) {
	v := NewVDom()
	v.Render(NewDiv().
		Child(NewDiv().WithFocusable().HoverStyle(NewStyle().Background(Red))))
	tree := v.Tree()

	node := tree.Root.Children[0]
	tree.SetHoveredNode(node)
	if !node.Hovered {
		t.Error("hover flag not set")
	}
	if node.Style == nil || node.Style.Bg == nil || !node.Style.Bg.Equal(Red) {
		t.Error("hover overlay not applied")
	}

	tree.SetHoveredNode(nil)
	if node.Hovered {
		t.Error("hover flag not cleared")
	}
}

func TestTree_DebugString(t *testing.T) {
	v := NewVDom()
	v.Render(NewDiv().Width(10).Height(2).
		Child(NewText("hi")))
	v.Layout(10, 2)

	dump := v.Tree().DebugString()
	if !strings.Contains(dump, "=== Render Tree ===") {
		t.Error("dump missing header")
	}
	if !strings.Contains(dump, "Div @ (0, 0) [10x2]") {
		t.Errorf("dump missing root line:\n%s", dump)
	}
	if !strings.Contains(dump, `Text @ (0, 0) [2x1]: "hi"`) {
		t.Errorf("dump missing text line:\n%s", dump)
	}
}

func TestTree_EmptyDebugString(t *testing.T) {
	tree := NewRenderTree()
	if !strings.Contains(tree.DebugString(), "(empty)") {
		t.Error("empty tree dump should say (empty)")
	}
}
