package rxtui

import (
	"fmt"
	"strings"
)

// RenderTree owns the root render node and tracks focus and hover state.
// At most one node is focused at any time, tree-wide.
type RenderTree struct {
	Root *RenderNode

	focused *RenderNode
	hovered *RenderNode
}

// NewRenderTree creates an empty render tree.
func NewRenderTree() *RenderTree {
	return &RenderTree{}
}

// SetRoot replaces the root node.
func (t *RenderTree) SetRoot(root *RenderNode) {
	t.Root = root
}

// Layout positions and sizes the whole tree within the viewport.
func (t *RenderTree) Layout(viewportWidth, viewportHeight int) {
	t.LayoutWithOptions(viewportWidth, viewportHeight, false)
}

// LayoutWithOptions performs layout; when unclampedHeight is set, the root
// height is not clamped to the viewport (used by inline mode, where content
// may grow beyond the visible region).
func (t *RenderTree) LayoutWithOptions(viewportWidth, viewportHeight int, unclampedHeight bool) {
	root := t.Root
	if root == nil {
		return
	}

	root.X = 0
	root.Y = 0

	intrinsicW, intrinsicH := root.IntrinsicSize()

	clampH := func(h int) int {
		if unclampedHeight {
			return h
		}
		return min(h, viewportHeight)
	}

	var widthDim, heightDim *Dimension
	if root.Style != nil {
		widthDim = root.Style.Width
		heightDim = root.Style.Height
	}

	switch {
	case widthDim == nil:
		root.Width = min(intrinsicW, viewportWidth)
	case widthDim.Kind == DimFixed:
		root.Width = min(widthDim.Cells, viewportWidth)
	case widthDim.Kind == DimPercentage:
		root.Width = min(max(1, int(float64(viewportWidth)*widthDim.Frac)), viewportWidth)
	case widthDim.Kind == DimContent:
		root.Width = min(intrinsicW, viewportWidth)
	default: // DimAuto: the root fills the viewport.
		root.Width = viewportWidth
	}

	switch {
	case heightDim == nil:
		root.Height = clampH(intrinsicH)
	case heightDim.Kind == DimFixed:
		root.Height = clampH(heightDim.Cells)
	case heightDim.Kind == DimPercentage:
		h := max(1, int(float64(viewportHeight)*heightDim.Frac))
		root.Height = clampH(h)
	case heightDim.Kind == DimContent:
		root.Height = clampH(intrinsicH)
	default: // DimAuto
		root.Height = viewportHeight
	}

	root.layoutChildren()
}

// FindNodeAt returns the topmost non-text node containing the point, or nil.
// The search descends children before parents, adjusts for accumulated
// scroll, and rejects children outside an overflow-clipping parent's box.
// Text nodes are transparent to clicks.
func (t *RenderTree) FindNodeAt(x, y int) *RenderNode {
	if t.Root == nil {
		return nil
	}
	return findNodeAt(t.Root, x, y, nil, 0)
}

func findNodeAt(n *RenderNode, x, y int, clip *Rect, parentScroll int) *RenderNode {
	// Signed scroll accounting: a node scrolled partially above the clip
	// region keeps only its visible rows; fully above means no hit.
	renderedY := n.Y - parentScroll
	height := n.Height
	if renderedY < 0 {
		height += renderedY
		renderedY = 0
	}
	bounds := NewRect(n.X, renderedY, n.Width, height)

	hit := !bounds.IsEmpty() && bounds.Contains(x, y)
	if clip != nil {
		hit = hit && clip.Contains(x, y)
	}

	// Overflow-clipping containers restrict their children's click area.
	childClip := clip
	if n.clipsChildren() {
		clipped := bounds
		if clip != nil {
			clipped = bounds.Intersect(*clip)
		}
		childClip = &clipped
	}

	childScroll := parentScroll
	if n.Scrollable {
		childScroll += n.ScrollY
	}

	for _, child := range n.Children {
		if found := findNodeAt(child, x, y, childClip, childScroll); found != nil {
			if found.IsTextKind() {
				continue
			}
			return found
		}
	}

	if hit && !n.IsTextKind() {
		return n
	}
	return nil
}

// CollectFocusableNodes returns the focusable nodes in tab order: the
// depth-first pre-order of the tree.
func (t *RenderTree) CollectFocusableNodes() []*RenderNode {
	var nodes []*RenderNode
	var walk func(*RenderNode)
	walk = func(n *RenderNode) {
		if n.Focusable {
			nodes = append(nodes, n)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	if t.Root != nil {
		walk(t.Root)
	}
	return nodes
}

// FocusedNode returns the currently focused node, or nil.
func (t *RenderTree) FocusedNode() *RenderNode {
	return t.focused
}

// SetFocusedNode moves focus to the given node (or clears it when nil).
// The previous node's OnBlur fires before its flag is unset; the new node's
// OnFocus fires after its flag is set. Refocusing the same node is a no-op.
func (t *RenderTree) SetFocusedNode(node *RenderNode) {
	if t.focused == node && node != nil {
		return
	}

	if prev := t.focused; prev != nil {
		if prev.Events.OnBlur != nil {
			prev.Events.OnBlur()
		}
		prev.Focused = false
		prev.RefreshStateStyle()
	}

	if node != nil {
		node.Focused = true
		if node.Events.OnFocus != nil {
			node.Events.OnFocus()
		}
		node.RefreshStateStyle()
	}

	t.focused = node
}

// HoveredNode returns the currently hovered node, or nil.
func (t *RenderTree) HoveredNode() *RenderNode {
	return t.hovered
}

// SetHoveredNode moves hover state to the given node (or clears it).
func (t *RenderTree) SetHoveredNode(node *RenderNode) {
	if t.hovered == node {
		return
	}

	if prev := t.hovered; prev != nil {
		prev.Hovered = false
		prev.RefreshStateStyle()
	}
	if node != nil {
		node.Hovered = true
		node.RefreshStateStyle()
	}
	t.hovered = node
}

// FocusNext moves focus to the next focusable node in tab order, wrapping
// around at the end.
func (t *RenderTree) FocusNext() {
	focusable := t.CollectFocusableNodes()
	if len(focusable) == 0 {
		return
	}

	next := 0
	if idx := indexOfNode(focusable, t.focused); idx >= 0 {
		next = (idx + 1) % len(focusable)
	}
	t.SetFocusedNode(focusable[next])
}

// FocusPrev moves focus to the previous focusable node, wrapping around at
// the start.
func (t *RenderTree) FocusPrev() {
	focusable := t.CollectFocusableNodes()
	if len(focusable) == 0 {
		return
	}

	prev := len(focusable) - 1
	if idx := indexOfNode(focusable, t.focused); idx > 0 {
		prev = idx - 1
	} else if idx == 0 {
		prev = len(focusable) - 1
	}
	t.SetFocusedNode(focusable[prev])
}

func indexOfNode(nodes []*RenderNode, target *RenderNode) int {
	if target == nil {
		return -1
	}
	for i, n := range nodes {
		if n == target {
			return i
		}
	}
	return -1
}

// FindComponentRoot returns the render node produced by the component at
// the given identity, or nil.
func (t *RenderTree) FindComponentRoot(id ComponentID) *RenderNode {
	var find func(*RenderNode) *RenderNode
	find = func(n *RenderNode) *RenderNode {
		if n.ComponentPath == id && n.ComponentPath != "" {
			return n
		}
		for _, child := range n.Children {
			if found := find(child); found != nil {
				return found
			}
		}
		return nil
	}
	if t.Root == nil {
		return nil
	}
	return find(t.Root)
}

// FindFirstFocusableIn returns the first focusable node within the subtree.
func (t *RenderTree) FindFirstFocusableIn(node *RenderNode) *RenderNode {
	if node == nil {
		return nil
	}
	if node.Focusable {
		return node
	}
	for _, child := range node.Children {
		if found := t.FindFirstFocusableIn(child); found != nil {
			return found
		}
	}
	return nil
}

// FindFirstFocusable returns the first focusable node in the whole tree.
func (t *RenderTree) FindFirstFocusable() *RenderNode {
	return t.FindFirstFocusableIn(t.Root)
}

// ClearAllDirty clears dirty flags across the tree.
func (t *RenderTree) ClearAllDirty() {
	var walk func(*RenderNode)
	walk = func(n *RenderNode) {
		n.Dirty = false
		for _, child := range n.Children {
			walk(child)
		}
	}
	if t.Root != nil {
		walk(t.Root)
	}
}

// DebugString returns an indented textual dump of the render tree usable by
// test harnesses and log hooks.
func (t *RenderTree) DebugString() string {
	var sb strings.Builder
	sb.WriteString("=== Render Tree ===\n")
	if t.Root == nil {
		sb.WriteString("(empty)\n")
	} else {
		debugNode(t.Root, &sb, 0)
	}
	sb.WriteString("==================\n")
	return sb.String()
}

func debugNode(n *RenderNode, sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)

	switch n.Kind {
	case NodeElement:
		fmt.Fprintf(sb, "%sDiv @ (%d, %d) [%dx%d]", indent, n.X, n.Y, n.Width, n.Height)
	case NodeText:
		fmt.Fprintf(sb, "%sText @ (%d, %d) [%dx%d]: %q", indent, n.X, n.Y, n.Width, n.Height, n.Text)
	case NodeTextWrapped:
		fmt.Fprintf(sb, "%sTextWrapped @ (%d, %d) [%dx%d]: %d lines", indent, n.X, n.Y, n.Width, n.Height, len(n.Lines))
	case NodeRichText:
		fmt.Fprintf(sb, "%sRichText @ (%d, %d) [%dx%d]: %d spans", indent, n.X, n.Y, n.Width, n.Height, len(n.Spans))
	case NodeRichTextWrapped:
		fmt.Fprintf(sb, "%sRichTextWrapped @ (%d, %d) [%dx%d]: %d lines", indent, n.X, n.Y, n.Width, n.Height, len(n.SpanLines))
	}

	if n.Style != nil {
		if n.Style.Bg != nil {
			fmt.Fprintf(sb, " bg:%v", *n.Style.Bg)
		}
		if n.Style.Dir != nil {
			fmt.Fprintf(sb, " dir:%d", *n.Style.Dir)
		}
		if n.Style.Padding != nil {
			p := *n.Style.Padding
			fmt.Fprintf(sb, " pad:(%d,%d,%d,%d)", p.Top, p.Right, p.Bottom, p.Left)
		}
		if n.Style.Overflow != nil {
			fmt.Fprintf(sb, " overflow:%d", *n.Style.Overflow)
		}
	}
	if n.Scrollable {
		fmt.Fprintf(sb, " scroll_y:%d/%d", n.ScrollY, n.MaxScrollY())
	}
	if n.Focused {
		sb.WriteString(" [FOCUSED]")
	}
	if n.Dirty {
		sb.WriteString(" [DIRTY]")
	}
	sb.WriteByte('\n')

	for _, child := range n.Children {
		debugNode(child, sb, depth+1)
	}
}
