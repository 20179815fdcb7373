package rxtui

// VDom owns the current render tree and applies the patches produced by
// diffing each frame's virtual tree against it.
type VDom struct {
	tree *RenderTree
}

// NewVDom creates an empty virtual DOM.
func NewVDom() *VDom {
	return &VDom{tree: NewRenderTree()}
}

// Tree returns the render tree for drawing and event handling.
func (v *VDom) Tree() *RenderTree {
	return v.tree
}

// Render updates the UI to match the given virtual tree: the first call
// materializes a render tree; subsequent calls diff and patch in place.
func (v *VDom) Render(node Node) {
	if v.tree.Root == nil {
		v.tree.SetRoot(buildRenderNode(node))
		return
	}
	for _, patch := range diffNodes(v.tree.Root, node) {
		v.applyPatch(patch)
	}
}

// Layout positions and sizes the render tree for the viewport.
func (v *VDom) Layout(width, height int) {
	v.tree.Layout(width, height)
}

// LayoutWithOptions performs layout, optionally without clamping the root
// height to the viewport (inline mode).
func (v *VDom) LayoutWithOptions(width, height int, unclampedHeight bool) {
	v.tree.LayoutWithOptions(width, height, unclampedHeight)
}

// buildRenderNode materializes a render node (and its subtree) from a
// virtual node.
func buildRenderNode(node Node) *RenderNode {
	switch vn := node.(type) {
	case *Div:
		rn := newElementNode()
		rn.Styles = vn.Styles
		rn.Events = vn.Events
		rn.Focusable = vn.Focusable
		rn.Focused = vn.Focused
		rn.Hovered = vn.Hovered
		rn.ComponentPath = vn.ComponentPath
		rn.RefreshStateStyle()
		for _, child := range vn.Children {
			rn.AddChild(buildRenderNode(child))
		}
		return rn

	case *Text:
		rn := newTextNode(vn.Content)
		rn.Width = DisplayWidth(vn.Content)
		rn.Height = 1
		applyTextNodeStyle(rn, vn.Style)
		return rn

	case *RichText:
		rn := &RenderNode{Kind: NodeRichText, Spans: vn.Spans, Dirty: true}
		rn.Width = spanWidth(vn.Spans)
		rn.Height = 1
		rn.TextStyle = vn.Style
		return rn

	default:
		// Component nodes never reach the vdom; render an empty element so
		// a stray one degrades gracefully.
		return newElementNode()
	}
}

// applyTextNodeStyle installs a text style on a text node, lifting an
// explicit background into the node's container style so background fill
// logic sees it.
func applyTextNodeStyle(rn *RenderNode, ts *TextStyle) {
	rn.TextStyle = ts
	if ts != nil && ts.Bg != nil {
		rn.Style = &Style{Bg: ts.Bg}
	} else {
		rn.Style = nil
	}
}

// applyPatch applies a single patch to the render tree, marking affected
// nodes (and the parent, for structural patches) dirty.
func (v *VDom) applyPatch(patch Patch) {
	switch p := patch.(type) {
	case ReplacePatch:
		replacement := buildRenderNode(p.New)
		replacement.MarkDirty()

		// The old subtree may have held focus or hover; drop stale pointers.
		if v.tree.FocusedNode() != nil && nodeContains(p.Old, v.tree.FocusedNode()) {
			v.tree.SetFocusedNode(nil)
		}
		if v.tree.HoveredNode() != nil && nodeContains(p.Old, v.tree.HoveredNode()) {
			v.tree.SetHoveredNode(nil)
		}

		parent := p.Old.Parent
		if parent == nil {
			v.tree.SetRoot(replacement)
			return
		}
		for i, child := range parent.Children {
			if child == p.Old {
				parent.Children[i] = replacement
				replacement.Parent = parent
				break
			}
		}
		parent.MarkDirty()

	case UpdateTextPatch:
		n := p.Node
		n.Kind = NodeText
		n.Text = p.Text
		n.Lines = nil
		// Height is recomputed during layout since wrapping may change it.
		n.Width = DisplayWidth(p.Text)
		applyTextNodeStyle(n, p.Style)
		n.MarkDirty()

	case UpdateRichTextPatch:
		n := p.Node
		n.Kind = NodeRichText
		n.Spans = p.Spans
		n.SpanLines = nil
		n.Width = spanWidth(p.Spans)
		n.TextStyle = p.Style
		n.MarkDirty()

	case UpdatePropsPatch:
		n := p.Node
		// Focus and hover flags belong to the render tree, not the frame's
		// virtual node; preserve them across the update.
		n.Styles = p.Div.Styles
		n.Events = p.Div.Events
		n.Focusable = p.Div.Focusable
		n.ComponentPath = p.Div.ComponentPath
		n.RefreshStateStyle()
		n.MarkDirty()

	case AddChildPatch:
		child := buildRenderNode(p.Child)
		parent := p.Parent
		if p.Index >= len(parent.Children) {
			parent.Children = append(parent.Children, child)
		} else {
			parent.Children = append(parent.Children, nil)
			copy(parent.Children[p.Index+1:], parent.Children[p.Index:])
			parent.Children[p.Index] = child
		}
		child.Parent = parent
		parent.MarkDirty()

	case RemoveChildPatch:
		parent := p.Parent
		if p.Index < len(parent.Children) {
			removed := parent.Children[p.Index]
			if v.tree.FocusedNode() != nil && nodeContains(removed, v.tree.FocusedNode()) {
				v.tree.SetFocusedNode(nil)
			}
			if v.tree.HoveredNode() != nil && nodeContains(removed, v.tree.HoveredNode()) {
				v.tree.SetHoveredNode(nil)
			}
			parent.Children = append(parent.Children[:p.Index], parent.Children[p.Index+1:]...)
		}
		parent.MarkDirty()
	}
}

// nodeContains reports whether target is n or one of its descendants.
func nodeContains(n, target *RenderNode) bool {
	if n == target {
		return true
	}
	for _, child := range n.Children {
		if nodeContains(child, target) {
			return true
		}
	}
	return false
}
