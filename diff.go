package rxtui

// Patch is a structural change produced by diffing a new virtual tree
// against the current render tree.
type Patch interface {
	isPatch()
}

// ReplacePatch swaps an entire render node for a newly built one.
type ReplacePatch struct {
	Old *RenderNode
	New Node
}

// UpdateTextPatch changes a text node's content and style.
type UpdateTextPatch struct {
	Node  *RenderNode
	Text  string
	Style *TextStyle
}

// UpdateRichTextPatch changes a rich text node's spans and style.
type UpdateRichTextPatch struct {
	Node  *RenderNode
	Spans []TextSpan
	Style *TextStyle
}

// UpdatePropsPatch updates a div's styles, events, and flags in place.
type UpdatePropsPatch struct {
	Node *RenderNode
	Div  *Div
}

// AddChildPatch inserts a new child at an index.
type AddChildPatch struct {
	Parent *RenderNode
	Child  Node
	Index  int
}

// RemoveChildPatch removes the child at an index. For a single parent,
// removals are emitted in descending index order so earlier patches never
// invalidate later indices.
type RemoveChildPatch struct {
	Parent *RenderNode
	Index  int
}

func (ReplacePatch) isPatch()        {}
func (UpdateTextPatch) isPatch()     {}
func (UpdateRichTextPatch) isPatch() {}
func (UpdatePropsPatch) isPatch()    {}
func (AddChildPatch) isPatch()       {}
func (RemoveChildPatch) isPatch()    {}

// diffNodes walks the current render node and the new virtual node
// pairwise and emits the patches needed to make the render tree match.
func diffNodes(current *RenderNode, next Node) []Patch {
	var patches []Patch
	collectDiff(current, next, &patches)
	return patches
}

func collectDiff(current *RenderNode, next Node, patches *[]Patch) {
	switch vn := next.(type) {
	case *Text:
		if current.Kind != NodeText && current.Kind != NodeTextWrapped {
			*patches = append(*patches, ReplacePatch{Old: current, New: next})
			return
		}
		if current.Text != vn.Content || !current.TextStyle.Equal(vn.Style) {
			*patches = append(*patches, UpdateTextPatch{Node: current, Text: vn.Content, Style: vn.Style})
		}

	case *RichText:
		if current.Kind != NodeRichText && current.Kind != NodeRichTextWrapped {
			*patches = append(*patches, ReplacePatch{Old: current, New: next})
			return
		}
		if !spansEqual(current.Spans, vn.Spans) || !current.TextStyle.Equal(vn.Style) {
			*patches = append(*patches, UpdateRichTextPatch{Node: current, Spans: vn.Spans, Style: vn.Style})
		}

	case *Div:
		if current.Kind != NodeElement {
			*patches = append(*patches, ReplacePatch{Old: current, New: next})
			return
		}

		if divPropsChanged(current, vn) {
			*patches = append(*patches, UpdatePropsPatch{Node: current, Div: vn})
		}

		// Pair children by index: recurse over the common prefix, add
		// surplus new children, and remove surplus old ones in descending
		// index order so indices stay valid as patches apply.
		common := min(len(current.Children), len(vn.Children))
		for i := 0; i < common; i++ {
			collectDiff(current.Children[i], vn.Children[i], patches)
		}
		for i := common; i < len(vn.Children); i++ {
			*patches = append(*patches, AddChildPatch{Parent: current, Child: vn.Children[i], Index: i})
		}
		for i := len(current.Children) - 1; i >= common; i-- {
			*patches = append(*patches, RemoveChildPatch{Parent: current, Index: i})
		}

	default:
		// Component nodes should have been expanded away; anything
		// unrecognized gets rebuilt.
		*patches = append(*patches, ReplacePatch{Old: current, New: next})
	}
}

// divPropsChanged reports whether a div's props require an UpdateProps
// patch. Event closures are re-created on every view, so the presence of
// any handler on either side counts as a change (the fresh closures must
// be installed).
func divPropsChanged(current *RenderNode, next *Div) bool {
	if !current.Styles.Equal(next.Styles) {
		return true
	}
	if current.Focusable != next.Focusable {
		return true
	}
	if current.ComponentPath != next.ComponentPath {
		return true
	}
	return !current.Events.empty() || !next.Events.empty()
}
