package rxtui

// RenderNodeKind is the content type of a render node.
type RenderNodeKind uint8

const (
	// NodeElement is a container that can have children and styling.
	NodeElement RenderNodeKind = iota
	// NodeText is a single-line text leaf.
	NodeText
	// NodeTextWrapped is text broken into multiple lines.
	NodeTextWrapped
	// NodeRichText is a single line of styled spans.
	NodeRichText
	// NodeRichTextWrapped is styled spans broken into multiple lines.
	NodeRichTextWrapped
)

// RenderNode is a positioned node of the render tree, updated in place
// across frames. Parents exclusively own their children; the parent
// back-link is non-owning and used only for patch application.
type RenderNode struct {
	Kind RenderNodeKind

	// Content, depending on Kind.
	Text      string       // NodeText
	Lines     []string     // NodeTextWrapped
	Spans     []TextSpan   // NodeRichText
	SpanLines [][]TextSpan // NodeRichTextWrapped

	// Position and size in cells, never negative.
	X, Y          int
	Width, Height int

	// Style is the active composed style for the current state.
	Style *Style
	// TextStyle applies to text and rich-text nodes.
	TextStyle *TextStyle

	Children []*RenderNode
	Parent   *RenderNode

	// Styles holds the base/focus/hover snapshots composed per frame.
	Styles DivStyles
	Events EventCallbacks

	Focusable bool
	Focused   bool
	Hovered   bool
	Dirty     bool

	ZIndex       int
	PositionType Position

	// Scroll state. ScrollY is clamped to [0, ContentHeight-Height].
	ScrollY       int
	ContentWidth  int
	ContentHeight int
	Scrollable    bool

	// ComponentPath identifies the component that produced this node,
	// used for focus targeting.
	ComponentPath ComponentID
}

// newElementNode creates an empty container node.
func newElementNode() *RenderNode {
	return &RenderNode{Kind: NodeElement, Dirty: true}
}

// newTextNode creates a single-line text node.
func newTextNode(content string) *RenderNode {
	return &RenderNode{Kind: NodeText, Text: content, Dirty: true}
}

// Bounds returns the node's rectangle.
func (n *RenderNode) Bounds() Rect {
	return NewRect(n.X, n.Y, n.Width, n.Height)
}

// MarkDirty marks this node as needing a redraw.
func (n *RenderNode) MarkDirty() {
	n.Dirty = true
}

// IsTextKind reports whether the node is any text or rich-text variant.
func (n *RenderNode) IsTextKind() bool {
	switch n.Kind {
	case NodeText, NodeTextWrapped, NodeRichText, NodeRichTextWrapped:
		return true
	}
	return false
}

// AddChild appends a child and sets its parent back-link.
func (n *RenderNode) AddChild(child *RenderNode) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// styleDirection returns the layout direction, defaulting to vertical.
func (n *RenderNode) styleDirection() Direction {
	if n.Style != nil && n.Style.Dir != nil {
		return *n.Style.Dir
	}
	return Vertical
}

// stylePadding returns the padding, defaulting to zero.
func (n *RenderNode) stylePadding() Spacing {
	if n.Style != nil && n.Style.Padding != nil {
		return *n.Style.Padding
	}
	return Spacing{}
}

// borderEnabled reports whether the node draws a border.
func (n *RenderNode) borderEnabled() bool {
	return n.Style != nil && n.Style.Border != nil && n.Style.Border.Enabled
}

// borderOffset returns 1 when a border is enabled, else 0.
func (n *RenderNode) borderOffset() int {
	if n.borderEnabled() {
		return 1
	}
	return 0
}

// styleOverflow returns the overflow mode, defaulting to none.
func (n *RenderNode) styleOverflow() Overflow {
	if n.Style != nil && n.Style.Overflow != nil {
		return *n.Style.Overflow
	}
	return OverflowNone
}

// clipsChildren reports whether descendants are clipped to the padding box.
func (n *RenderNode) clipsChildren() bool {
	switch n.styleOverflow() {
	case OverflowHidden, OverflowScroll, OverflowAuto:
		return true
	}
	return false
}

// styleDimension returns the dimension along the given axis, or nil.
func (n *RenderNode) styleDimension(horizontal bool) *Dimension {
	if n.Style == nil {
		return nil
	}
	if horizontal {
		return n.Style.Width
	}
	return n.Style.Height
}

// applyComputedStyle installs a composed style and refreshes derived
// fields.
func (n *RenderNode) applyComputedStyle(style *Style) {
	if style != nil {
		if style.Width != nil && style.Width.Kind == DimFixed {
			n.Width = style.Width.Cells
		}
		if style.Height != nil && style.Height.Kind == DimFixed {
			n.Height = style.Height.Cells
		}
		if style.Position != nil {
			n.PositionType = *style.Position
		} else {
			n.PositionType = PositionRelative
		}
		if style.ZIndex != nil {
			n.ZIndex = *style.ZIndex
		} else {
			n.ZIndex = 0
		}
	} else {
		n.PositionType = PositionRelative
		n.ZIndex = 0
	}
	n.Style = style
}

// RefreshStateStyle recomposes the node style from its focus/hover state
// and marks the node dirty when the result changed.
func (n *RenderNode) RefreshStateStyle() {
	newStyle := ComposeStateStyle(n.Styles, n.Focusable, n.Focused, n.Hovered)
	changed := !n.Style.Equal(newStyle)
	n.applyComputedStyle(newStyle)
	if changed {
		n.MarkDirty()
	}
}

// MaxScrollY returns the maximum vertical scroll offset.
func (n *RenderNode) MaxScrollY() int {
	return max(0, n.ContentHeight-n.Height)
}

// UpdateScroll adjusts the vertical scroll offset by delta, clamping to the
// valid range. Returns true when the offset changed.
func (n *RenderNode) UpdateScroll(delta int) bool {
	if !n.Scrollable {
		return false
	}
	old := n.ScrollY
	n.ScrollY = min(max(0, n.ScrollY+delta), n.MaxScrollY())
	return n.ScrollY != old
}

// SetScrollY sets the vertical scroll offset, clamping to the valid range.
func (n *RenderNode) SetScrollY(y int) {
	if !n.Scrollable {
		return
	}
	n.ScrollY = min(max(0, y), n.MaxScrollY())
}

// visualHeight returns the vertical extent used for clipping. Wrapped text
// nodes can carry more lines than their laid-out height.
func (n *RenderNode) visualHeight() int {
	switch n.Kind {
	case NodeTextWrapped:
		return max(n.Height, len(n.Lines))
	case NodeRichTextWrapped:
		return max(n.Height, len(n.SpanLines))
	}
	return n.Height
}

// naturalWidth returns the unwrapped display width of the node's content.
func (n *RenderNode) naturalWidth() int {
	switch n.Kind {
	case NodeText:
		return DisplayWidth(n.Text)
	case NodeTextWrapped:
		w := 0
		for _, line := range n.Lines {
			w = max(w, DisplayWidth(line))
		}
		return w
	case NodeRichText:
		return spanWidth(n.Spans)
	case NodeRichTextWrapped:
		w := 0
		for _, line := range n.SpanLines {
			w = max(w, spanWidth(line))
		}
		return w
	}
	return 0
}

// naturalHeight returns the line count of the node's content.
func (n *RenderNode) naturalHeight() int {
	switch n.Kind {
	case NodeText, NodeRichText:
		return 1
	case NodeTextWrapped:
		return len(n.Lines)
	case NodeRichTextWrapped:
		return len(n.SpanLines)
	}
	return 0
}

// applyTextWrapping converts a text or rich-text node to its wrapped form
// when a wrap mode is set, updating dimensions to the wrapped extent.
func (n *RenderNode) applyTextWrapping(availableWidth int) {
	mode := n.TextStyle.WrapMode()
	if mode == TextWrapNone || availableWidth <= 0 {
		return
	}

	switch n.Kind {
	case NodeText:
		lines := WrapText(n.Text, availableWidth, mode)
		n.Kind = NodeTextWrapped
		n.Lines = lines
		n.Height = len(lines)
		w := 0
		for _, line := range lines {
			w = max(w, DisplayWidth(line))
		}
		n.setWrappedWidth(w)
	case NodeRichText:
		lines := wrapSpans(n.Spans, availableWidth, mode)
		if len(lines) == 0 {
			return
		}
		n.Kind = NodeRichTextWrapped
		n.SpanLines = lines
		n.Height = len(lines)
		w := 0
		for _, line := range lines {
			w = max(w, spanWidth(line))
		}
		n.setWrappedWidth(w)
	}
}

// setWrappedWidth installs the wrapped extent, keeping a wider width the
// parent assigned for alignment so per-line alignment stays meaningful.
func (n *RenderNode) setWrappedWidth(w int) {
	if _, aligned := n.TextStyle.Alignment(); aligned && n.Width > w {
		return
	}
	n.Width = w
}

// wrapSpans wraps a span sequence, re-deriving per-character span styles so
// each output line carries correctly styled segments.
func wrapSpans(spans []TextSpan, width int, mode TextWrap) [][]TextSpan {
	type charStyle struct {
		spanIdx  int
		style    *TextStyle
		isCursor bool
	}

	var charStyles []charStyle
	var full []rune
	for idx, span := range spans {
		for _, r := range span.Content {
			charStyles = append(charStyles, charStyle{spanIdx: idx, style: span.Style, isCursor: span.IsCursor})
			full = append(full, r)
		}
	}

	wrapped := WrapText(string(full), width, mode)

	var out [][]TextSpan
	offset := 0
	for _, line := range wrapped {
		var lineSpans []TextSpan
		curIdx := -1
		var cur TextSpan

		for _, r := range line {
			if offset >= len(charStyles) {
				break
			}
			cs := charStyles[offset]
			if curIdx != cs.spanIdx || cur.IsCursor != cs.isCursor || !cur.Style.Equal(cs.style) {
				if cur.Content != "" {
					lineSpans = append(lineSpans, cur)
				}
				cur = TextSpan{Style: cs.style, IsCursor: cs.isCursor}
				curIdx = cs.spanIdx
			}
			cur.Content += string(r)
			offset++
		}
		if cur.Content != "" {
			lineSpans = append(lineSpans, cur)
		}
		if len(lineSpans) > 0 {
			out = append(out, lineSpans)
		}
	}
	return out
}
