package rxtui

// Node is one element of the tree a component's View returns.
// Concrete kinds: *Div, *Text, *RichText, and *ComponentNode. Component
// nodes are expanded away before the tree reaches the diff engine; expanded
// trees contain only the first three kinds.
type Node interface {
	isNode()
}

// KeyHandler binds a key chord to a callback on an element.
// Plain-key handlers match regardless of modifiers; chord handlers match
// the exact modifier set and are dispatched first.
type KeyHandler struct {
	Chord  KeyChord
	Global bool
	Fn     func()
}

// EventCallbacks holds the event handlers registered on a div.
type EventCallbacks struct {
	OnClick func()

	// OnKeyChord handlers match key+modifier exactly; checked before OnKey.
	OnKeyChord []KeyHandler
	// OnKey handlers match the key alone.
	OnKey []KeyHandler

	// OnAnyChar fires for any printable character while focused.
	OnAnyChar func(rune)
	// OnAnyKey fires for any key while focused.
	OnAnyKey func(KeyEvent)

	OnFocus func()
	OnBlur  func()
}

// empty reports whether no handlers are registered.
func (e EventCallbacks) empty() bool {
	return e.OnClick == nil &&
		len(e.OnKeyChord) == 0 &&
		len(e.OnKey) == 0 &&
		e.OnAnyChar == nil &&
		e.OnAnyKey == nil &&
		e.OnFocus == nil &&
		e.OnBlur == nil
}

// Div is a layout container with styling, children, and event handlers.
type Div struct {
	Children      []Node
	Styles        DivStyles
	Events        EventCallbacks
	Focusable     bool
	Focused       bool
	Hovered       bool
	ComponentPath ComponentID
}

func (*Div) isNode() {}

// NewDiv creates an empty div.
func NewDiv() *Div {
	return &Div{}
}

// base returns the base style, allocating it on first use.
func (d *Div) base() *Style {
	if d.Styles.Base == nil {
		d.Styles.Base = &Style{}
	}
	return d.Styles.Base
}

// Child appends a child node.
func (d *Div) Child(n Node) *Div {
	d.Children = append(d.Children, n)
	return d
}

// WithChildren appends multiple child nodes.
func (d *Div) WithChildren(nodes ...Node) *Div {
	d.Children = append(d.Children, nodes...)
	return d
}

// Background sets the background fill color.
func (d *Div) Background(c Color) *Div {
	d.base().Bg = &c
	return d
}

// Direction sets the layout direction for children.
func (d *Div) Direction(dir Direction) *Div {
	d.base().Dir = &dir
	return d
}

// Padding sets the inner spacing around content.
func (d *Div) Padding(p Spacing) *Div {
	d.base().Padding = &p
	return d
}

// Overflow sets the overflow behavior.
func (d *Div) Overflow(o Overflow) *Div {
	d.base().Overflow = &o
	return d
}

// Width sets a fixed width in cells.
func (d *Div) Width(cells int) *Div {
	return d.WidthDim(Fixed(cells))
}

// WidthPct sets the width as a fraction of the parent (clamped to [0, 1]).
func (d *Div) WidthPct(frac float64) *Div {
	return d.WidthDim(Pct(frac))
}

// WidthContent sizes the width to the children's natural extent.
func (d *Div) WidthContent() *Div {
	return d.WidthDim(Content())
}

// WidthAuto shares leftover width equally with Auto siblings.
func (d *Div) WidthAuto() *Div {
	return d.WidthDim(Auto())
}

// WidthDim sets the width dimension directly.
func (d *Div) WidthDim(dim Dimension) *Div {
	d.base().Width = &dim
	return d
}

// Height sets a fixed height in cells.
func (d *Div) Height(cells int) *Div {
	return d.HeightDim(Fixed(cells))
}

// HeightPct sets the height as a fraction of the parent (clamped to [0, 1]).
func (d *Div) HeightPct(frac float64) *Div {
	return d.HeightDim(Pct(frac))
}

// HeightContent sizes the height to the children's natural extent.
func (d *Div) HeightContent() *Div {
	return d.HeightDim(Content())
}

// HeightAuto shares leftover height equally with Auto siblings.
func (d *Div) HeightAuto() *Div {
	return d.HeightDim(Auto())
}

// HeightDim sets the height dimension directly.
func (d *Div) HeightDim(dim Dimension) *Div {
	d.base().Height = &dim
	return d
}

// MinWidth sets the minimum width constraint.
func (d *Div) MinWidth(cells int) *Div {
	d.base().MinWidth = &cells
	return d
}

// MinHeight sets the minimum height constraint.
func (d *Div) MinHeight(cells int) *Div {
	d.base().MinHeight = &cells
	return d
}

// MaxWidth sets the maximum width constraint.
func (d *Div) MaxWidth(cells int) *Div {
	d.base().MaxWidth = &cells
	return d
}

// MaxHeight sets the maximum height constraint.
func (d *Div) MaxHeight(cells int) *Div {
	d.base().MaxHeight = &cells
	return d
}

// Border enables a border.
func (d *Div) Border(b Border) *Div {
	d.base().Border = &b
	return d
}

// Position sets the positioning mode.
func (d *Div) Position(p Position) *Div {
	d.base().Position = &p
	return d
}

// Top sets the offset from the top edge for absolute/fixed positioning.
func (d *Div) Top(v int) *Div {
	d.base().Top = &v
	return d
}

// Right sets the offset from the right edge.
func (d *Div) Right(v int) *Div {
	d.base().Right = &v
	return d
}

// Bottom sets the offset from the bottom edge.
func (d *Div) Bottom(v int) *Div {
	d.base().Bottom = &v
	return d
}

// Left sets the offset from the left edge.
func (d *Div) Left(v int) *Div {
	d.base().Left = &v
	return d
}

// ZIndex sets the stacking order; higher values paint on top.
func (d *Div) ZIndex(z int) *Div {
	d.base().ZIndex = &z
	return d
}

// Wrap sets the child wrapping mode.
func (d *Div) Wrap(w WrapMode) *Div {
	d.base().Wrap = &w
	return d
}

// Gap sets the spacing between consecutive in-flow children.
func (d *Div) Gap(g int) *Div {
	d.base().Gap = &g
	return d
}

// ShowScrollbar controls scrollbar visibility for scrollable content.
func (d *Div) ShowScrollbar(show bool) *Div {
	d.base().ShowScrollbar = &show
	return d
}

// Justify sets main-axis content distribution.
func (d *Div) Justify(j JustifyContent) *Div {
	d.base().Justify = &j
	return d
}

// AlignItems sets cross-axis alignment of children.
func (d *Div) AlignItems(a AlignItems) *Div {
	d.base().AlignItems = &a
	return d
}

// AlignSelf overrides the parent's AlignItems for this element.
func (d *Div) AlignSelf(a AlignSelf) *Div {
	d.base().AlignSelf = &a
	return d
}

// FocusStyle sets the overlay applied while focused.
func (d *Div) FocusStyle(s *Style) *Div {
	d.Styles.Focus = s
	return d
}

// HoverStyle sets the overlay applied while hovered.
func (d *Div) HoverStyle(s *Style) *Div {
	d.Styles.Hover = s
	return d
}

// WithFocusable marks the div as able to receive keyboard focus.
func (d *Div) WithFocusable() *Div {
	d.Focusable = true
	return d
}

// OnClick registers a click handler.
func (d *Div) OnClick(fn func()) *Div {
	d.Events.OnClick = fn
	return d
}

// OnKey registers a focused-only handler for a special key, ignoring
// modifiers.
func (d *Div) OnKey(key Key, fn func()) *Div {
	d.Events.OnKey = append(d.Events.OnKey, KeyHandler{Chord: Chord(key, ModNone), Fn: fn})
	return d
}

// OnChar registers a focused-only handler for a printable character.
func (d *Div) OnChar(r rune, fn func()) *Div {
	d.Events.OnKey = append(d.Events.OnKey, KeyHandler{Chord: CharChord(r, ModNone), Fn: fn})
	return d
}

// OnKeyGlobal registers a handler for a special key that fires regardless
// of focus.
func (d *Div) OnKeyGlobal(key Key, fn func()) *Div {
	d.Events.OnKey = append(d.Events.OnKey, KeyHandler{Chord: Chord(key, ModNone), Global: true, Fn: fn})
	return d
}

// OnCharGlobal registers a global handler for a printable character.
func (d *Div) OnCharGlobal(r rune, fn func()) *Div {
	d.Events.OnKey = append(d.Events.OnKey, KeyHandler{Chord: CharChord(r, ModNone), Global: true, Fn: fn})
	return d
}

// OnChord registers a focused-only handler for an exact key+modifier
// combination. Chord handlers are dispatched before plain-key handlers.
func (d *Div) OnChord(chord KeyChord, fn func()) *Div {
	d.Events.OnKeyChord = append(d.Events.OnKeyChord, KeyHandler{Chord: chord, Fn: fn})
	return d
}

// OnChordGlobal registers a global handler for an exact key+modifier
// combination.
func (d *Div) OnChordGlobal(chord KeyChord, fn func()) *Div {
	d.Events.OnKeyChord = append(d.Events.OnKeyChord, KeyHandler{Chord: chord, Global: true, Fn: fn})
	return d
}

// OnAnyChar registers a handler fired for any printable character while
// focused.
func (d *Div) OnAnyChar(fn func(rune)) *Div {
	d.Events.OnAnyChar = fn
	return d
}

// OnAnyKey registers a handler fired for any key while focused.
func (d *Div) OnAnyKey(fn func(KeyEvent)) *Div {
	d.Events.OnAnyKey = fn
	return d
}

// OnFocus registers a handler fired when the element gains focus.
func (d *Div) OnFocus(fn func()) *Div {
	d.Events.OnFocus = fn
	return d
}

// OnBlur registers a handler fired when the element loses focus.
func (d *Div) OnBlur(fn func()) *Div {
	d.Events.OnBlur = fn
	return d
}

// Text is a leaf node holding a single string with optional styling.
type Text struct {
	Content string
	Style   *TextStyle
}

func (*Text) isNode() {}

// NewText creates a text node.
func NewText(content string) *Text {
	return &Text{Content: content}
}

// style returns the text style, allocating it on first use.
func (t *Text) style() *TextStyle {
	if t.Style == nil {
		t.Style = &TextStyle{}
	}
	return t.Style
}

// Color sets the foreground color.
func (t *Text) Color(c Color) *Text {
	t.style().Fg = &c
	return t
}

// Background sets the background color.
func (t *Text) Background(c Color) *Text {
	t.style().Bg = &c
	return t
}

// Bold makes the text bold.
func (t *Text) Bold() *Text {
	t.style().WithBold()
	return t
}

// Italic makes the text italic.
func (t *Text) Italic() *Text {
	t.style().WithItalic()
	return t
}

// Underline underlines the text.
func (t *Text) Underline() *Text {
	t.style().WithUnderline()
	return t
}

// Strikethrough strikes through the text.
func (t *Text) Strikethrough() *Text {
	t.style().WithStrikethrough()
	return t
}

// Wrapped sets the text wrapping mode.
func (t *Text) Wrapped(w TextWrap) *Text {
	t.style().Wrapped(w)
	return t
}

// Aligned sets the text alignment.
func (t *Text) Aligned(a TextAlign) *Text {
	t.style().Aligned(a)
	return t
}

// TextSpan is one styled segment of a rich text line.
type TextSpan struct {
	Content string
	Style   *TextStyle
	// IsCursor marks the span as a cursor position for widgets that render
	// one; the core carries the flag through wrapping untouched.
	IsCursor bool
}

// Equal reports whether two spans are identical.
func (s TextSpan) Equal(other TextSpan) bool {
	return s.Content == other.Content &&
		s.IsCursor == other.IsCursor &&
		s.Style.Equal(other.Style)
}

// spansEqual compares two span slices element-wise.
func spansEqual(a, b []TextSpan) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// RichText is a leaf node of multiple styled spans on one line.
type RichText struct {
	Spans []TextSpan
	Style *TextStyle
}

func (*RichText) isNode() {}

// NewRichText creates an empty rich text node.
func NewRichText() *RichText {
	return &RichText{}
}

// style returns the top-level text style, allocating it on first use.
func (r *RichText) style() *TextStyle {
	if r.Style == nil {
		r.Style = &TextStyle{}
	}
	return r.Style
}

// Span appends a styled segment.
func (r *RichText) Span(content string, style *TextStyle) *RichText {
	r.Spans = append(r.Spans, TextSpan{Content: content, Style: style})
	return r
}

// CursorSpan appends a segment marked as the cursor position.
func (r *RichText) CursorSpan(content string, style *TextStyle) *RichText {
	r.Spans = append(r.Spans, TextSpan{Content: content, Style: style, IsCursor: true})
	return r
}

// Wrapped sets the wrapping mode for the whole line.
func (r *RichText) Wrapped(w TextWrap) *RichText {
	r.style().Wrapped(w)
	return r
}

// Aligned sets the alignment for the whole line.
func (r *RichText) Aligned(a TextAlign) *RichText {
	r.style().Aligned(a)
	return r
}

// spanWidth returns the summed display width of spans.
func spanWidth(spans []TextSpan) int {
	w := 0
	for _, s := range spans {
		w += DisplayWidth(s.Content)
	}
	return w
}

// ComponentNode embeds a child component in a view tree. It is expanded
// into the component's own view during tree expansion.
type ComponentNode struct {
	Component Component
}

func (*ComponentNode) isNode() {}

// Comp wraps a component as a tree node.
func Comp(c Component) Node {
	return &ComponentNode{Component: c}
}
