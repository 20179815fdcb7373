package rxtui

// Direction specifies the main axis for laying out children.
type Direction uint8

const (
	// Vertical stacks children top to bottom (default).
	Vertical Direction = iota
	// Horizontal stacks children left to right.
	Horizontal
)

// Overflow controls how content exceeding container bounds is displayed.
type Overflow uint8

const (
	// OverflowNone lets content render outside the container bounds (default).
	OverflowNone Overflow = iota
	// OverflowHidden clips content at the container's padding box.
	OverflowHidden
	// OverflowScroll clips content and makes the container scrollable.
	OverflowScroll
	// OverflowAuto clips content and shows a scrollbar when it overflows.
	OverflowAuto
)

// Position determines how an element is positioned.
type Position uint8

const (
	// PositionRelative places the element in normal flow (default).
	PositionRelative Position = iota
	// PositionAbsolute positions relative to the nearest positioned ancestor,
	// removed from normal flow.
	PositionAbsolute
	// PositionFixed positions relative to the viewport.
	PositionFixed
)

// TextAlign controls horizontal text positioning within its container.
type TextAlign uint8

const (
	// TextAlignLeft aligns text to the left edge (default).
	TextAlignLeft TextAlign = iota
	// TextAlignCenter centers text horizontally.
	TextAlignCenter
	// TextAlignRight aligns text to the right edge.
	TextAlignRight
)

// TextWrap controls how text breaks across lines.
type TextWrap uint8

const (
	// TextWrapNone disables wrapping; text overflows or is clipped (default).
	TextWrapNone TextWrap = iota
	// TextWrapCharacter breaks at any character boundary.
	TextWrapCharacter
	// TextWrapWord breaks only at word boundaries; long words may overflow.
	TextWrapWord
	// TextWrapWordBreak breaks at word boundaries, splitting words when a
	// single word exceeds the line width.
	TextWrapWordBreak
)

// WrapMode controls how child elements wrap within a container.
type WrapMode uint8

const (
	// NoWrap lays children out in a single row or column (default).
	NoWrap WrapMode = iota
	// Wrap moves children to the next row/column when space runs out.
	Wrap
	// WrapReverse wraps children in reverse direction.
	WrapReverse
)

// JustifyContent distributes children along the main axis.
type JustifyContent uint8

const (
	// JustifyStart packs items at the start of the main axis (default).
	JustifyStart JustifyContent = iota
	// JustifyCenter centers items along the main axis.
	JustifyCenter
	// JustifyEnd packs items at the end of the main axis.
	JustifyEnd
	// JustifySpaceBetween places the first item at the start, the last at the
	// end, with even spacing between.
	JustifySpaceBetween
	// JustifySpaceAround gives each item equal space around it.
	JustifySpaceAround
	// JustifySpaceEvenly gives equal space between and around all items.
	JustifySpaceEvenly
)

// AlignItems aligns children on the cross axis.
type AlignItems uint8

const (
	// AlignStart aligns items at the start of the cross axis (default).
	AlignStart AlignItems = iota
	// AlignCenter centers items on the cross axis.
	AlignCenter
	// AlignEnd aligns items at the end of the cross axis.
	AlignEnd
)

// AlignSelf lets an item override its parent's AlignItems.
type AlignSelf uint8

const (
	// AlignSelfAuto uses the parent's AlignItems value (default).
	AlignSelfAuto AlignSelf = iota
	// AlignSelfStart aligns at the start of the cross axis.
	AlignSelfStart
	// AlignSelfCenter centers on the cross axis.
	AlignSelfCenter
	// AlignSelfEnd aligns at the end of the cross axis.
	AlignSelfEnd
)

// DimensionKind distinguishes the sizing strategies of a Dimension.
type DimensionKind uint8

const (
	// DimFixed is an absolute size in terminal cells.
	DimFixed DimensionKind = iota
	// DimPercentage is a fraction of the parent's content box (0.0-1.0).
	DimPercentage
	// DimContent grows the element to fit its children's natural size.
	DimContent
	// DimAuto shares leftover space equally with Auto siblings on the main
	// axis; on the cross axis it fills the available extent.
	DimAuto
)

// Dimension specifies how an element's width or height is calculated.
type Dimension struct {
	Kind  DimensionKind
	Cells int     // for DimFixed
	Frac  float64 // for DimPercentage, clamped to [0, 1]
}

// Fixed returns a Dimension with an absolute size in cells.
func Fixed(cells int) Dimension {
	return Dimension{Kind: DimFixed, Cells: cells}
}

// Pct returns a percentage Dimension. Values outside [0, 1] are clamped at
// intake and never surfaced as errors.
func Pct(frac float64) Dimension {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return Dimension{Kind: DimPercentage, Frac: frac}
}

// Content returns a Dimension sized to the element's children.
func Content() Dimension {
	return Dimension{Kind: DimContent}
}

// Auto returns a Dimension that shares leftover space with siblings.
func Auto() Dimension {
	return Dimension{Kind: DimAuto}
}

// Spacing holds cell counts for the four sides of an element.
// Used for padding and margins.
type Spacing struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// SpacingAll returns Spacing with the same value on all four sides.
func SpacingAll(v int) Spacing {
	return Spacing{Top: v, Right: v, Bottom: v, Left: v}
}

// SpacingVertical returns Spacing applied to top and bottom only.
func SpacingVertical(v int) Spacing {
	return Spacing{Top: v, Bottom: v}
}

// SpacingHorizontal returns Spacing applied to left and right only.
func SpacingHorizontal(v int) Spacing {
	return Spacing{Left: v, Right: v}
}

// Style is the container style for an element. All fields are optional;
// unset fields fall back to defaults or are overridden by overlays.
type Style struct {
	Bg            *Color
	Dir           *Direction
	Padding       *Spacing
	Margin        *Spacing
	Overflow      *Overflow
	Width         *Dimension
	Height        *Dimension
	MinWidth      *int
	MinHeight     *int
	MaxWidth      *int
	MaxHeight     *int
	Border        *Border
	Position      *Position
	ZIndex        *int
	Top           *int
	Right         *int
	Bottom        *int
	Left          *int
	Wrap          *WrapMode
	Gap           *int
	ShowScrollbar *bool
	Justify       *JustifyContent
	AlignItems    *AlignItems
	AlignSelf     *AlignSelf
}

// NewStyle returns an empty Style with all properties unset.
func NewStyle() *Style {
	return &Style{}
}

// Background sets the background fill color.
func (s *Style) Background(c Color) *Style {
	s.Bg = &c
	return s
}

// Direction sets the layout direction for children.
func (s *Style) Direction(d Direction) *Style {
	s.Dir = &d
	return s
}

// Pad sets the inner padding around content.
func (s *Style) Pad(p Spacing) *Style {
	s.Padding = &p
	return s
}

// Bordered enables the given border.
func (s *Style) Bordered(b Border) *Style {
	s.Border = &b
	return s
}

// Size sets both width and height dimensions.
func (s *Style) Size(w, h Dimension) *Style {
	s.Width = &w
	s.Height = &h
	return s
}

// MergeStyles merges two styles, overlay fields winning when set.
// Either argument may be nil; the result is nil only when both are.
// The base is not mutated.
func MergeStyles(base, overlay *Style) *Style {
	if base == nil {
		return overlay
	}
	if overlay == nil {
		return base
	}

	merged := *base
	if overlay.Bg != nil {
		merged.Bg = overlay.Bg
	}
	if overlay.Dir != nil {
		merged.Dir = overlay.Dir
	}
	if overlay.Padding != nil {
		merged.Padding = overlay.Padding
	}
	if overlay.Margin != nil {
		merged.Margin = overlay.Margin
	}
	if overlay.Overflow != nil {
		merged.Overflow = overlay.Overflow
	}
	if overlay.Width != nil {
		merged.Width = overlay.Width
	}
	if overlay.Height != nil {
		merged.Height = overlay.Height
	}
	if overlay.MinWidth != nil {
		merged.MinWidth = overlay.MinWidth
	}
	if overlay.MinHeight != nil {
		merged.MinHeight = overlay.MinHeight
	}
	if overlay.MaxWidth != nil {
		merged.MaxWidth = overlay.MaxWidth
	}
	if overlay.MaxHeight != nil {
		merged.MaxHeight = overlay.MaxHeight
	}
	if overlay.Border != nil {
		merged.Border = overlay.Border
	}
	if overlay.Position != nil {
		merged.Position = overlay.Position
	}
	if overlay.ZIndex != nil {
		merged.ZIndex = overlay.ZIndex
	}
	if overlay.Top != nil {
		merged.Top = overlay.Top
	}
	if overlay.Right != nil {
		merged.Right = overlay.Right
	}
	if overlay.Bottom != nil {
		merged.Bottom = overlay.Bottom
	}
	if overlay.Left != nil {
		merged.Left = overlay.Left
	}
	if overlay.Wrap != nil {
		merged.Wrap = overlay.Wrap
	}
	if overlay.Gap != nil {
		merged.Gap = overlay.Gap
	}
	if overlay.ShowScrollbar != nil {
		merged.ShowScrollbar = overlay.ShowScrollbar
	}
	if overlay.Justify != nil {
		merged.Justify = overlay.Justify
	}
	if overlay.AlignItems != nil {
		merged.AlignItems = overlay.AlignItems
	}
	if overlay.AlignSelf != nil {
		merged.AlignSelf = overlay.AlignSelf
	}
	return &merged
}

// eqPtr compares two optional fields: both unset, or both set and equal.
func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Equal reports whether two styles have the same set of properties with the
// same values. Nil receivers and arguments are allowed.
func (s *Style) Equal(other *Style) bool {
	if s == nil || other == nil {
		return s == other
	}
	return eqPtr(s.Bg, other.Bg) &&
		eqPtr(s.Dir, other.Dir) &&
		eqPtr(s.Padding, other.Padding) &&
		eqPtr(s.Margin, other.Margin) &&
		eqPtr(s.Overflow, other.Overflow) &&
		eqPtr(s.Width, other.Width) &&
		eqPtr(s.Height, other.Height) &&
		eqPtr(s.MinWidth, other.MinWidth) &&
		eqPtr(s.MinHeight, other.MinHeight) &&
		eqPtr(s.MaxWidth, other.MaxWidth) &&
		eqPtr(s.MaxHeight, other.MaxHeight) &&
		eqPtr(s.Border, other.Border) &&
		eqPtr(s.Position, other.Position) &&
		eqPtr(s.ZIndex, other.ZIndex) &&
		eqPtr(s.Top, other.Top) &&
		eqPtr(s.Right, other.Right) &&
		eqPtr(s.Bottom, other.Bottom) &&
		eqPtr(s.Left, other.Left) &&
		eqPtr(s.Wrap, other.Wrap) &&
		eqPtr(s.Gap, other.Gap) &&
		eqPtr(s.ShowScrollbar, other.ShowScrollbar) &&
		eqPtr(s.Justify, other.Justify) &&
		eqPtr(s.AlignItems, other.AlignItems) &&
		eqPtr(s.AlignSelf, other.AlignSelf)
}

// TextStyle holds styling specific to text content. All fields are optional.
type TextStyle struct {
	Fg            *Color
	Bg            *Color
	Bold          *bool
	Italic        *bool
	Underline     *bool
	Strikethrough *bool
	Wrap          *TextWrap
	Align         *TextAlign
}

// NewTextStyle returns an empty TextStyle with all properties unset.
func NewTextStyle() *TextStyle {
	return &TextStyle{}
}

// Color sets the foreground color.
func (t *TextStyle) Color(c Color) *TextStyle {
	t.Fg = &c
	return t
}

// Background sets the background color behind the text.
func (t *TextStyle) Background(c Color) *TextStyle {
	t.Bg = &c
	return t
}

// WithBold sets the bold weight.
func (t *TextStyle) WithBold() *TextStyle {
	b := true
	t.Bold = &b
	return t
}

// WithItalic sets the italic style.
func (t *TextStyle) WithItalic() *TextStyle {
	b := true
	t.Italic = &b
	return t
}

// WithUnderline sets the underline decoration.
func (t *TextStyle) WithUnderline() *TextStyle {
	b := true
	t.Underline = &b
	return t
}

// WithStrikethrough sets the strikethrough decoration.
func (t *TextStyle) WithStrikethrough() *TextStyle {
	b := true
	t.Strikethrough = &b
	return t
}

// Wrapped sets the text wrapping mode.
func (t *TextStyle) Wrapped(w TextWrap) *TextStyle {
	t.Wrap = &w
	return t
}

// Aligned sets the text alignment.
func (t *TextStyle) Aligned(a TextAlign) *TextStyle {
	t.Align = &a
	return t
}

// MergeTextStyles merges two text styles, overlay fields winning when set.
func MergeTextStyles(base, overlay *TextStyle) *TextStyle {
	if base == nil {
		return overlay
	}
	if overlay == nil {
		return base
	}

	merged := *base
	if overlay.Fg != nil {
		merged.Fg = overlay.Fg
	}
	if overlay.Bg != nil {
		merged.Bg = overlay.Bg
	}
	if overlay.Bold != nil {
		merged.Bold = overlay.Bold
	}
	if overlay.Italic != nil {
		merged.Italic = overlay.Italic
	}
	if overlay.Underline != nil {
		merged.Underline = overlay.Underline
	}
	if overlay.Strikethrough != nil {
		merged.Strikethrough = overlay.Strikethrough
	}
	if overlay.Wrap != nil {
		merged.Wrap = overlay.Wrap
	}
	if overlay.Align != nil {
		merged.Align = overlay.Align
	}
	return &merged
}

// Equal reports whether two text styles carry the same properties.
func (t *TextStyle) Equal(other *TextStyle) bool {
	if t == nil || other == nil {
		return t == other
	}
	return eqPtr(t.Fg, other.Fg) &&
		eqPtr(t.Bg, other.Bg) &&
		eqPtr(t.Bold, other.Bold) &&
		eqPtr(t.Italic, other.Italic) &&
		eqPtr(t.Underline, other.Underline) &&
		eqPtr(t.Strikethrough, other.Strikethrough) &&
		eqPtr(t.Wrap, other.Wrap) &&
		eqPtr(t.Align, other.Align)
}

// WrapMode returns the wrapping mode, or TextWrapNone when unset or nil.
func (t *TextStyle) WrapMode() TextWrap {
	if t == nil || t.Wrap == nil {
		return TextWrapNone
	}
	return *t.Wrap
}

// Alignment returns the text alignment and whether one was set.
func (t *TextStyle) Alignment() (TextAlign, bool) {
	if t == nil || t.Align == nil {
		return TextAlignLeft, false
	}
	return *t.Align, true
}

// DivStyles stores the three independent style snapshots of a div.
// They are composed per frame rather than cascaded in place, which avoids
// reverse-applying overlays when focus or hover state changes.
type DivStyles struct {
	Base  *Style
	Focus *Style
	Hover *Style
}

// Equal reports whether both style sets are identical.
func (d DivStyles) Equal(other DivStyles) bool {
	return d.Base.Equal(other.Base) &&
		d.Focus.Equal(other.Focus) &&
		d.Hover.Equal(other.Hover)
}

// DefaultFocusStyle returns the focus overlay applied to focusable elements
// that do not declare their own: a yellow single border on all edges.
func DefaultFocusStyle() *Style {
	return &Style{Border: &Border{
		Enabled: true,
		Style:   BorderSingle,
		Color:   Yellow,
		Edges:   BorderEdgesAll,
	}}
}

// ComposeStateStyle computes the effective style for the current focus and
// hover state: base overlaid by the focus style (when focused) overlaid by
// the hover style (when hovered). Focusable elements without an explicit
// focus overlay receive the default focus border.
func ComposeStateStyle(styles DivStyles, focusable, focused, hovered bool) *Style {
	var focusOverlay *Style
	if focused {
		if focusable && styles.Focus == nil {
			focusOverlay = DefaultFocusStyle()
		} else {
			focusOverlay = styles.Focus
		}
	}

	var hoverOverlay *Style
	if hovered {
		hoverOverlay = styles.Hover
	}

	return MergeStyles(MergeStyles(styles.Base, focusOverlay), hoverOverlay)
}
