package rxtui

// BorderStyle selects the box-drawing glyph set for a border.
type BorderStyle uint8

const (
	// BorderSingle uses single-line box-drawing characters (default).
	BorderSingle BorderStyle = iota
	// BorderDouble uses double-line box-drawing characters.
	BorderDouble
	// BorderThick uses thick/heavy box-drawing characters.
	BorderThick
	// BorderRounded uses rounded corner characters.
	BorderRounded
	// BorderDashed uses dashed line characters.
	BorderDashed
)

// BorderEdges is a bitset selecting which edges and corners are rendered.
type BorderEdges uint8

const (
	// BorderEdgeTop renders the top edge.
	BorderEdgeTop BorderEdges = 1 << iota
	// BorderEdgeRight renders the right edge.
	BorderEdgeRight
	// BorderEdgeBottom renders the bottom edge.
	BorderEdgeBottom
	// BorderEdgeLeft renders the left edge.
	BorderEdgeLeft
	// BorderCornerTopLeft renders the top-left corner.
	BorderCornerTopLeft
	// BorderCornerTopRight renders the top-right corner.
	BorderCornerTopRight
	// BorderCornerBottomRight renders the bottom-right corner.
	BorderCornerBottomRight
	// BorderCornerBottomLeft renders the bottom-left corner.
	BorderCornerBottomLeft
)

const (
	// BorderEdgesAll renders every edge and corner.
	BorderEdgesAll = BorderEdgesOnly | BorderCornersOnly
	// BorderEdgesOnly renders the four edges without corners.
	BorderEdgesOnly = BorderEdgeTop | BorderEdgeRight | BorderEdgeBottom | BorderEdgeLeft
	// BorderCornersOnly renders the four corners without edges.
	BorderCornersOnly = BorderCornerTopLeft | BorderCornerTopRight | BorderCornerBottomRight | BorderCornerBottomLeft
	// BorderEdgesHorizontal renders the top and bottom edges.
	BorderEdgesHorizontal = BorderEdgeTop | BorderEdgeBottom
	// BorderEdgesVertical renders the left and right edges.
	BorderEdgesVertical = BorderEdgeLeft | BorderEdgeRight
)

// Has returns true if the edge set includes all of the given bits.
func (e BorderEdges) Has(bits BorderEdges) bool {
	return e&bits == bits
}

// Border configures an element border. Borders are drawn inset, taking one
// cell from the element's content area on each enabled side.
type Border struct {
	Enabled bool
	Style   BorderStyle
	Color   Color
	Edges   BorderEdges
}

// NewBorder returns an enabled single-style border on all edges.
func NewBorder(color Color) Border {
	return Border{Enabled: true, Style: BorderSingle, Color: color, Edges: BorderEdgesAll}
}

// BorderWith returns an enabled border with the given style and color.
func BorderWith(style BorderStyle, color Color) Border {
	return Border{Enabled: true, Style: style, Color: color, Edges: BorderEdgesAll}
}

// BorderWithEdges returns an enabled border restricted to the given edges.
func BorderWithEdges(style BorderStyle, color Color, edges BorderEdges) Border {
	return Border{Enabled: true, Style: style, Color: color, Edges: edges}
}

// BorderChars holds the glyphs for the eight border positions.
type BorderChars struct {
	TopLeft     rune
	Top         rune
	TopRight    rune
	Left        rune
	Right       rune
	BottomLeft  rune
	Bottom      rune
	BottomRight rune
}

// Chars returns the box-drawing characters for this border style.
func (b BorderStyle) Chars() BorderChars {
	switch b {
	case BorderDouble:
		return BorderChars{
			TopLeft:     '╔',
			Top:         '═',
			TopRight:    '╗',
			Left:        '║',
			Right:       '║',
			BottomLeft:  '╚',
			Bottom:      '═',
			BottomRight: '╝',
		}
	case BorderThick:
		return BorderChars{
			TopLeft:     '┏',
			Top:         '━',
			TopRight:    '┓',
			Left:        '┃',
			Right:       '┃',
			BottomLeft:  '┗',
			Bottom:      '━',
			BottomRight: '┛',
		}
	case BorderRounded:
		return BorderChars{
			TopLeft:     '╭',
			Top:         '─',
			TopRight:    '╮',
			Left:        '│',
			Right:       '│',
			BottomLeft:  '╰',
			Bottom:      '─',
			BottomRight: '╯',
		}
	case BorderDashed:
		return BorderChars{
			TopLeft:     '┌',
			Top:         '╌',
			TopRight:    '┐',
			Left:        '╎',
			Right:       '╎',
			BottomLeft:  '└',
			Bottom:      '╌',
			BottomRight: '┘',
		}
	default:
		return BorderChars{
			TopLeft:     '┌',
			Top:         '─',
			TopRight:    '┐',
			Left:        '│',
			Right:       '│',
			BottomLeft:  '└',
			Bottom:      '─',
			BottomRight: '┘',
		}
	}
}
