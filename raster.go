package rxtui

// RenderToBuffer rasterizes a render node and its descendants into the
// buffer, clipped to clipRect. parentBg is the background inherited from
// the nearest painted ancestor; text without its own background adopts it.
func RenderToBuffer(node *RenderNode, buf *ScreenBuffer, clipRect Rect, parentBg *Color) {
	renderNode(node, buf, clipRect, parentBg, 0)
}

// renderNode draws one node with the accumulated vertical scroll applied.
//
// Two clip rectangles are in play: the element itself (border, background)
// clips against the incoming clipRect, while children of an
// overflow-clipping container clip against the container's padding box.
func renderNode(node *RenderNode, buf *ScreenBuffer, clipRect Rect, parentBg *Color, parentScroll int) {
	renderedYSigned := node.Y - parentScroll
	renderedX := node.X

	visualHeight := node.visualHeight()

	var nodeBounds Rect
	if renderedYSigned < 0 {
		// Node starts above the viewport; keep only the visible portion.
		if renderedYSigned+visualHeight <= 0 {
			return
		}
		nodeBounds = NewRect(renderedX, 0, node.Width, renderedYSigned+visualHeight)
	} else {
		nodeBounds = NewRect(renderedX, renderedYSigned, node.Width, visualHeight)
	}

	renderedY := max(0, renderedYSigned)

	if !nodeBounds.Intersects(clipRect) {
		return
	}

	elementClip := nodeBounds.Intersect(clipRect)

	childrenClip := clipRect
	if node.clipsChildren() {
		childrenClip = paddingBoxClip(node, renderedX, renderedYSigned, clipRect)
	}

	switch node.Kind {
	case NodeElement:
		effectiveBg := parentBg

		if node.Style != nil {
			if node.borderEnabled() && node.Width > 1 && node.Height > 1 {
				drawBorder(node, buf, renderedX, renderedY, elementClip, parentBg)
			}
			if node.Style.Bg != nil {
				effectiveBg = node.Style.Bg
				fillBackground(node, buf, renderedX, renderedY, elementClip)
			}
		}

		padding := node.stylePadding()
		borderOffset := node.borderOffset()
		contentWidth := node.Width - padding.Left - padding.Right - borderOffset*2
		contentHeight := node.Height - padding.Top - padding.Bottom - borderOffset*2

		if contentWidth > 0 && contentHeight > 0 {
			childScroll := parentScroll
			if node.Scrollable {
				childScroll += node.ScrollY
			}

			// Larger z-index paints on top.
			for _, child := range sortByZIndex(node.Children) {
				renderNode(child, buf, childrenClip, effectiveBg, childScroll)
			}

			if node.Scrollable && node.showScrollbar() {
				renderScrollbar(node, buf, elementClip, parentScroll)
			}
		}

	case NodeText:
		renderTextLine(buf, node.Text, node, renderedX, renderedY, clipRect, parentBg)

	case NodeTextWrapped:
		skip := 0
		if renderedYSigned < 0 {
			skip = -renderedYSigned
		}
		for i := skip; i < len(node.Lines); i++ {
			lineY := renderedY + (i - skip)
			if lineY >= clipRect.Bottom() {
				break
			}
			if lineY < clipRect.Y {
				continue
			}
			renderAlignedLine(buf, node.Lines[i], node, renderedX, lineY, clipRect, parentBg)
		}

	case NodeRichText:
		renderSpanLine(buf, node.Spans, node, renderedX, renderedY, clipRect, parentBg)

	case NodeRichTextWrapped:
		skip := 0
		if renderedYSigned < 0 {
			skip = -renderedYSigned
		}
		for i := skip; i < len(node.SpanLines); i++ {
			lineY := renderedY + (i - skip)
			if lineY >= clipRect.Bottom() {
				break
			}
			if lineY < clipRect.Y {
				continue
			}
			renderSpanLineAt(buf, node.SpanLines[i], node, renderedX, lineY, clipRect, parentBg)
		}
	}
}

// sortByZIndex returns children ordered by ascending z-index, preserving
// document order for equal values.
func sortByZIndex(children []*RenderNode) []*RenderNode {
	sorted := make([]*RenderNode, len(children))
	copy(sorted, children)
	// Insertion sort keeps the common already-ordered case cheap and stable.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1].ZIndex > sorted[j].ZIndex; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	return sorted
}

// showScrollbar reports whether the scrollbar should be drawn
// (default true).
func (n *RenderNode) showScrollbar() bool {
	if n.Style != nil && n.Style.ShowScrollbar != nil {
		return *n.Style.ShowScrollbar
	}
	return true
}

// paddingBoxClip computes the clip rect for children of an
// overflow-clipping container: the padding box (inside the border).
func paddingBoxClip(node *RenderNode, renderedX, renderedYSigned int, clipRect Rect) Rect {
	borderOffset := node.borderOffset()

	boxX := renderedX + borderOffset
	boxY := max(0, renderedYSigned+borderOffset)
	boxW := max(0, node.Width-borderOffset*2)

	var boxH int
	if renderedYSigned+borderOffset < 0 {
		below := renderedYSigned + node.Height
		if below > borderOffset {
			boxH = min(below-borderOffset, node.Height-borderOffset*2)
		}
	} else {
		boxH = max(0, node.Height-borderOffset*2)
	}

	return NewRect(boxX, boxY, boxW, boxH).Intersect(clipRect)
}

// drawBorder paints the enabled edges and corners. Corner cells belonging
// to disabled edges are painted as spaces carrying the element's (or
// inherited) background so the cell diff still covers them.
func drawBorder(node *RenderNode, buf *ScreenBuffer, renderedX, renderedY int, clip Rect, parentBg *Color) {
	border := node.Style.Border
	chars := border.Style.Chars()
	edges := border.Edges

	bg := DefaultColor()
	if node.Style.Bg != nil {
		bg = *node.Style.Bg
	} else if parentBg != nil {
		bg = *parentBg
	}

	left := renderedX
	right := renderedX + node.Width - 1
	top := renderedY
	bottom := renderedY + node.Height - 1

	put := func(x, y int, r rune) {
		if !clip.Contains(x, y) {
			return
		}
		cell := Cell{Rune: r, Bg: bg}
		if r != ' ' {
			cell.Fg = border.Color
		}
		buf.SetCell(x, y, cell)
	}

	if edges.Has(BorderEdgeTop) {
		for x := left; x <= right; x++ {
			switch {
			case x == left:
				if edges.Has(BorderCornerTopLeft) {
					put(x, top, chars.TopLeft)
				} else {
					put(x, top, ' ')
				}
			case x == right:
				if edges.Has(BorderCornerTopRight) {
					put(x, top, chars.TopRight)
				} else {
					put(x, top, ' ')
				}
			default:
				put(x, top, chars.Top)
			}
		}
	}

	if edges.Has(BorderEdgeBottom) {
		for x := left; x <= right; x++ {
			switch {
			case x == left:
				if edges.Has(BorderCornerBottomLeft) {
					put(x, bottom, chars.BottomLeft)
				} else {
					put(x, bottom, ' ')
				}
			case x == right:
				if edges.Has(BorderCornerBottomRight) {
					put(x, bottom, chars.BottomRight)
				} else {
					put(x, bottom, ' ')
				}
			default:
				put(x, bottom, chars.Bottom)
			}
		}
	}

	for y := top + 1; y < bottom; y++ {
		if edges.Has(BorderEdgeLeft) {
			put(left, y, chars.Left)
		}
		if edges.Has(BorderEdgeRight) {
			put(right, y, chars.Right)
		}
	}

	// Standalone corners when their adjacent edges are disabled.
	if !edges.Has(BorderEdgeTop) {
		if !edges.Has(BorderEdgeLeft) && edges.Has(BorderCornerTopLeft) {
			put(left, top, chars.TopLeft)
		}
		if !edges.Has(BorderEdgeRight) && edges.Has(BorderCornerTopRight) {
			put(right, top, chars.TopRight)
		}
	}
	if !edges.Has(BorderEdgeBottom) {
		if !edges.Has(BorderEdgeLeft) && edges.Has(BorderCornerBottomLeft) {
			put(left, bottom, chars.BottomLeft)
		}
		if !edges.Has(BorderEdgeRight) && edges.Has(BorderCornerBottomRight) {
			put(right, bottom, chars.BottomRight)
		}
	}
}

// fillBackground fills the element area, skipping border cells so border
// glyphs survive.
func fillBackground(node *RenderNode, buf *ScreenBuffer, renderedX, renderedY int, clip Rect) {
	bg := *node.Style.Bg
	hasBorder := node.borderEnabled() && node.Width > 1 && node.Height > 1

	for y := clip.Y; y < clip.Bottom(); y++ {
		for x := clip.X; x < clip.Right(); x++ {
			if hasBorder {
				onEdge := y == renderedY || y == renderedY+node.Height-1 ||
					x == renderedX || x == renderedX+node.Width-1
				if onEdge {
					// Keep border glyphs; give bare edge cells the
					// background so disabled edges still read as part of
					// the element.
					cell := buf.Cell(x, y)
					if cell.Bg.IsDefault() {
						cell.Bg = bg
						buf.SetCell(x, y, cell)
					}
					continue
				}
			}
			buf.SetCell(x, y, Cell{Rune: ' ', Bg: bg})
		}
	}
}

// textAlignOffset computes the alignment displacement of a line within the
// node's width.
func textAlignOffset(node *RenderNode, lineWidth int) int {
	align, ok := node.TextStyle.Alignment()
	if !ok || node.Width <= lineWidth {
		return 0
	}
	switch align {
	case TextAlignCenter:
		return (node.Width - lineWidth) / 2
	case TextAlignRight:
		return node.Width - lineWidth
	}
	return 0
}

// renderTextLine draws a single-line text node with alignment and clipping.
func renderTextLine(buf *ScreenBuffer, text string, node *RenderNode, renderedX, renderedY int, clip Rect, parentBg *Color) {
	renderAlignedLine(buf, text, node, renderedX, renderedY, clip, parentBg)
}

// renderAlignedLine draws one text line at a row, applying per-line
// alignment and horizontal clipping with display-column accounting.
func renderAlignedLine(buf *ScreenBuffer, line string, node *RenderNode, renderedX, lineY int, clip Rect, parentBg *Color) {
	lineWidth := DisplayWidth(line)
	alignedX := renderedX + textAlignOffset(node, lineWidth)

	bounds := NewRect(alignedX, lineY, lineWidth, 1)
	if !bounds.Intersects(clip) {
		return
	}

	startCol := 0
	if alignedX < clip.X {
		startCol = clip.X - alignedX
	}
	endCol := lineWidth
	if alignedX+lineWidth > clip.Right() {
		endCol = clip.Right() - alignedX
	}
	if startCol >= endCol {
		return
	}

	visible := SubstringByColumns(line, startCol, endCol)
	renderX := max(alignedX, clip.X)

	style := mergeInheritedBackground(node.TextStyle, parentBg)
	buf.WriteStyledString(renderX, lineY, visible, style)
}

// renderSpanLine draws a single-line rich text node.
func renderSpanLine(buf *ScreenBuffer, spans []TextSpan, node *RenderNode, renderedX, renderedY int, clip Rect, parentBg *Color) {
	renderSpanLineAt(buf, spans, node, renderedX, renderedY, clip, parentBg)
}

// renderSpanLineAt draws one rich text line at a row. Clipping is computed
// per-span from a running x-cursor; spans without a style inherit only the
// background.
func renderSpanLineAt(buf *ScreenBuffer, spans []TextSpan, node *RenderNode, renderedX, lineY int, clip Rect, parentBg *Color) {
	lineWidth := spanWidth(spans)
	alignedX := renderedX + textAlignOffset(node, lineWidth)

	bounds := NewRect(alignedX, lineY, lineWidth, 1)
	if !bounds.Intersects(clip) {
		return
	}

	curX := alignedX
	for _, span := range spans {
		w := DisplayWidth(span.Content)

		if curX+w > clip.X && curX < clip.Right() {
			startCol := 0
			if curX < clip.X {
				startCol = clip.X - curX
			}
			endCol := w
			if curX+w > clip.Right() {
				endCol = clip.Right() - curX
			}
			if startCol < endCol {
				visible := SubstringByColumns(span.Content, startCol, endCol)
				renderX := max(curX, clip.X)
				style := mergeInheritedBackground(span.Style, parentBg)
				buf.WriteStyledString(renderX, lineY, visible, style)
			}
		}
		curX += w
	}
}

// mergeInheritedBackground returns the text style with the parent
// background filled in when the style sets none.
func mergeInheritedBackground(ts *TextStyle, parentBg *Color) *TextStyle {
	if parentBg == nil {
		return ts
	}
	if ts == nil {
		return &TextStyle{Bg: parentBg}
	}
	if ts.Bg != nil {
		return ts
	}
	merged := *ts
	merged.Bg = parentBg
	return &merged
}

// renderScrollbar draws a vertical track in the last column of the element
// with a proportional thumb. Drawn only when content overflows and the
// element is taller than 2 rows.
func renderScrollbar(node *RenderNode, buf *ScreenBuffer, clip Rect, parentScroll int) {
	if node.ContentHeight <= node.Height || node.Height <= 2 {
		return
	}

	renderedY := node.Y
	if parentScroll > 0 {
		renderedY = max(0, node.Y-parentScroll)
	}
	trackX := node.X + node.Width - 1
	trackHeight := node.Height

	// Thumb size is proportional to the visible ratio, at least one cell.
	thumbHeight := max(1, (trackHeight*trackHeight+node.ContentHeight-1)/node.ContentHeight)
	maxScroll := node.ContentHeight - node.Height
	thumbY := renderedY + (trackHeight-thumbHeight)*node.ScrollY/maxScroll

	for y := renderedY; y < renderedY+trackHeight; y++ {
		if !clip.Contains(trackX, y) {
			continue
		}
		ch := '│'
		if y >= thumbY && y < thumbY+thumbHeight {
			ch = '█'
		}
		buf.SetCell(trackX, y, Cell{Rune: ch, Fg: BrightBlack})
	}
}
