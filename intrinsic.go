package rxtui

// sizeHint carries tentative parent dimensions into intrinsic sizing so
// percentage children and wrapping can be resolved.
type sizeHint struct {
	w, h  int
	valid bool
}

// IntrinsicSize returns the content-based size of the node and its
// children. Sizing is iterated up to three passes to converge under mutual
// dependencies (a percentage-sized child inside a content-sized parent),
// stopping early when the result is stable.
func (n *RenderNode) IntrinsicSize() (int, int) {
	return n.intrinsicSizeMultipass(3, sizeHint{})
}

func (n *RenderNode) intrinsicSizeMultipass(maxPasses int, hint sizeHint) (int, int) {
	w, h := n.intrinsicSizePass(hint)
	for pass := 1; pass < maxPasses; pass++ {
		nw, nh := n.intrinsicSizePass(sizeHint{w: w, h: h, valid: true})
		if nw == w && nh == h {
			break
		}
		w, h = nw, nh
	}
	return w, h
}

// intrinsicSizePass performs a single sizing pass, using the hint to
// resolve percentages and simulate wrapping.
func (n *RenderNode) intrinsicSizePass(hint sizeHint) (int, int) {
	switch n.Kind {
	case NodeText:
		if mode := n.TextStyle.WrapMode(); mode != TextWrapNone {
			wrapWidth, ok := n.wrapConstraint(hint)
			if ok && wrapWidth > 0 {
				lines := WrapText(n.Text, wrapWidth, mode)
				w := 0
				for _, line := range lines {
					w = max(w, DisplayWidth(line))
				}
				return min(w, wrapWidth), len(lines)
			}
		}
		return DisplayWidth(n.Text), 1

	case NodeTextWrapped, NodeRichText, NodeRichTextWrapped:
		return n.naturalWidth(), n.naturalHeight()

	case NodeElement:
		if len(n.Children) == 0 {
			return 0, 0
		}

		direction := n.styleDirection()
		padding := n.stylePadding()
		borderSize := n.borderOffset() * 2
		gap := 0
		if n.Style != nil && n.Style.Gap != nil {
			gap = *n.Style.Gap
		}

		if n.wrapsWithFixedExtent(direction) {
			return n.wrappedIntrinsicSize(direction, padding, borderSize, gap, hint)
		}
		return n.standardIntrinsicSize(direction, padding, borderSize, gap, hint)
	}
	return 0, 0
}

// wrapConstraint determines the width a wrapping text node should wrap at:
// the node's own fixed width when set, else the hint width.
func (n *RenderNode) wrapConstraint(hint sizeHint) (int, bool) {
	if n.Style != nil && n.Style.Width != nil && n.Style.Width.Kind == DimFixed {
		return n.Style.Width.Cells, true
	}
	if hint.valid {
		return hint.w, true
	}
	return 0, false
}

// wrapsWithFixedExtent reports whether wrap layout applies: wrap mode is
// set and the main axis has a fixed extent to pack against.
func (n *RenderNode) wrapsWithFixedExtent(direction Direction) bool {
	if n.Style == nil || n.Style.Wrap == nil || *n.Style.Wrap == NoWrap {
		return false
	}
	dim := n.styleDimension(direction == Horizontal)
	return dim != nil && dim.Kind == DimFixed
}

// childHint derives the hint passed to children from this node's fixed
// dimensions, subtracting padding and border.
func (n *RenderNode) childHint(padding Spacing, borderSize int, hint sizeHint) sizeHint {
	if n.Style == nil {
		return hint
	}

	out := hint
	if n.Style.Width != nil && n.Style.Width.Kind == DimFixed {
		out.w = max(0, n.Style.Width.Cells-padding.Left-padding.Right-borderSize)
		out.valid = true
	}
	if n.Style.Height != nil && n.Style.Height.Kind == DimFixed {
		out.h = max(0, n.Style.Height.Cells-padding.Top-padding.Bottom-borderSize)
		out.valid = true
	}
	return out
}

// childIntrinsic computes a child's size for intrinsic purposes, resolving
// fixed and percentage dimensions against the hint.
func childIntrinsic(child *RenderNode, childHint, hint sizeHint) (int, int) {
	w, h := child.intrinsicSizeMultipass(2, childHint)

	if child.Style != nil {
		if d := child.Style.Width; d != nil {
			switch d.Kind {
			case DimFixed:
				w = d.Cells
			case DimPercentage:
				if hint.valid {
					w = int(float64(hint.w) * d.Frac)
				}
			}
		}
		if d := child.Style.Height; d != nil {
			switch d.Kind {
			case DimFixed:
				h = d.Cells
			case DimPercentage:
				if hint.valid {
					h = int(float64(hint.h) * d.Frac)
				}
			}
		}
	}
	return w, h
}

// standardIntrinsicSize sums children along the main axis (with gaps) and
// takes the max on the cross axis, adding padding and border.
func (n *RenderNode) standardIntrinsicSize(direction Direction, padding Spacing, borderSize, gap int, hint sizeHint) (int, int) {
	childHint := n.childHint(padding, borderSize, hint)

	totalW, totalH := 0, 0
	maxW, maxH := 0, 0
	inFlow := 0

	for _, child := range n.Children {
		cw, ch := childIntrinsic(child, childHint, hint)

		if !childOutOfFlow(child) {
			inFlow++
		}

		if direction == Horizontal {
			totalW += cw
			maxH = max(maxH, ch)
		} else {
			totalH += ch
			maxW = max(maxW, cw)
		}
	}

	gapTotal := 0
	if gap > 0 && inFlow > 1 {
		gapTotal = gap * (inFlow - 1)
	}

	var contentW, contentH int
	if direction == Horizontal {
		contentW = totalW + gapTotal
		contentH = maxH
	} else {
		contentW = maxW
		contentH = totalH + gapTotal
	}

	return contentW + padding.Left + padding.Right + borderSize,
		contentH + padding.Top + padding.Bottom + borderSize
}

// wrappedIntrinsicSize simulates line/column packing against the fixed main
// axis to compute the wrapped extent.
func (n *RenderNode) wrappedIntrinsicSize(direction Direction, padding Spacing, borderSize, gap int, hint sizeHint) (int, int) {
	var constraint int
	if direction == Horizontal {
		constraint = n.Style.Width.Cells - padding.Left - padding.Right - borderSize
	} else {
		constraint = n.Style.Height.Cells - padding.Top - padding.Bottom - borderSize
	}
	constraint = max(constraint, 0)

	childHint := hint
	if direction == Horizontal {
		childHint = sizeHint{w: constraint, h: hint.h, valid: true}
	} else {
		childHint = sizeHint{w: hint.w, h: constraint, valid: true}
	}

	type size struct{ w, h int }
	var sizes []size
	for _, child := range n.Children {
		cw, ch := childIntrinsic(child, childHint, hint)
		sizes = append(sizes, size{w: cw, h: ch})
	}

	if direction == Horizontal {
		// Pack into rows; height is the sum of row heights plus gaps.
		totalH := 0
		rowW, rowH, rows := 0, 0, 0
		for _, s := range sizes {
			next := s.w
			if rowW > 0 {
				next = rowW + gap + s.w
			}
			if rowW > 0 && next > constraint {
				totalH += rowH
				rows++
				rowW, rowH = s.w, s.h
			} else {
				rowW = next
				rowH = max(rowH, s.h)
			}
		}
		if rowW > 0 || rows == 0 {
			totalH += rowH
			rows++
		}
		totalH += (rows - 1) * gap

		return constraint + padding.Left + padding.Right + borderSize,
			totalH + padding.Top + padding.Bottom + borderSize
	}

	// Vertical: pack into columns; width is the sum of column widths.
	totalW := 0
	colH, colW, cols := 0, 0, 0
	for _, s := range sizes {
		next := s.h
		if colH > 0 {
			next = colH + gap + s.h
		}
		if colH > 0 && next > constraint {
			totalW += colW
			cols++
			colH, colW = s.h, s.w
		} else {
			colH = next
			colW = max(colW, s.w)
		}
	}
	if colH > 0 || cols == 0 {
		totalW += colW
		cols++
	}
	totalW += (cols - 1) * gap

	return totalW + padding.Left + padding.Right + borderSize,
		constraint + padding.Top + padding.Bottom + borderSize
}

// childOutOfFlow reports whether the child is absolutely or fixed
// positioned and therefore skipped by normal flow.
func childOutOfFlow(child *RenderNode) bool {
	if child.Style != nil && child.Style.Position != nil {
		p := *child.Style.Position
		return p == PositionAbsolute || p == PositionFixed
	}
	return false
}
