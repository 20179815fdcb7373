package rxtui

// justifyOffsets returns the leading offset and per-item spacing for a
// JustifyContent mode given the leftover space along the main axis.
func justifyOffsets(justify JustifyContent, available, itemCount, gap int) (lead, spacing int) {
	switch justify {
	case JustifyEnd:
		return available, gap
	case JustifyCenter:
		return available / 2, gap
	case JustifySpaceBetween:
		if itemCount > 1 {
			return 0, available / (itemCount - 1)
		}
		return 0, gap
	case JustifySpaceAround:
		if itemCount > 0 {
			s := available / itemCount
			return s / 2, s
		}
		return 0, gap
	case JustifySpaceEvenly:
		if itemCount > 0 {
			s := available / (itemCount + 1)
			return s, s
		}
		return 0, gap
	default:
		return 0, gap
	}
}

// effectiveAlign resolves a child's cross-axis alignment from the parent's
// AlignItems and the child's AlignSelf override.
func effectiveAlign(parentAlign AlignItems, child *RenderNode) AlignItems {
	if child.Style != nil && child.Style.AlignSelf != nil {
		switch *child.Style.AlignSelf {
		case AlignSelfStart:
			return AlignStart
		case AlignSelfCenter:
			return AlignCenter
		case AlignSelfEnd:
			return AlignEnd
		}
	}
	return parentAlign
}

// crossOffset returns the cross-axis displacement for an alignment given
// the leftover space.
func crossOffset(align AlignItems, space int) int {
	switch align {
	case AlignCenter:
		return max(0, space) / 2
	case AlignEnd:
		return max(0, space)
	default:
		return 0
	}
}

// applyMinMax clamps the node's dimensions to its min/max constraints.
func (n *RenderNode) applyMinMax() {
	if n.Style == nil {
		return
	}
	if n.Style.MinWidth != nil {
		n.Width = max(n.Width, *n.Style.MinWidth)
	}
	if n.Style.MaxWidth != nil {
		n.Width = min(n.Width, *n.Style.MaxWidth)
	}
	if n.Style.MinHeight != nil {
		n.Height = max(n.Height, *n.Style.MinHeight)
	}
	if n.Style.MaxHeight != nil {
		n.Height = min(n.Height, *n.Style.MaxHeight)
	}
}

// layoutWithParent resolves this node's dimensions against the parent's
// content box, applies text wrapping, and lays out children.
func (n *RenderNode) layoutWithParent(parentWidth, parentHeight int) {
	// Re-wrap already-wrapped text from its source so width changes from a
	// resize take effect.
	switch n.Kind {
	case NodeTextWrapped:
		n.Kind = NodeText
		n.Lines = nil
	case NodeRichTextWrapped:
		n.Kind = NodeRichText
		n.SpanLines = nil
	}

	intrinsicW, intrinsicH := n.IntrinsicSize()

	hasAlignment := false
	if _, ok := n.TextStyle.Alignment(); ok {
		hasAlignment = true
	}

	if n.Style != nil {
		switch {
		case n.Style.Width == nil:
			// Text widened by the parent for alignment keeps that width.
			if !(hasAlignment && n.Width >= intrinsicW) {
				n.Width = min(intrinsicW, parentWidth)
			}
		default:
			switch n.Style.Width.Kind {
			case DimPercentage:
				n.Width = max(1, int(float64(parentWidth)*n.Style.Width.Frac))
			case DimFixed:
				n.Width = n.Style.Width.Cells
			case DimContent:
				n.Width = min(intrinsicW, parentWidth)
			case DimAuto:
				// Resolved by the parent's layout; keep as set.
			}
		}

		switch {
		case n.Style.Height == nil:
			n.Height = min(intrinsicH, parentHeight)
		default:
			switch n.Style.Height.Kind {
			case DimPercentage:
				n.Height = max(1, int(float64(parentHeight)*n.Style.Height.Frac))
			case DimFixed:
				n.Height = n.Style.Height.Cells
			case DimContent:
				n.Height = min(intrinsicH, parentHeight)
			case DimAuto:
				// Resolved by the parent's layout; keep as set.
			}
		}
	} else {
		if !(hasAlignment && n.Width >= intrinsicW) {
			n.Width = min(intrinsicW, parentWidth)
		}
		n.Height = min(intrinsicH, parentHeight)
	}

	n.applyMinMax()

	// Wrap text once the final width is known.
	if n.Kind == NodeText || n.Kind == NodeRichText {
		wrapWidth := min(n.Width, parentWidth)
		if n.Style != nil && n.Style.Width != nil && n.Style.Width.Kind == DimFixed {
			wrapWidth = n.Style.Width.Cells
		}
		n.applyTextWrapping(wrapWidth)
	}

	n.layoutChildren()
}

// layoutChildren positions this node's children inside its content box.
func (n *RenderNode) layoutChildren() {
	direction := n.styleDirection()
	padding := n.stylePadding()
	borderOffset := n.borderOffset()

	contentWidth := max(0, n.Width-padding.Left-padding.Right-borderOffset*2)
	contentHeight := max(0, n.Height-padding.Top-padding.Bottom-borderOffset*2)

	gap := 0
	if n.Style != nil && n.Style.Gap != nil {
		gap = *n.Style.Gap
	}

	if n.Style != nil && n.Style.Wrap != nil && *n.Style.Wrap != NoWrap {
		n.layoutChildrenWrapped(direction, contentWidth, contentHeight, padding, borderOffset, gap)
		n.finishLayout(padding, borderOffset)
		return
	}

	// First pass: classify children and compute provisional main-axis
	// sizes. Auto children are deferred; text siblings use their natural
	// size even when Auto.
	var outOfFlow []int
	var autoChildren []int
	usedSpace := 0
	childSizes := make([]int, len(n.Children))

	for i, child := range n.Children {
		if child.Style != nil {
			if child.Style.Position != nil {
				child.PositionType = *child.Style.Position
			} else {
				child.PositionType = PositionRelative
			}
			if child.Style.ZIndex != nil {
				child.ZIndex = *child.Style.ZIndex
			} else {
				child.ZIndex = 0
			}
		} else {
			child.PositionType = PositionRelative
			child.ZIndex = 0
		}

		if child.PositionType == PositionAbsolute || child.PositionType == PositionFixed {
			outOfFlow = append(outOfFlow, i)
			continue
		}

		// Wrap text early so heights are correct during sizing.
		if child.Kind == NodeText || child.Kind == NodeRichText {
			if child.TextStyle.WrapMode() != TextWrapNone {
				wrapWidth := contentWidth
				if child.Style != nil && child.Style.Width != nil {
					switch child.Style.Width.Kind {
					case DimFixed:
						wrapWidth = child.Style.Width.Cells
					case DimPercentage:
						wrapWidth = int(float64(contentWidth) * child.Style.Width.Frac)
					}
				}
				child.applyTextWrapping(wrapWidth)
			}
		}

		dim := child.styleDimension(direction == Horizontal)
		size := 0
		switch {
		case dim != nil && dim.Kind == DimFixed:
			size = dim.Cells
			usedSpace += size
		case dim != nil && dim.Kind == DimPercentage:
			parentSize := contentHeight
			if direction == Horizontal {
				parentSize = contentWidth
			}
			size = int(float64(parentSize) * dim.Frac)
			usedSpace += size
		case dim != nil && dim.Kind == DimContent:
			iw, ih := child.IntrinsicSize()
			if direction == Horizontal {
				size = iw
			} else {
				size = ih
			}
			usedSpace += size
		case dim != nil && dim.Kind == DimAuto:
			autoChildren = append(autoChildren, i)
			if child.IsTextKind() {
				// Natural text size wins over Auto distribution.
				if direction == Horizontal {
					size = child.naturalWidth()
				} else {
					size = child.naturalHeight()
				}
				usedSpace += size
			}
		default:
			iw, ih := child.IntrinsicSize()
			if direction == Horizontal {
				size = iw
			} else {
				size = ih
			}
			usedSpace += size
		}
		childSizes[i] = size
	}

	// Second pass: divide leftover space equally among Auto children.
	available := contentHeight - usedSpace
	if direction == Horizontal {
		available = contentWidth - usedSpace
	}
	available = max(0, available)

	if len(autoChildren) > 0 {
		autoSize := available / len(autoChildren)
		for _, i := range autoChildren {
			if !n.Children[i].IsTextKind() {
				childSizes[i] = autoSize
			}
		}
	}

	inFlowCount := len(n.Children) - len(outOfFlow)
	totalGaps := 0
	if inFlowCount > 1 {
		totalGaps = gap * (inFlowCount - 1)
	}

	totalChildrenSize := 0
	for i, size := range childSizes {
		if n.Children[i].PositionType == PositionAbsolute || n.Children[i].PositionType == PositionFixed {
			continue
		}
		totalChildrenSize += size
	}

	justify := JustifyStart
	if n.Style != nil && n.Style.Justify != nil {
		justify = *n.Style.Justify
	}
	alignItems := AlignStart
	if n.Style != nil && n.Style.AlignItems != nil {
		alignItems = *n.Style.AlignItems
	}

	mainExtent := contentHeight
	if direction == Horizontal {
		mainExtent = contentWidth
	}
	offset, itemSpacing := justifyOffsets(justify, max(0, mainExtent-totalChildrenSize-totalGaps), inFlowCount, gap)

	lastInFlow := -1
	for i := range n.Children {
		if n.Children[i].PositionType != PositionAbsolute && n.Children[i].PositionType != PositionFixed {
			lastInFlow = i
		}
	}

	// Third pass: size the cross axis, place, and recurse.
	originX := n.X + padding.Left + borderOffset
	originY := n.Y + padding.Top + borderOffset

	for i, child := range n.Children {
		if child.PositionType == PositionAbsolute || child.PositionType == PositionFixed {
			continue
		}

		if direction == Vertical {
			child.Height = childSizes[i]
			n.resolveCrossAxis(child, true, contentWidth, contentHeight)
			space := contentWidth - child.Width
			child.X = originX + crossOffset(effectiveAlign(alignItems, child), space)
			child.Y = originY + offset
		} else {
			child.Width = childSizes[i]
			n.resolveCrossAxis(child, false, contentWidth, contentHeight)
			space := contentHeight - child.Height
			child.X = originX + offset
			child.Y = originY + crossOffset(effectiveAlign(alignItems, child), space)
		}

		offset += childSizes[i]
		if i != lastInFlow {
			offset += itemSpacing
		} else if justify == JustifySpaceAround || justify == JustifySpaceEvenly {
			offset += itemSpacing
		}

		child.layoutWithParent(contentWidth, contentHeight)
	}

	// Position out-of-flow children after the flow.
	for _, i := range outOfFlow {
		child := n.Children[i]
		switch child.PositionType {
		case PositionFixed:
			n.positionAbsoluteChild(child, 0, 0, contentWidth, contentHeight)
		case PositionAbsolute:
			n.positionAbsoluteChild(child, n.X, n.Y, n.Width, n.Height)
		}
		child.layoutWithParent(contentWidth, contentHeight)
	}

	n.finishLayout(padding, borderOffset)
}

// resolveCrossAxis sizes a child along the cross axis per its own spec, or
// intrinsically when absent. Text nodes with an alignment set are widened
// to the full content-box extent so alignment is meaningful.
func (n *RenderNode) resolveCrossAxis(child *RenderNode, horizontalAxis bool, contentWidth, contentHeight int) {
	extent := contentHeight
	if horizontalAxis {
		extent = contentWidth
	}

	set := func(v int) {
		if horizontalAxis {
			child.Width = v
		} else {
			child.Height = v
		}
	}

	var dim *Dimension
	if child.Style != nil {
		if horizontalAxis {
			dim = child.Style.Width
		} else {
			dim = child.Style.Height
		}
	}

	_, hasAlignment := child.TextStyle.Alignment()

	if dim == nil {
		if child.IsTextKind() && hasAlignment && horizontalAxis {
			set(extent)
			return
		}
		iw, ih := child.IntrinsicSize()
		if horizontalAxis {
			set(min(iw, extent))
		} else {
			set(min(ih, extent))
		}
		return
	}

	switch dim.Kind {
	case DimFixed:
		set(dim.Cells)
	case DimPercentage:
		set(int(float64(extent) * dim.Frac))
	case DimContent:
		iw, ih := child.IntrinsicSize()
		if horizontalAxis {
			set(min(iw, extent))
		} else {
			set(min(ih, extent))
		}
	case DimAuto:
		if child.IsTextKind() {
			if horizontalAxis {
				if hasAlignment {
					set(extent)
				} else {
					set(child.naturalWidth())
				}
			} else {
				set(child.naturalHeight())
			}
			return
		}
		// Auto on the cross axis fills the available extent.
		set(extent)
	}
}

// positionAbsoluteChild places an out-of-flow child against its containing
// box, honoring the top/right/bottom/left offsets.
func (n *RenderNode) positionAbsoluteChild(child *RenderNode, containerX, containerY, containerWidth, containerHeight int) {
	if child.Style == nil {
		child.X = containerX
		child.Y = containerY
		return
	}

	x := containerX
	y := containerY

	if child.Style.Left != nil {
		x = containerX + *child.Style.Left
	} else if child.Style.Right != nil {
		x = containerX + containerWidth - child.Width - *child.Style.Right
	}

	if child.Style.Top != nil {
		y = containerY + *child.Style.Top
	} else if child.Style.Bottom != nil {
		y = containerY + containerHeight - child.Height - *child.Style.Bottom
	}

	child.X = max(0, x)
	child.Y = max(0, y)
}

// layoutChildrenWrapped packs children greedily into rows (or columns),
// applying justify-content per row and align-items within the row.
func (n *RenderNode) layoutChildrenWrapped(direction Direction, contentWidth, contentHeight int, padding Spacing, borderOffset, gap int) {
	startX := n.X + padding.Left + borderOffset
	startY := n.Y + padding.Top + borderOffset

	justify := JustifyStart
	if n.Style != nil && n.Style.Justify != nil {
		justify = *n.Style.Justify
	}
	alignItems := AlignStart
	if n.Style != nil && n.Style.AlignItems != nil {
		alignItems = *n.Style.AlignItems
	}

	// Resolve every child's own dimensions first.
	for _, child := range n.Children {
		child.layoutWithParent(contentWidth, contentHeight)
	}

	type lineInfo struct {
		start, end int // child index range [start, end)
		main       int // summed main-axis size without gaps
		cross      int // max cross-axis size
	}

	mainExtent := contentWidth
	if direction == Vertical {
		mainExtent = contentHeight
	}

	var lines []lineInfo
	cur := lineInfo{}
	curWithGaps := 0
	for i, child := range n.Children {
		childMain := child.Width
		childCross := child.Height
		if direction == Vertical {
			childMain, childCross = child.Height, child.Width
		}

		next := childMain
		if cur.main > 0 {
			next = curWithGaps + gap + childMain
		}
		if cur.main > 0 && next > mainExtent {
			cur.end = i
			lines = append(lines, cur)
			cur = lineInfo{start: i, main: childMain, cross: childCross}
			curWithGaps = childMain
		} else {
			if cur.main == 0 {
				cur.start = i
			}
			cur.main += childMain
			curWithGaps = next
			cur.cross = max(cur.cross, childCross)
		}
	}
	if cur.start < len(n.Children) {
		cur.end = len(n.Children)
		lines = append(lines, cur)
	}

	crossPos := startY
	if direction == Vertical {
		crossPos = startX
	}

	for _, line := range lines {
		count := line.end - line.start
		gapsTotal := 0
		if count > 1 {
			gapsTotal = gap * (count - 1)
		}
		available := max(0, mainExtent-line.main-gapsTotal)

		lead, spacing := justifyOffsets(justify, available, count, gap)
		if justify == JustifySpaceBetween && count > 1 {
			// Each row redistributes its own leftover space; the configured
			// gap folds into the between-item spacing.
			spacing = (available + gap*(count-1)) / (count - 1)
		}
		if justify == JustifySpaceAround || justify == JustifySpaceEvenly {
			spacing += gap
		}

		mainPos := lead
		if direction == Horizontal {
			mainPos += startX
		} else {
			mainPos += startY
		}

		for i := line.start; i < line.end; i++ {
			child := n.Children[i]
			if direction == Horizontal {
				space := line.cross - child.Height
				child.X = mainPos
				child.Y = crossPos + crossOffset(effectiveAlign(alignItems, child), space)
				mainPos += child.Width
			} else {
				space := line.cross - child.Width
				child.X = crossPos + crossOffset(effectiveAlign(alignItems, child), space)
				child.Y = mainPos
				mainPos += child.Height
			}
			if i < line.end-1 {
				mainPos += spacing
			}
		}

		crossPos += line.cross + gap
	}

	// Children moved after their own layout ran; lay their subtrees out
	// again from the final positions.
	for _, child := range n.Children {
		child.layoutChildren()
	}
}

// finishLayout records content extents and the scrollable flag after
// children are placed.
func (n *RenderNode) finishLayout(padding Spacing, borderOffset int) {
	n.computeContentDimensions(padding, borderOffset)

	switch n.styleOverflow() {
	case OverflowScroll, OverflowAuto:
		n.Scrollable = true
		// Promote to focusable so keyboard scrolling is always reachable.
		if !n.Focusable && n.Events.OnClick == nil {
			n.Focusable = true
		}
	default:
		n.Scrollable = false
	}
	n.ScrollY = min(n.ScrollY, n.MaxScrollY())
}

// computeContentDimensions measures the bounding extent of in-flow
// children, adding trailing padding when they overflow the container.
// The result drives scroll ranges.
func (n *RenderNode) computeContentDimensions(padding Spacing, borderOffset int) {
	if len(n.Children) == 0 {
		n.ContentWidth = n.Width
		n.ContentHeight = n.Height
		return
	}

	maxX, maxY := 0, 0
	for _, child := range n.Children {
		if child.PositionType == PositionAbsolute || child.PositionType == PositionFixed {
			continue
		}
		if child.X >= n.X {
			maxX = max(maxX, child.X+child.Width-n.X)
		}
		if child.Y >= n.Y {
			maxY = max(maxY, child.Y+child.visualHeight()-n.Y)
		}
	}

	if maxX > n.Width {
		maxX += padding.Right + borderOffset
	}
	if maxY > n.Height {
		maxY += padding.Bottom + borderOffset
	}

	n.ContentWidth = max(n.Width, maxX)
	n.ContentHeight = max(n.Height, maxY)
}
