package rxtui

// drawFrame lays out at the current terminal size, applies focus requests,
// rasterizes into the back buffer, and flushes the cell diff.
func (a *App) drawFrame() error {
	if a.mode == ModeInline {
		return a.drawInline()
	}
	return a.drawAlternate()
}

// drawAlternate renders a full-viewport frame in alternate screen mode.
func (a *App) drawAlternate() error {
	width, height := a.host.Size()

	if bw, bh := a.buffers.Size(); bw != width || bh != height {
		a.buffers.Resize(width, height)
		a.buffers.Reset()
		a.fullRedraw = true
	}

	a.vdom.Layout(width, height)
	a.applyFocusRequests()

	a.buffers.ClearBack()
	if root := a.vdom.Tree().Root; root != nil {
		RenderToBuffer(root, a.buffers.Back(), NewRect(0, 0, width, height), nil)
	}

	if err := a.flush(0); err != nil {
		return err
	}

	a.buffers.Swap()
	a.vdom.Tree().ClearAllDirty()
	return nil
}

// drawInline renders into the reserved inline region, growing it when
// content does.
func (a *App) drawInline() error {
	termWidth, termHeight := a.host.Size()

	// Content heights lay out unclamped so the root can grow beyond the
	// viewport; the render height below handles clipping.
	unclamped := a.inlineCfg.Height.Kind == InlineHeightContent
	layoutHeight := termHeight
	if a.inlineCfg.Height.Kind == InlineHeightFixed {
		layoutHeight = a.inlineCfg.Height.Value
	}

	a.vdom.LayoutWithOptions(termWidth, layoutHeight, unclamped)
	a.applyFocusRequests()

	contentHeight := 1
	if root := a.vdom.Tree().Root; root != nil {
		contentHeight = root.Height
	}

	renderHeight := contentHeight
	switch a.inlineCfg.Height.Kind {
	case InlineHeightFixed:
		renderHeight = a.inlineCfg.Height.Value
	case InlineHeightContent:
		if a.inlineCfg.Height.HasCap {
			renderHeight = min(contentHeight, a.inlineCfg.Height.Value)
		}
	case InlineHeightFill:
		renderHeight = max(contentHeight, a.inlineCfg.Height.Value)
	}
	renderHeight = max(renderHeight, 1)

	if !a.inline.initialized {
		if err := a.inline.reserve(a.host, renderHeight, termHeight); err != nil {
			return err
		}
	} else if renderHeight > a.inline.reservedHeight {
		if err := a.inline.expand(a.host, renderHeight, termHeight); err != nil {
			return err
		}
	}

	if bw, bh := a.buffers.Size(); bw != termWidth || bh != renderHeight {
		a.buffers.Resize(termWidth, renderHeight)
		a.buffers.Reset()
		a.fullRedraw = true
	}

	a.buffers.ClearBack()
	if root := a.vdom.Tree().Root; root != nil {
		RenderToBuffer(root, a.buffers.Back(), NewRect(0, 0, termWidth, renderHeight), nil)
	}

	if err := a.flush(a.inline.originRow); err != nil {
		return err
	}

	a.buffers.Swap()
	a.vdom.Tree().ClearAllDirty()
	return nil
}

// flush emits the frame's updates at the given row offset, honoring the
// render configuration switches.
func (a *App) flush(originRow int) error {
	var updates []CellUpdate
	if a.config.DoubleBuffering && a.config.CellDiffing && !a.fullRedraw {
		updates = a.buffers.Diff()
	} else {
		updates = a.allCells()
		a.fullRedraw = false
	}

	if a.config.TerminalOptimizations {
		return a.writer.ApplyUpdatesOffset(updates, originRow)
	}
	return a.writer.ApplyUpdatesDirect(updates, originRow)
}

// allCells lists every back-buffer cell as an update, forcing a full
// retransmit.
func (a *App) allCells() []CellUpdate {
	back := a.buffers.Back()
	width, height := back.Size()
	updates := make([]CellUpdate, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			updates = append(updates, CellUpdate{X: x, Y: y, Cell: back.Cell(x, y)})
		}
	}
	return updates
}

// handleResize resizes buffers and forces a full relayout and retransmit,
// clearing the front buffer so every cell is resent.
func (a *App) handleResize(ev ResizeEvent) {
	switch a.mode {
	case ModeInline:
		a.inline.handleResize(ev.Width, ev.Height)
		a.buffers.Resize(ev.Width, a.buffers.back.Height())
	default:
		a.buffers.Resize(ev.Width, ev.Height)
	}
	a.buffers.Reset()
	a.fullRedraw = true
}
