package rxtui

// handleKeyEvent routes a key press:
//  1. chord handlers (key + exact modifiers) on the focused element;
//  2. if none consumed it, plain-key handlers on the focused element,
//     plus OnAnyKey/OnAnyChar;
//  3. global handlers tree-wide (all matching handlers fire).
//
// Unconsumed Tab/BackTab cycle focus; arrows and page keys scroll a
// focused scrollable.
func (a *App) handleKeyEvent(ev KeyEvent) {
	tree := a.vdom.Tree()
	focused := tree.FocusedNode()
	consumed := false

	if focused != nil {
		for _, h := range focused.Events.OnKeyChord {
			if !h.Global && h.Chord.Matches(ev) {
				h.Fn()
				consumed = true
				break
			}
		}

		if !consumed {
			if focused.Events.OnAnyKey != nil {
				focused.Events.OnAnyKey(ev)
			}
			if ev.Key == KeyRune && focused.Events.OnAnyChar != nil {
				focused.Events.OnAnyChar(ev.Rune)
			}
			for _, h := range focused.Events.OnKey {
				if !h.Global && h.Chord.MatchesKey(ev) {
					h.Fn()
					consumed = true
					break
				}
			}
		}
	}

	// Global handlers fire regardless of focus; multiple handlers for the
	// same key all run.
	dispatchGlobalKey(tree.Root, ev)

	if consumed {
		return
	}

	switch ev.Key {
	case KeyTab:
		tree.FocusNext()
	case KeyBackTab:
		tree.FocusPrev()
	case KeyUp:
		if focused != nil && focused.Scrollable {
			focused.UpdateScroll(-1)
		}
	case KeyDown:
		if focused != nil && focused.Scrollable {
			focused.UpdateScroll(1)
		}
	case KeyPageUp:
		if focused != nil && focused.Scrollable {
			focused.UpdateScroll(-focused.Height)
		}
	case KeyPageDown:
		if focused != nil && focused.Scrollable {
			focused.UpdateScroll(focused.Height)
		}
	}
}

// dispatchGlobalKey walks the tree and fires every matching global handler.
func dispatchGlobalKey(n *RenderNode, ev KeyEvent) {
	if n == nil {
		return
	}
	for _, h := range n.Events.OnKeyChord {
		if h.Global && h.Chord.Matches(ev) {
			h.Fn()
		}
	}
	for _, h := range n.Events.OnKey {
		if h.Global && h.Chord.MatchesKey(ev) {
			h.Fn()
		}
	}
	for _, child := range n.Children {
		dispatchGlobalKey(child, ev)
	}
}

// handleMouseEvent routes mouse input: clicks pick the topmost non-text
// node and focus it when focusable; wheel ticks scroll the nearest
// scrollable under the cursor; motion drives hover state.
func (a *App) handleMouseEvent(ev MouseEvent) {
	tree := a.vdom.Tree()

	switch ev.Kind {
	case MousePress:
		target := tree.FindNodeAt(ev.X, ev.Y)
		if target == nil {
			return
		}
		if target.Focusable {
			tree.SetFocusedNode(target)
		}
		if target.Events.OnClick != nil {
			target.Events.OnClick()
		}

	case MouseMove:
		tree.SetHoveredNode(tree.FindNodeAt(ev.X, ev.Y))

	case MouseScrollUp:
		if target := a.scrollTarget(ev.X, ev.Y); target != nil {
			target.UpdateScroll(-1)
		}
	case MouseScrollDown:
		if target := a.scrollTarget(ev.X, ev.Y); target != nil {
			target.UpdateScroll(1)
		}
	}
}

// scrollTarget finds the scrollable that should receive a wheel tick: the
// nearest scrollable at or above the node under the cursor, falling back
// to the focused or hovered node's scrollable ancestor.
func (a *App) scrollTarget(x, y int) *RenderNode {
	tree := a.vdom.Tree()

	if n := tree.FindNodeAt(x, y); n != nil {
		if s := scrollableAncestor(n); s != nil {
			return s
		}
	}
	if s := scrollableAncestor(tree.FocusedNode()); s != nil {
		return s
	}
	return scrollableAncestor(tree.HoveredNode())
}

// scrollableAncestor returns n or its nearest scrollable ancestor.
func scrollableAncestor(n *RenderNode) *RenderNode {
	for ; n != nil; n = n.Parent {
		if n.Scrollable {
			return n
		}
	}
	return nil
}
