package rxtui

import "github.com/zerocore-ai/rxtui/internal/debug"

// Run starts the main loop with the given root component and blocks until
// a component returns ActionExit or Stop is called. Terminal state is
// restored on exit.
func (a *App) Run(root Component) error {
	if err := a.setupTerminal(); err != nil {
		return err
	}
	defer a.restoreTerminal()
	defer a.effects.Shutdown()

	rootCtx := (&Context{core: a.core}).at(RootComponentID)

	// The root component's effects are spawned once at startup and never
	// cleaned up.
	rootType := componentType(root)
	if !a.tracker.has(RootComponentID, rootType) {
		if effects := root.Effects(rootCtx); len(effects) > 0 {
			a.effects.Spawn(RootComponentID, effects)
		}
		a.tracker.mark(RootComponentID, rootType)
	}

	a.running = true
	a.needsRender = true

	for a.running {
		if a.core.hasPendingMessages() {
			a.needsRender = true
		}

		seen := make(map[ComponentID]Component)
		tree, exit := a.expandComponent(root, rootCtx, seen)
		if exit {
			break
		}
		a.syncEffects(seen)

		if a.needsRender {
			a.vdom.Render(tree)

			if err := a.drawFrame(); err != nil {
				// Terminal I/O failures are fatal for the frame only; the
				// next tick retries with a full redraw.
				debug.Log("draw failed: %v", err)
				a.fullRedraw = true
			} else {
				a.needsRender = false
			}

			if a.renderLogFn != nil {
				a.renderLogFn(a.vdom.Tree().DebugString())
			}
		}

		event, ok := a.host.PollEvent(a.config.PollInterval)
		if !ok {
			continue
		}
		switch ev := event.(type) {
		case KeyEvent:
			a.handleKeyEvent(ev)
			a.needsRender = true
		case MouseEvent:
			a.handleMouseEvent(ev)
			a.needsRender = true
		case ResizeEvent:
			a.handleResize(ev)
			a.needsRender = true
		}
	}

	return nil
}

// expandComponent delivers pending messages to the component, then expands
// its view into a component-free tree. Returns exit=true when any Update
// returned ActionExit.
func (a *App) expandComponent(comp Component, ctx *Context, seen map[ComponentID]Component) (Node, bool) {
	if exit := a.deliverMessages(comp, ctx); exit {
		return nil, true
	}

	view := comp.View(ctx)
	if view == nil {
		return NewDiv(), false
	}
	return a.expandNode(view, ctx, ctx.ComponentID(), 0, seen)
}

// deliverMessages drains the component's mailbox and owned topics, then
// offers unclaimed topic messages. A topic is claimed when the component
// answers its first message with ActionUpdate; until claimed, topic
// messages remain queued for later receivers.
func (a *App) deliverMessages(comp Component, ctx *Context) bool {
	id := ctx.ComponentID()

	for _, qm := range a.core.drainDirect(id) {
		action := comp.Update(ctx, qm.msg, qm.topic)
		if exit := a.applyAction(action, id); exit {
			return true
		}
	}

	for _, topic := range a.core.unclaimedTopics() {
		msg, ok := a.core.peekTopic(topic)
		if !ok {
			continue
		}

		action := comp.Update(ctx, msg, topic)
		switch action.kind {
		case actionUpdate:
			a.core.setState(id, action.state)
			// Claiming the topic delivers the rest of its queue too.
			for _, m := range a.core.claimTopic(topic, id) {
				if exit := a.applyAction(comp.Update(ctx, m, topic), id); exit {
					return true
				}
			}
		case actionUpdateTopic:
			a.core.updateTopicState(action.topic, id, action.state)
			if action.topic == topic {
				for _, m := range a.core.claimTopic(topic, id) {
					if exit := a.applyAction(comp.Update(ctx, m, topic), id); exit {
						return true
					}
				}
			}
		case actionExit:
			return true
		case actionNone:
			// Unhandled; the topic stays unclaimed and its messages queued.
		}
	}

	return false
}

// applyAction folds an Update result into stored state. Returns true for
// ActionExit.
func (a *App) applyAction(action Action, id ComponentID) bool {
	switch action.kind {
	case actionUpdate:
		a.core.setState(id, action.state)
	case actionUpdateTopic:
		a.core.updateTopicState(action.topic, id, action.state)
	case actionExit:
		return true
	}
	return false
}

// expandNode converts a view node into a component-free tree. The identity
// path descends by child index through both components and divs, so every
// component instance gets a stable key distinct from its siblings.
func (a *App) expandNode(node Node, ctx *Context, parentID ComponentID, childIndex int, seen map[ComponentID]Component) (Node, bool) {
	switch n := node.(type) {
	case *ComponentNode:
		id := parentID.Child(childIndex)
		seen[id] = n.Component
		childCtx := ctx.at(id)
		return a.expandComponent(n.Component, childCtx, seen)

	case *Div:
		scopeID := parentID.Child(childIndex)

		expanded := &Div{
			Styles:        n.Styles,
			Events:        n.Events,
			Focusable:     n.Focusable,
			Focused:       n.Focused,
			Hovered:       n.Hovered,
			ComponentPath: parentID,
		}
		for i, child := range n.Children {
			childNode, exit := a.expandNode(child, ctx, scopeID, i, seen)
			if exit {
				return nil, true
			}
			expanded.Children = append(expanded.Children, childNode)
		}
		return expanded, false

	default:
		return node, false
	}
}

// syncEffects spawns effects for newly mounted components and cancels
// effects of components that disappeared or changed type at their path.
func (a *App) syncEffects(seen map[ComponentID]Component) {
	for id, comp := range seen {
		if id == RootComponentID {
			continue
		}
		typ := componentType(comp)
		if a.tracker.has(id, typ) {
			continue
		}
		ctx := (&Context{core: a.core}).at(id)
		if effects := comp.Effects(ctx); len(effects) > 0 {
			a.effects.Spawn(id, effects)
		}
		a.tracker.mark(id, typ)
	}

	for _, key := range a.tracker.all() {
		if key.id == RootComponentID {
			continue
		}
		comp, present := seen[key.id]
		if present && componentType(comp) == key.typ {
			continue
		}
		// Unmounted, or remounted with a different type.
		a.effects.Cleanup(key.id)
		a.tracker.remove(key.id, key.typ)
	}
}

// applyFocusRequests applies queued focus requests, then honours a pending
// focus clear only when no request landed this frame.
func (a *App) applyFocusRequests() {
	tree := a.vdom.Tree()
	applied := false

	for _, req := range a.core.takeFocusRequests() {
		switch req.kind {
		case focusTargetComponent:
			if root := tree.FindComponentRoot(req.id); root != nil {
				if target := tree.FindFirstFocusableIn(root); target != nil {
					tree.SetFocusedNode(target)
					applied = true
				}
			}
		case focusTargetGlobalFirst:
			if target := tree.FindFirstFocusable(); target != nil {
				tree.SetFocusedNode(target)
				applied = true
			}
		}
	}

	if a.core.takeFocusClear() && !applied {
		tree.SetFocusedNode(nil)
	}
}
