package rxtui

import (
	"context"
	"reflect"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Effect is a long-lived task spawned when its component mounts. The task
// should watch ctx.Done() and return promptly when cancelled; cancellation
// happens when the component unmounts or the app shuts down. Effects
// communicate with components only by sending messages through the
// component Context they captured at declaration time.
type Effect func(ctx context.Context)

// effectKey identifies one spawned effect set: a component instance at a
// path together with its concrete type. A component re-appearing at the
// same path with a different type cancels the previous type's effects.
type effectKey struct {
	id  ComponentID
	typ reflect.Type
}

// effectTracker remembers which (component, type) pairs have running
// effects.
type effectTracker struct {
	spawned map[effectKey]bool
}

func newEffectTracker() *effectTracker {
	return &effectTracker{spawned: make(map[effectKey]bool)}
}

func (t *effectTracker) has(id ComponentID, typ reflect.Type) bool {
	return t.spawned[effectKey{id: id, typ: typ}]
}

func (t *effectTracker) mark(id ComponentID, typ reflect.Type) {
	t.spawned[effectKey{id: id, typ: typ}] = true
}

func (t *effectTracker) remove(id ComponentID, typ reflect.Type) {
	delete(t.spawned, effectKey{id: id, typ: typ})
}

func (t *effectTracker) all() []effectKey {
	keys := make([]effectKey, 0, len(t.spawned))
	for k := range t.spawned {
		keys = append(keys, k)
	}
	return keys
}

// effectRuntime runs effects on worker goroutines, one group per component
// identity. Cancellation is cooperative: Cleanup cancels the group's
// context and the tasks exit at their next suspension point.
type effectRuntime struct {
	mu     sync.Mutex
	groups map[ComponentID]*effectGroup
}

type effectGroup struct {
	cancel context.CancelFunc
	eg     *errgroup.Group
}

func newEffectRuntime() *effectRuntime {
	return &effectRuntime{groups: make(map[ComponentID]*effectGroup)}
}

// Spawn starts the given effects under a fresh cancellable group for the
// component.
func (r *effectRuntime) Spawn(id ComponentID, effects []Effect) {
	if len(effects) == 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	eg, ctx := errgroup.WithContext(ctx)
	for _, effect := range effects {
		fn := effect
		eg.Go(func() error {
			fn(ctx)
			return nil
		})
	}

	r.mu.Lock()
	if prev := r.groups[id]; prev != nil {
		prev.cancel()
	}
	r.groups[id] = &effectGroup{cancel: cancel, eg: eg}
	r.mu.Unlock()
}

// Cleanup cancels the component's effects. Tasks are dropped
// cooperatively; Cleanup does not wait for them to finish.
func (r *effectRuntime) Cleanup(id ComponentID) {
	r.mu.Lock()
	g := r.groups[id]
	delete(r.groups, id)
	r.mu.Unlock()

	if g != nil {
		g.cancel()
	}
}

// Shutdown cancels every group and waits for all tasks to exit.
func (r *effectRuntime) Shutdown() {
	r.mu.Lock()
	groups := make([]*effectGroup, 0, len(r.groups))
	for _, g := range r.groups {
		groups = append(groups, g)
	}
	r.groups = make(map[ComponentID]*effectGroup)
	r.mu.Unlock()

	for _, g := range groups {
		g.cancel()
	}
	for _, g := range groups {
		g.eg.Wait()
	}
}
