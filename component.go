package rxtui

import (
	"reflect"
	"strconv"
)

// Message is an opaque value delivered to a component's Update.
type Message = any

// ComponentID is the stable identity of a component instance: the
// hierarchical path of child indices from the root of the expansion tree.
// It keys state storage and the effect lifecycle.
type ComponentID string

// RootComponentID identifies the root component.
const RootComponentID ComponentID = "root"

// Child derives the identity of the child at the given expansion index.
func (id ComponentID) Child(index int) ComponentID {
	return id + "/" + ComponentID(strconv.Itoa(index))
}

type actionKind uint8

const (
	actionNone actionKind = iota
	actionUpdate
	actionUpdateTopic
	actionExit
)

// Action is the result of a component's Update.
type Action struct {
	kind  actionKind
	state any
	topic string
}

// ActionNone leaves state untouched. A topic message answered with
// ActionNone stays queued for later receivers.
func ActionNone() Action {
	return Action{}
}

// ActionUpdate replaces the component's state. Answering a topic message
// with ActionUpdate claims the topic.
func ActionUpdate(state any) Action {
	return Action{kind: actionUpdate, state: state}
}

// ActionUpdateTopic stores state under a named topic. The first writer
// becomes the topic's owner.
func ActionUpdateTopic(topic string, state any) Action {
	return Action{kind: actionUpdateTopic, topic: topic, state: state}
}

// ActionExit requests application shutdown.
func ActionExit() Action {
	return Action{kind: actionExit}
}

// Component is the port through which the core drives application code.
// The core never knows a component's concrete type; it stores components
// behind this capability set plus their reflected type identity.
type Component interface {
	// Update delivers a message. topic is empty for direct messages; for
	// topic messages it names the topic, which may still be unclaimed.
	Update(ctx *Context, msg Message, topic string) Action

	// View returns the element tree for the current state.
	View(ctx *Context) Node

	// Effects returns long-lived tasks to spawn when the component mounts.
	Effects(ctx *Context) []Effect
}

// BaseComponent provides no-op Update and Effects so view-only components
// implement just View.
type BaseComponent struct{}

// Update ignores all messages.
func (BaseComponent) Update(*Context, Message, string) Action {
	return ActionNone()
}

// Effects declares no effects.
func (BaseComponent) Effects(*Context) []Effect {
	return nil
}

// componentType returns the type identity used for effect lifecycle keys.
// A component re-appearing at the same path with a different type is
// treated as unmount + mount.
func componentType(c Component) reflect.Type {
	return reflect.TypeOf(c)
}
