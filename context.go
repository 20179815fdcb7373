package rxtui

import "sync"

// queuedMessage is a message waiting for delivery, tagged with the topic it
// arrived on (empty for direct messages).
type queuedMessage struct {
	msg   Message
	topic string
}

type focusTargetKind uint8

const (
	focusTargetComponent focusTargetKind = iota
	focusTargetGlobalFirst
)

// focusRequest asks the app to move focus after the next layout.
type focusRequest struct {
	kind focusTargetKind
	id   ComponentID
}

// contextCore is the shared state behind every Context handle: component
// state cells, mailboxes, the topic bus, and focus requests. Effects run on
// worker goroutines and communicate only by enqueueing messages here; the
// app loop drains the queues on its own thread each iteration.
type contextCore struct {
	mu sync.Mutex

	states    map[ComponentID]any
	mailboxes map[ComponentID][]Message

	topicQueues map[string][]Message
	topicOwners map[string]ComponentID
	topicStates map[string]any

	focusRequests []focusRequest
	focusClear    bool

	// wake interrupts a blocking event poll when a message arrives from a
	// worker goroutine.
	wake func()
}

func newContextCore() *contextCore {
	return &contextCore{
		states:      make(map[ComponentID]any),
		mailboxes:   make(map[ComponentID][]Message),
		topicQueues: make(map[string][]Message),
		topicOwners: make(map[string]ComponentID),
		topicStates: make(map[string]any),
	}
}

// Context is a component's handle to the runtime: sending messages, reading
// state, and requesting focus changes. Contexts are cheap values bound to a
// component identity; effects hold a Context bound at spawn time.
type Context struct {
	core *contextCore
	id   ComponentID
}

// at returns a context bound to the given component identity.
func (c *Context) at(id ComponentID) *Context {
	return &Context{core: c.core, id: id}
}

// ComponentID returns the identity this context is bound to.
func (c *Context) ComponentID() ComponentID {
	return c.id
}

// Send enqueues a message to this component's own mailbox.
// Safe to call from any goroutine.
func (c *Context) Send(msg Message) {
	c.core.mu.Lock()
	c.core.mailboxes[c.id] = append(c.core.mailboxes[c.id], msg)
	wake := c.core.wake
	c.core.mu.Unlock()
	if wake != nil {
		wake()
	}
}

// SendTopic enqueues a message on a named topic. Topic messages queue until
// some component claims the topic by handling one.
// Safe to call from any goroutine.
func (c *Context) SendTopic(topic string, msg Message) {
	c.core.mu.Lock()
	c.core.topicQueues[topic] = append(c.core.topicQueues[topic], msg)
	wake := c.core.wake
	c.core.mu.Unlock()
	if wake != nil {
		wake()
	}
}

// Handler returns a callback that sends msg to this component.
// Convenient for wiring event callbacks in View.
func (c *Context) Handler(msg Message) func() {
	return func() { c.Send(msg) }
}

// TopicHandler returns a callback that sends msg on a topic.
func (c *Context) TopicHandler(topic string, msg Message) func() {
	return func() { c.SendTopic(topic, msg) }
}

// State returns this component's state, or nil when none was stored yet.
func (c *Context) State() any {
	c.core.mu.Lock()
	defer c.core.mu.Unlock()
	return c.core.states[c.id]
}

// StateOf returns the typed state of the context's component, or the zero
// value when unset or of a different type.
func StateOf[T any](c *Context) T {
	v, _ := c.State().(T)
	return v
}

// Topic returns the state stored under a topic, or nil.
func (c *Context) Topic(name string) any {
	c.core.mu.Lock()
	defer c.core.mu.Unlock()
	return c.core.topicStates[name]
}

// TopicOf returns the typed state stored under a topic.
func TopicOf[T any](c *Context, name string) T {
	v, _ := c.Topic(name).(T)
	return v
}

// FocusSelf requests focus on the first focusable element rendered by this
// component. Applied after the next layout.
func (c *Context) FocusSelf() {
	c.core.mu.Lock()
	defer c.core.mu.Unlock()
	c.core.focusRequests = append(c.core.focusRequests, focusRequest{kind: focusTargetComponent, id: c.id})
}

// Focus requests focus on the first focusable element of the component at
// the given identity.
func (c *Context) Focus(id ComponentID) {
	c.core.mu.Lock()
	defer c.core.mu.Unlock()
	c.core.focusRequests = append(c.core.focusRequests, focusRequest{kind: focusTargetComponent, id: id})
}

// FocusFirst requests focus on the first focusable element anywhere in the
// tree.
func (c *Context) FocusFirst() {
	c.core.mu.Lock()
	defer c.core.mu.Unlock()
	c.core.focusRequests = append(c.core.focusRequests, focusRequest{kind: focusTargetGlobalFirst})
}

// Blur requests that focus be cleared. The clear is honoured only if no
// focus request lands in the same frame.
func (c *Context) Blur() {
	c.core.mu.Lock()
	defer c.core.mu.Unlock()
	c.core.focusClear = true
}

//--------------------------------------------------------------------------
// Core-side operations used by the app loop. All run on the loop thread.
//--------------------------------------------------------------------------

// setState stores a component's state.
func (cc *contextCore) setState(id ComponentID, state any) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.states[id] = state
}

// hasPendingMessages reports whether any mailbox or topic queue is
// non-empty.
func (cc *contextCore) hasPendingMessages() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	for _, q := range cc.mailboxes {
		if len(q) > 0 {
			return true
		}
	}
	for _, q := range cc.topicQueues {
		if len(q) > 0 {
			return true
		}
	}
	return false
}

// drainDirect removes and returns the messages addressed directly to the
// component: its mailbox plus the queues of topics it owns.
func (cc *contextCore) drainDirect(id ComponentID) []queuedMessage {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	var out []queuedMessage
	for _, m := range cc.mailboxes[id] {
		out = append(out, queuedMessage{msg: m})
	}
	delete(cc.mailboxes, id)

	for topic, owner := range cc.topicOwners {
		if owner != id {
			continue
		}
		for _, m := range cc.topicQueues[topic] {
			out = append(out, queuedMessage{msg: m, topic: topic})
		}
		delete(cc.topicQueues, topic)
	}
	return out
}

// unclaimedTopics returns the names of topics that have queued messages but
// no owner yet.
func (cc *contextCore) unclaimedTopics() []string {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	var topics []string
	for topic, q := range cc.topicQueues {
		if len(q) == 0 {
			continue
		}
		if _, owned := cc.topicOwners[topic]; !owned {
			topics = append(topics, topic)
		}
	}
	return topics
}

// peekTopic returns the first queued message of a topic without removing it.
func (cc *contextCore) peekTopic(topic string) (Message, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	q := cc.topicQueues[topic]
	if len(q) == 0 {
		return nil, false
	}
	return q[0], true
}

// claimTopic assigns ownership of a topic to a component and removes its
// queued messages, returning the remainder after the first (which the
// claimant already handled).
func (cc *contextCore) claimTopic(topic string, id ComponentID) []Message {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	cc.topicOwners[topic] = id
	q := cc.topicQueues[topic]
	delete(cc.topicQueues, topic)
	if len(q) <= 1 {
		return nil
	}
	return q[1:]
}

// updateTopicState stores topic state. The first writer becomes the owner;
// ownership updates are idempotent and survive re-expansion.
func (cc *contextCore) updateTopicState(topic string, id ComponentID, state any) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.topicStates[topic] = state
	if _, owned := cc.topicOwners[topic]; !owned {
		cc.topicOwners[topic] = id
	}
}

// takeFocusRequests removes and returns queued focus requests.
func (cc *contextCore) takeFocusRequests() []focusRequest {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	reqs := cc.focusRequests
	cc.focusRequests = nil
	return reqs
}

// takeFocusClear removes and returns the pending focus-clear flag.
func (cc *contextCore) takeFocusClear() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	v := cc.focusClear
	cc.focusClear = false
	return v
}
