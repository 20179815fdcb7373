package rxtui

import "testing"

func newTestContext() *Context {
	return (&Context{core: newContextCore()}).at(RootComponentID)
}

func TestContext_SendAndDrain(t *testing.T) {
	ctx := newTestContext()
	ctx.Send("one")
	ctx.Send("two")

	if !ctx.core.hasPendingMessages() {
		t.Fatal("messages should be pending")
	}

	msgs := ctx.core.drainDirect(RootComponentID)
	if len(msgs) != 2 {
		t.Fatalf("drained = %d, want 2", len(msgs))
	}
	if msgs[0].msg != "one" || msgs[1].msg != "two" {
		t.Error("messages should drain in enqueue order")
	}
	if msgs[0].topic != "" {
		t.Error("direct messages carry no topic")
	}
	if ctx.core.hasPendingMessages() {
		t.Error("drain should empty the mailbox")
	}
}

func TestContext_TopicQueuesUntilClaimed(t *testing.T) {
	ctx := newTestContext()
	ctx.SendTopic("status", "a")
	ctx.SendTopic("status", "b")

	topics := ctx.core.unclaimedTopics()
	if len(topics) != 1 || topics[0] != "status" {
		t.Fatalf("unclaimed topics = %v, want [status]", topics)
	}

	// Peeking does not consume.
	if msg, ok := ctx.core.peekTopic("status"); !ok || msg != "a" {
		t.Fatalf("peek = %v, want a", msg)
	}
	if msg, _ := ctx.core.peekTopic("status"); msg != "a" {
		t.Error("peek should not consume the message")
	}

	// Claiming hands over the remainder and empties the queue.
	rest := ctx.core.claimTopic("status", RootComponentID)
	if len(rest) != 1 || rest[0] != "b" {
		t.Errorf("claim remainder = %v, want [b]", rest)
	}
	if len(ctx.core.unclaimedTopics()) != 0 {
		t.Error("claimed topic should no longer be unclaimed")
	}
}

func TestContext_ClaimedTopicDrainsDirect(t *testing.T) {
	ctx := newTestContext()
	ctx.core.claimTopic("owned", RootComponentID)
	ctx.SendTopic("owned", "x")

	msgs := ctx.core.drainDirect(RootComponentID)
	if len(msgs) != 1 || msgs[0].msg != "x" || msgs[0].topic != "owned" {
		t.Errorf("owned topic messages should drain to the owner, got %v", msgs)
	}
}

func TestContext_TopicStateFirstWriterOwns(t *testing.T) {
	ctx := newTestContext()
	other := ctx.at(RootComponentID.Child(1))

	ctx.core.updateTopicState("shared", ctx.ComponentID(), 42)
	ctx.core.updateTopicState("shared", other.ComponentID(), 43)

	if got := TopicOf[int](ctx, "shared"); got != 43 {
		t.Errorf("topic state = %d, want latest write 43", got)
	}
	if owner := ctx.core.topicOwners["shared"]; owner != RootComponentID {
		t.Errorf("owner = %v, first writer should keep ownership", owner)
	}
}

func TestContext_StateOf(t *testing.T) {
	ctx := newTestContext()
	if got := StateOf[int](ctx); got != 0 {
		t.Errorf("unset state = %d, want zero value", got)
	}

	ctx.core.setState(RootComponentID, 7)
	if got := StateOf[int](ctx); got != 7 {
		t.Errorf("state = %d, want 7", got)
	}
}

func TestContext_FocusRequests(t *testing.T) {
	ctx := newTestContext()
	ctx.FocusSelf()
	ctx.Focus(RootComponentID.Child(2))

	reqs := ctx.core.takeFocusRequests()
	if len(reqs) != 2 {
		t.Fatalf("requests = %d, want 2", len(reqs))
	}
	if reqs[0].id != RootComponentID || reqs[1].id != RootComponentID.Child(2) {
		t.Error("request targets wrong")
	}
	if len(ctx.core.takeFocusRequests()) != 0 {
		t.Error("take should clear the queue")
	}
}

func TestContext_FocusClearFlag(t *testing.T) {
	ctx := newTestContext()
	ctx.Blur()
	if !ctx.core.takeFocusClear() {
		t.Error("blur should set the clear flag")
	}
	if ctx.core.takeFocusClear() {
		t.Error("take should reset the flag")
	}
}

func TestContext_HandlerSends(t *testing.T) {
	ctx := newTestContext()
	ctx.Handler("clicked")()

	msgs := ctx.core.drainDirect(RootComponentID)
	if len(msgs) != 1 || msgs[0].msg != "clicked" {
		t.Errorf("handler should enqueue the message, got %v", msgs)
	}
}

func TestComponentID_ChildPaths(t *testing.T) {
	id := RootComponentID.Child(0).Child(2)
	if id != "root/0/2" {
		t.Errorf("id = %q, want root/0/2", id)
	}
	if RootComponentID.Child(0) == RootComponentID.Child(1) {
		t.Error("sibling ids should differ")
	}
}
