package rxtui

import (
	"bytes"
	"time"
)

// MockTerminal implements TerminalHost for tests. It records written bytes
// and mode transitions and serves events from a scripted queue.
type MockTerminal struct {
	width, height int
	out           bytes.Buffer
	events        []Event

	inRawMode    bool
	inAltScreen  bool
	mouseEnabled bool
	cursorHidden bool
	closed       bool

	altScreenEnterCount int
	altScreenExitCount  int
}

// Ensure MockTerminal implements TerminalHost.
var _ TerminalHost = (*MockTerminal)(nil)

// NewMockTerminal creates a mock terminal with the given dimensions.
func NewMockTerminal(width, height int) *MockTerminal {
	return &MockTerminal{width: width, height: height}
}

// QueueEvent appends an event to be returned by PollEvent.
func (m *MockTerminal) QueueEvent(ev Event) {
	m.events = append(m.events, ev)
}

// Output returns everything written so far.
func (m *MockTerminal) Output() []byte {
	return m.out.Bytes()
}

// ResetOutput discards recorded output.
func (m *MockTerminal) ResetOutput() {
	m.out.Reset()
}

// SetSize changes the reported terminal size.
func (m *MockTerminal) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// EnterAltScreen records the transition.
func (m *MockTerminal) EnterAltScreen() error {
	m.inAltScreen = true
	m.altScreenEnterCount++
	return nil
}

// LeaveAltScreen records the transition.
func (m *MockTerminal) LeaveAltScreen() error {
	m.inAltScreen = false
	m.altScreenExitCount++
	return nil
}

// EnableMouseCapture records the state.
func (m *MockTerminal) EnableMouseCapture() error {
	m.mouseEnabled = true
	return nil
}

// DisableMouseCapture records the state.
func (m *MockTerminal) DisableMouseCapture() error {
	m.mouseEnabled = false
	return nil
}

// EnableRawMode records the state.
func (m *MockTerminal) EnableRawMode() error {
	m.inRawMode = true
	return nil
}

// DisableRawMode records the state.
func (m *MockTerminal) DisableRawMode() error {
	m.inRawMode = false
	return nil
}

// ShowCursor records the state.
func (m *MockTerminal) ShowCursor() error {
	m.cursorHidden = false
	return nil
}

// HideCursor records the state.
func (m *MockTerminal) HideCursor() error {
	m.cursorHidden = true
	return nil
}

// Size returns the configured dimensions.
func (m *MockTerminal) Size() (width, height int) {
	return m.width, m.height
}

// PollEvent returns the next scripted event, or times out immediately.
func (m *MockTerminal) PollEvent(timeout time.Duration) (Event, bool) {
	if len(m.events) == 0 {
		return nil, false
	}
	ev := m.events[0]
	m.events = m.events[1:]
	return ev, true
}

// Interrupt is a no-op for the mock.
func (m *MockTerminal) Interrupt() error {
	return nil
}

// Write records the bytes.
func (m *MockTerminal) Write(p []byte) (int, error) {
	return m.out.Write(p)
}

// Caps returns fixed capabilities without synchronized output, keeping
// recorded output free of wrapper escapes.
func (m *MockTerminal) Caps() Capabilities {
	return Capabilities{TrueColor: true, AltScreen: true}
}

// Close records the call.
func (m *MockTerminal) Close() error {
	m.closed = true
	return nil
}
