package rxtui

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"
)

// TerminalHost is the platform port the render pipeline requires.
// The library owns the handle exclusively while an App is running.
type TerminalHost interface {
	EnterAltScreen() error
	LeaveAltScreen() error
	EnableMouseCapture() error
	DisableMouseCapture() error
	EnableRawMode() error
	DisableRawMode() error
	ShowCursor() error
	HideCursor() error

	// Size returns the terminal dimensions in cells.
	Size() (width, height int)

	// PollEvent reads the next input event with a timeout.
	PollEvent(timeout time.Duration) (Event, bool)

	// Interrupt wakes a blocking PollEvent.
	Interrupt() error

	// Write sends raw bytes to the terminal.
	Write(p []byte) (int, error)

	// Caps returns the detected terminal capabilities.
	Caps() Capabilities

	// Close releases input resources.
	Close() error
}

// ANSITerminal implements TerminalHost with ANSI escape sequences over
// stdout/stdin.
type ANSITerminal struct {
	out      *os.File
	in       *os.File
	reader   EventReader
	esc      *escBuilder
	caps     Capabilities
	rawState *term.State
}

// Ensure ANSITerminal implements TerminalHost.
var _ TerminalHost = (*ANSITerminal)(nil)

// NewANSITerminal creates a terminal host over the given files with
// auto-detected capabilities.
func NewANSITerminal(out, in *os.File) (*ANSITerminal, error) {
	reader, err := newPlatformReader(in)
	if err != nil {
		return nil, fmt.Errorf("event reader: %w", err)
	}
	return &ANSITerminal{
		out:    out,
		in:     in,
		reader: reader,
		esc:    newEscBuilder(256),
		caps:   DetectCapabilities(out),
	}, nil
}

func (t *ANSITerminal) writeSeq(build func(*escBuilder)) error {
	t.esc.Reset()
	build(t.esc)
	_, err := t.out.Write(t.esc.Bytes())
	return err
}

// EnterAltScreen switches to the alternate screen buffer.
func (t *ANSITerminal) EnterAltScreen() error {
	return t.writeSeq((*escBuilder).EnterAltScreen)
}

// LeaveAltScreen switches back to the main screen buffer.
func (t *ANSITerminal) LeaveAltScreen() error {
	return t.writeSeq((*escBuilder).ExitAltScreen)
}

// EnableMouseCapture turns on mouse reporting.
func (t *ANSITerminal) EnableMouseCapture() error {
	return t.writeSeq((*escBuilder).EnableMouse)
}

// DisableMouseCapture turns off mouse reporting.
func (t *ANSITerminal) DisableMouseCapture() error {
	return t.writeSeq((*escBuilder).DisableMouse)
}

// EnableRawMode puts the input terminal into raw mode.
func (t *ANSITerminal) EnableRawMode() error {
	state, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	t.rawState = state
	return nil
}

// DisableRawMode restores the terminal to its previous mode.
func (t *ANSITerminal) DisableRawMode() error {
	if t.rawState == nil {
		return nil
	}
	err := term.Restore(int(t.in.Fd()), t.rawState)
	t.rawState = nil
	return err
}

// ShowCursor makes the cursor visible.
func (t *ANSITerminal) ShowCursor() error {
	return t.writeSeq((*escBuilder).ShowCursor)
}

// HideCursor makes the cursor invisible.
func (t *ANSITerminal) HideCursor() error {
	return t.writeSeq((*escBuilder).HideCursor)
}

// Size returns the terminal dimensions, defaulting to 80x24 when the query
// fails.
func (t *ANSITerminal) Size() (width, height int) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 80, 24
	}
	return w, h
}

// PollEvent reads the next input event with a timeout.
func (t *ANSITerminal) PollEvent(timeout time.Duration) (Event, bool) {
	return t.reader.PollEvent(timeout)
}

// Interrupt wakes a blocking PollEvent.
func (t *ANSITerminal) Interrupt() error {
	return t.reader.Interrupt()
}

// Write sends raw bytes to the terminal.
func (t *ANSITerminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Caps returns the detected capabilities.
func (t *ANSITerminal) Caps() Capabilities {
	return t.caps
}

// Close releases input resources.
func (t *ANSITerminal) Close() error {
	return t.reader.Close()
}
