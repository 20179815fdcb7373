package rxtui

import (
	"fmt"
	"strings"
)

// inlineState tracks the reserved region inline mode renders into.
// The region is created by emitting newlines at startup; when content
// grows, more rows are reserved and the origin shifts up.
type inlineState struct {
	initialized    bool
	originRow      int
	reservedHeight int
	termWidth      int
	termHeight     int
}

// reserve creates the inline region by printing newlines, then positions
// the origin at the top of the region.
func (s *inlineState) reserve(host TerminalHost, rows, termHeight int) error {
	if rows > termHeight {
		rows = termHeight
	}
	if _, err := host.Write([]byte(strings.Repeat("\n", rows))); err != nil {
		return fmt.Errorf("reserve inline region: %w", err)
	}
	// Move the cursor back to the start of the region.
	if _, err := host.Write(fmt.Appendf(nil, "\x1b[%dA", rows)); err != nil {
		return fmt.Errorf("reserve inline region: %w", err)
	}

	s.initialized = true
	s.reservedHeight = rows
	s.termHeight = termHeight
	s.originRow = termHeight - rows
	return nil
}

// expand grows the region to the new height.
func (s *inlineState) expand(host TerminalHost, rows, termHeight int) error {
	if rows > termHeight {
		rows = termHeight
	}
	extra := rows - s.reservedHeight
	if extra <= 0 {
		return nil
	}

	if _, err := host.Write([]byte(strings.Repeat("\n", extra))); err != nil {
		return fmt.Errorf("expand inline region: %w", err)
	}
	if _, err := host.Write(fmt.Appendf(nil, "\x1b[%dA", rows)); err != nil {
		return fmt.Errorf("expand inline region: %w", err)
	}

	s.reservedHeight = rows
	s.termHeight = termHeight
	s.originRow = max(0, termHeight-rows)
	return nil
}

// handleResize recomputes the origin for the new terminal size; the
// reserved height stays fixed.
func (s *inlineState) handleResize(width, height int) {
	s.termWidth = width
	s.termHeight = height
	s.originRow = max(0, height-s.reservedHeight)
}

// moveToEnd positions the cursor on the line after the region, so the
// shell prompt appears below preserved content.
func (s *inlineState) moveToEnd(host TerminalHost) error {
	_, err := host.Write(fmt.Appendf(nil, "\x1b[%d;1H\r\n", s.originRow+s.reservedHeight))
	return err
}
