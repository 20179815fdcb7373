package rxtui

import "time"

// EventReader reads events from the terminal. It is designed for
// polling-based event loops.
type EventReader interface {
	// PollEvent reads the next event with a timeout.
	// Returns (event, true) if an event was read, or (nil, false) on
	// timeout. A timeout of 0 performs a non-blocking check; a negative
	// timeout blocks until input arrives.
	PollEvent(timeout time.Duration) (Event, bool)

	// Interrupt wakes up a blocking PollEvent call.
	// Safe to call from another goroutine.
	Interrupt() error

	// Close releases resources.
	Close() error
}
