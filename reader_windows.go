//go:build windows

package rxtui

import (
	"os"
	"time"

	"golang.org/x/term"
)

// windowsReader implements EventReader with a background read goroutine.
// Windows has no select(2) on console handles, so bytes are pumped into a
// channel and PollEvent waits on it with a timer. Resizes are detected by
// polling the console size between reads.
type windowsReader struct {
	in      *os.File
	bytesCh chan []byte
	wakeCh  chan struct{}
	doneCh  chan struct{}

	partial []byte
	pending []Event

	lastW, lastH int
}

// newPlatformReader creates an EventReader for the given terminal input.
// The terminal should already be in raw mode.
func newPlatformReader(in *os.File) (EventReader, error) {
	w, h, _ := term.GetSize(int(in.Fd()))
	r := &windowsReader{
		in:      in,
		bytesCh: make(chan []byte, 8),
		wakeCh:  make(chan struct{}, 1),
		doneCh:  make(chan struct{}),
		lastW:   w,
		lastH:   h,
	}
	go r.readLoop()
	return r, nil
}

func (r *windowsReader) readLoop() {
	buf := make([]byte, 256)
	for {
		n, err := r.in.Read(buf)
		if err != nil {
			close(r.bytesCh)
			return
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		select {
		case r.bytesCh <- data:
		case <-r.doneCh:
			return
		}
	}
}

// PollEvent reads the next event with a timeout.
func (r *windowsReader) PollEvent(timeout time.Duration) (Event, bool) {
	if len(r.pending) > 0 {
		ev := r.pending[0]
		r.pending = r.pending[1:]
		return ev, true
	}

	if ev, ok := r.checkResize(); ok {
		return ev, true
	}

	var timer <-chan time.Time
	if timeout >= 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}

	select {
	case data, ok := <-r.bytesCh:
		if !ok {
			return nil, false
		}
		if len(r.partial) > 0 {
			data = append(r.partial, data...)
			r.partial = nil
		}
		complete, remainder := splitCompleteInput(data)
		if len(remainder) > 0 {
			r.partial = append([]byte(nil), remainder...)
		}
		r.pending = parseInput(complete)
		if len(r.pending) > 0 {
			ev := r.pending[0]
			r.pending = r.pending[1:]
			return ev, true
		}
		return nil, false
	case <-r.wakeCh:
		return nil, false
	case <-timer:
		return nil, false
	}
}

// checkResize reports a size change since the last poll.
func (r *windowsReader) checkResize() (Event, bool) {
	w, h, err := term.GetSize(int(r.in.Fd()))
	if err != nil || (w == r.lastW && h == r.lastH) {
		return nil, false
	}
	r.lastW, r.lastH = w, h
	return ResizeEvent{Width: w, Height: h}, true
}

// Interrupt wakes a blocking PollEvent.
func (r *windowsReader) Interrupt() error {
	select {
	case r.wakeCh <- struct{}{}:
	default:
	}
	return nil
}

// Close stops the reader.
func (r *windowsReader) Close() error {
	close(r.doneCh)
	return nil
}
