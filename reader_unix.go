//go:build unix

package rxtui

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// unixReader implements EventReader on top of select(2) polling.
// A self-pipe wakes blocking polls; SIGWINCH is translated into
// ResizeEvents.
type unixReader struct {
	fd      int
	buf     []byte
	partial []byte  // incomplete trailing escape/UTF-8 bytes from a prior read
	pending []Event // parsed events waiting to be returned
	sigCh   chan os.Signal

	pipeR int
	pipeW int
}

// newPlatformReader creates an EventReader for the given terminal input.
// The terminal should already be in raw mode.
func newPlatformReader(in *os.File) (EventReader, error) {
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		return nil, err
	}

	r := &unixReader{
		fd:    int(in.Fd()),
		buf:   make([]byte, 256),
		sigCh: make(chan os.Signal, 8),
		pipeR: fds[0],
		pipeW: fds[1],
	}
	signal.Notify(r.sigCh, syscall.SIGWINCH)
	return r, nil
}

// PollEvent reads the next event with a timeout.
func (r *unixReader) PollEvent(timeout time.Duration) (Event, bool) {
	if len(r.pending) > 0 {
		ev := r.pending[0]
		r.pending = r.pending[1:]
		return ev, true
	}

	if ev, ok := r.checkResize(); ok {
		return ev, true
	}

	ready, interrupted, err := r.selectInput(timeout)
	if err != nil {
		return nil, false
	}
	if interrupted {
		return nil, false
	}

	// A resize signal may have arrived while waiting.
	if ev, ok := r.checkResize(); ok {
		return ev, true
	}
	if !ready {
		return nil, false
	}

	n, err := unix.Read(r.fd, r.buf)
	if err != nil || n == 0 {
		return nil, false
	}

	data := r.buf[:n]
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
}

// checkResize drains pending SIGWINCH signals, returning a coalesced
// ResizeEvent with the current terminal size.
func (r *unixReader) checkResize() (Event, bool) {
	resized := false
	for {
		select {
		case <-r.sigCh:
			resized = true
		default:
			if !resized {
				return nil, false
			}
			w, h := terminalSize(r.fd)
			return ResizeEvent{Width: w, Height: h}, true
		}
	}
}

// selectInput waits for input or an interrupt with the given timeout.
func (r *unixReader) selectInput(timeout time.Duration) (ready, interrupted bool, err error) {
	var readFds unix.FdSet
	readFds.Zero()
	readFds.Set(r.fd)
	readFds.Set(r.pipeR)
	nfds := max(r.fd, r.pipeR) + 1

	var tv *unix.Timeval
	if timeout >= 0 {
		tvVal := unix.NsecToTimeval(timeout.Nanoseconds())
		tv = &tvVal
	}

	n, err := unix.Select(nfds, &readFds, nil, nil, tv)
	if err != nil {
		if err == unix.EINTR {
			return false, false, nil
		}
		return false, false, err
	}
	if n <= 0 {
		return false, false, nil
	}

	if readFds.IsSet(r.pipeR) {
		// Drain the self-pipe.
		var b [8]byte
		unix.Read(r.pipeR, b[:])
		return false, true, nil
	}
	return readFds.IsSet(r.fd), false, nil
}

// Interrupt wakes a blocking PollEvent via the self-pipe.
func (r *unixReader) Interrupt() error {
	_, err := unix.Write(r.pipeW, []byte{0})
	return err
}

// Close releases the reader's resources.
func (r *unixReader) Close() error {
	signal.Stop(r.sigCh)
	unix.Close(r.pipeR)
	unix.Close(r.pipeW)
	return nil
}

// terminalSize returns the terminal dimensions for the given fd,
// defaulting to 80x24 when the query fails.
func terminalSize(fd int) (width, height int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// splitCompleteInput splits data into a parseable prefix and an incomplete
// trailing escape or UTF-8 sequence that should wait for more bytes.
// A buffer that is nothing but a lone ESC is treated as a real Escape press
// rather than buffered forever.
func splitCompleteInput(data []byte) (complete, remainder []byte) {
	if len(data) == 0 {
		return data, nil
	}

	// Incomplete escape sequence at the end?
	if tail := incompleteEscapeSuffix(data); len(tail) > 0 && len(tail) < len(data) {
		return data[:len(data)-len(tail)], tail
	} else if len(tail) == len(data) {
		return data, nil
	}

	// Incomplete UTF-8 sequence at the end?
	if tail := incompleteUTF8Suffix(data); len(tail) > 0 {
		return data[:len(data)-len(tail)], tail
	}
	return data, nil
}

// incompleteEscapeSuffix returns any incomplete escape sequence ending data.
func incompleteEscapeSuffix(data []byte) []byte {
	// Escape sequences are short; only the tail can be incomplete.
	start := max(0, len(data)-64)
	for i := len(data) - 1; i >= start; i-- {
		if data[i] != 0x1b {
			continue
		}
		suffix := data[i:]
		if len(suffix) == 1 {
			return suffix
		}
		switch suffix[1] {
		case '[':
			if len(suffix) == 2 {
				return suffix
			}
			if suffix[2] == '<' {
				// SGR mouse: terminated by M or m.
				for j := 3; j < len(suffix); j++ {
					if suffix[j] == 'M' || suffix[j] == 'm' {
						return nil
					}
					if suffix[j] != ';' && (suffix[j] < '0' || suffix[j] > '9') {
						return nil
					}
				}
				return suffix
			}
			// CSI: terminated by a byte in 0x40-0x7e.
			for j := 2; j < len(suffix); j++ {
				if suffix[j] >= 0x40 && suffix[j] <= 0x7e {
					return nil
				}
			}
			return suffix
		case 'O':
			if len(suffix) == 2 {
				return suffix
			}
		}
		return nil
	}
	return nil
}

// incompleteUTF8Suffix returns any incomplete UTF-8 sequence ending data.
func incompleteUTF8Suffix(data []byte) []byte {
	for i := 1; i <= 3 && i <= len(data); i++ {
		b := data[len(data)-i]
		if b >= 0xc0 {
			var want int
			switch {
			case b < 0xe0:
				want = 2
			case b < 0xf0:
				want = 3
			default:
				want = 4
			}
			if i < want {
				return data[len(data)-i:]
			}
			return nil
		}
		if b >= 0x80 {
			continue
		}
		return nil
	}
	return nil
}
