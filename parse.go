package rxtui

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// parseInput parses buffered terminal bytes into events.
//
// Handles:
//   - printable characters (UTF-8)        -> KeyEvent{Key: KeyRune}
//   - control characters (0x00-0x1f, del) -> special keys or Ctrl+rune
//   - CSI sequences (ESC [ ...)           -> arrows, nav keys, F-keys
//   - SS3 sequences (ESC O ...)           -> F1-F4, Home, End
//   - SGR mouse sequences (ESC [ < ...)   -> MouseEvent
//   - ESC + printable                     -> Alt+rune
func parseInput(data []byte) []Event {
	var events []Event
	i := 0

	for i < len(data) {
		b := data[i]

		if b == 0x1b {
			if i+1 >= len(data) {
				events = append(events, KeyEvent{Key: KeyEscape})
				i++
				continue
			}

			switch data[i+1] {
			case '[':
				if i+2 < len(data) && data[i+2] == '<' {
					if ev, n := parseMouseSGR(data[i:]); n > 0 {
						events = append(events, ev)
						i += n
						continue
					}
				}
				if ev, n := parseCSI(data[i:]); n > 0 {
					if ev != nil {
						events = append(events, ev)
					}
					i += n
					continue
				}
				events = append(events, KeyEvent{Key: KeyEscape})
				i++
			case 'O':
				if i+2 < len(data) {
					if key := parseSS3(data[i+2]); key != KeyNone {
						events = append(events, KeyEvent{Key: key})
					}
					i += 3
					continue
				}
				events = append(events, KeyEvent{Key: KeyEscape})
				i++
			default:
				// Alt + key: decode the byte(s) after ESC as a key event
				// and add the Alt modifier.
				r, size := utf8.DecodeRune(data[i+1:])
				if ev, ok := decodeByteKey(r); ok {
					ev.Mod |= ModAlt
					events = append(events, ev)
				}
				i += 1 + size
			}
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		if ev, ok := decodeByteKey(r); ok {
			events = append(events, ev)
		}
		i += size
	}

	return events
}

// decodeByteKey maps a single decoded rune to a key event.
func decodeByteKey(r rune) (KeyEvent, bool) {
	switch {
	case r == '\r' || r == '\n':
		return KeyEvent{Key: KeyEnter}, true
	case r == '\t':
		return KeyEvent{Key: KeyTab}, true
	case r == 0x7f || r == 0x08:
		return KeyEvent{Key: KeyBackspace}, true
	case r == 0x1b:
		return KeyEvent{Key: KeyEscape}, true
	case r < 0x20:
		// Ctrl+letter arrives as the letter's low bits.
		return KeyEvent{Key: KeyRune, Rune: r + 'a' - 1, Mod: ModCtrl}, true
	case r == utf8.RuneError:
		return KeyEvent{}, false
	default:
		return KeyEvent{Key: KeyRune, Rune: r}, true
	}
}

// parseCSI parses a CSI sequence starting at data[0] == ESC.
// Returns the event (possibly nil for unrecognized-but-complete sequences)
// and the number of bytes consumed, or 0 when the sequence is incomplete.
func parseCSI(data []byte) (Event, int) {
	// Find the final byte (0x40-0x7e).
	end := -1
	for j := 2; j < len(data); j++ {
		if data[j] >= 0x40 && data[j] <= 0x7e {
			end = j
			break
		}
	}
	if end < 0 {
		return nil, 0
	}

	params := string(data[2:end])
	final := data[end]
	consumed := end + 1

	mod := csiModifier(params)

	switch final {
	case 'A':
		return KeyEvent{Key: KeyUp, Mod: mod}, consumed
	case 'B':
		return KeyEvent{Key: KeyDown, Mod: mod}, consumed
	case 'C':
		return KeyEvent{Key: KeyRight, Mod: mod}, consumed
	case 'D':
		return KeyEvent{Key: KeyLeft, Mod: mod}, consumed
	case 'H':
		return KeyEvent{Key: KeyHome, Mod: mod}, consumed
	case 'F':
		return KeyEvent{Key: KeyEnd, Mod: mod}, consumed
	case 'Z':
		return KeyEvent{Key: KeyBackTab, Mod: ModShift}, consumed
	case '~':
		num := params
		if idx := strings.IndexByte(params, ';'); idx >= 0 {
			num = params[:idx]
		}
		if key := tildeKey(num); key != KeyNone {
			return KeyEvent{Key: key, Mod: mod}, consumed
		}
		return nil, consumed
	default:
		return nil, consumed
	}
}

// csiModifier extracts the xterm modifier parameter (1 + bitmask).
func csiModifier(params string) Modifier {
	idx := strings.IndexByte(params, ';')
	if idx < 0 {
		return ModNone
	}
	n, err := strconv.Atoi(params[idx+1:])
	if err != nil || n < 2 {
		return ModNone
	}
	bits := n - 1
	var mod Modifier
	if bits&1 != 0 {
		mod |= ModShift
	}
	if bits&2 != 0 {
		mod |= ModAlt
	}
	if bits&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}

// tildeKey maps CSI numeric codes terminated by '~' to keys.
func tildeKey(num string) Key {
	switch num {
	case "1", "7":
		return KeyHome
	case "3":
		return KeyDelete
	case "4", "8":
		return KeyEnd
	case "5":
		return KeyPageUp
	case "6":
		return KeyPageDown
	case "11":
		return KeyF1
	case "12":
		return KeyF2
	case "13":
		return KeyF3
	case "14":
		return KeyF4
	case "15":
		return KeyF5
	case "17":
		return KeyF6
	case "18":
		return KeyF7
	case "19":
		return KeyF8
	case "20":
		return KeyF9
	case "21":
		return KeyF10
	case "23":
		return KeyF11
	case "24":
		return KeyF12
	default:
		return KeyNone
	}
}

// parseSS3 maps SS3 final bytes (ESC O x) to keys.
func parseSS3(b byte) Key {
	switch b {
	case 'P':
		return KeyF1
	case 'Q':
		return KeyF2
	case 'R':
		return KeyF3
	case 'S':
		return KeyF4
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	default:
		return KeyNone
	}
}

// parseMouseSGR parses an SGR mouse sequence: ESC [ < b ; x ; y (M|m).
// Coordinates are 1-based on the wire and converted to 0-based.
func parseMouseSGR(data []byte) (Event, int) {
	end := -1
	for j := 3; j < len(data); j++ {
		if data[j] == 'M' || data[j] == 'm' {
			end = j
			break
		}
	}
	if end < 0 {
		return nil, 0
	}

	parts := strings.Split(string(data[3:end]), ";")
	if len(parts) != 3 {
		return nil, end + 1
	}
	btn, err1 := strconv.Atoi(parts[0])
	x, err2 := strconv.Atoi(parts[1])
	y, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, end + 1
	}

	ev := MouseEvent{X: x - 1, Y: y - 1}
	switch {
	case btn&64 != 0:
		if btn&1 == 0 {
			ev.Kind = MouseScrollUp
		} else {
			ev.Kind = MouseScrollDown
		}
	case btn&32 != 0:
		ev.Kind = MouseMove
	case data[end] == 'm':
		ev.Kind = MouseRelease
	default:
		ev.Kind = MousePress
	}
	return ev, end + 1
}
