package rxtui

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Capabilities describes what the attached terminal supports.
type Capabilities struct {
	// TrueColor indicates 24-bit RGB color support.
	TrueColor bool
	// AltScreen indicates alternate screen buffer support.
	AltScreen bool
	// SyncOutput indicates support for the synchronized-update protocol
	// (ESC[?2026h / ESC[?2026l).
	SyncOutput bool
	// IsTTY indicates the output is an interactive terminal.
	IsTTY bool
}

// syncOutputPrograms lists TERM_PROGRAM values known to honor the
// synchronized-update escape pair.
var syncOutputPrograms = map[string]bool{
	"iTerm.app": true,
	"kitty":     true,
	"alacritty": true,
	"wezterm":   true,
	"WezTerm":   true,
	"ghostty":   true,
}

// DetectCapabilities determines terminal capabilities from the environment.
// Detection is conservative: unknown terminals get 16-color, no synchronized
// output.
func DetectCapabilities(out *os.File) Capabilities {
	caps := Capabilities{AltScreen: true}

	if out != nil {
		caps.IsTTY = isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
	}

	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		caps.TrueColor = true
	}

	// Terminal emulators known to support true color.
	for _, v := range []string{"WT_SESSION", "ITERM_SESSION_ID", "KITTY_WINDOW_ID", "KONSOLE_VERSION", "VTE_VERSION"} {
		if os.Getenv(v) != "" {
			caps.TrueColor = true
		}
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if term == "dumb" {
		caps.AltScreen = false
	}
	if strings.Contains(term, "truecolor") {
		caps.TrueColor = true
	}

	// Synchronized output is gated on a program-name allow-list; terminals
	// outside it may still silently ignore the escapes, but we don't emit
	// them to avoid leaking sequences into logs and pipes.
	caps.SyncOutput = syncOutputPrograms[os.Getenv("TERM_PROGRAM")]

	return caps
}
