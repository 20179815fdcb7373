package rxtui

import (
	"os"
	"testing"
)

func TestDetectCapabilities_TrueColorFromColorterm(t *testing.T) {
	t.Setenv("COLORTERM", "truecolor")
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("TERM_PROGRAM", "")

	caps := DetectCapabilities(nil)
	if !caps.TrueColor {
		t.Error("COLORTERM=truecolor should enable true color")
	}
}

func TestDetectCapabilities_SyncOutputAllowList(t *testing.T) {
	t.Setenv("COLORTERM", "")
	t.Setenv("TERM", "xterm")

	t.Setenv("TERM_PROGRAM", "kitty")
	if !DetectCapabilities(nil).SyncOutput {
		t.Error("kitty should be on the synchronized-output allow-list")
	}

	t.Setenv("TERM_PROGRAM", "unknown-terminal")
	if DetectCapabilities(nil).SyncOutput {
		t.Error("unknown terminals should not get synchronized output")
	}
}

func TestDetectCapabilities_DumbTerminal(t *testing.T) {
	t.Setenv("COLORTERM", "")
	t.Setenv("TERM", "dumb")
	t.Setenv("TERM_PROGRAM", "")
	for _, v := range []string{"WT_SESSION", "ITERM_SESSION_ID", "KITTY_WINDOW_ID", "KONSOLE_VERSION", "VTE_VERSION"} {
		t.Setenv(v, "")
	}

	caps := DetectCapabilities(nil)
	if caps.AltScreen {
		t.Error("dumb terminals have no alternate screen")
	}
	if caps.TrueColor {
		t.Error("dumb terminals have no true color")
	}
}

func TestDetectCapabilities_NotATTY(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if DetectCapabilities(f).IsTTY {
		t.Error("a regular file is not a TTY")
	}
}
