package rxtui

import "fmt"

// setupTerminal prepares the terminal for the configured mode.
func (a *App) setupTerminal() error {
	if err := a.host.EnableRawMode(); err != nil {
		return fmt.Errorf("setup terminal: %w", err)
	}

	switch a.mode {
	case ModeAlternateScreen:
		if err := a.host.EnterAltScreen(); err != nil {
			return fmt.Errorf("setup terminal: %w", err)
		}
		a.host.HideCursor()
		a.host.EnableMouseCapture()
	case ModeInline:
		if !a.inlineCfg.CursorVisible {
			a.host.HideCursor()
		}
		if a.inlineCfg.MouseCapture {
			a.host.EnableMouseCapture()
		}
		// Space reservation happens on first render.
	}
	return nil
}

// restoreTerminal undoes setupTerminal: mouse capture off, cursor shown,
// alternate screen left or the inline region cleared/kept per config.
func (a *App) restoreTerminal() {
	a.host.ShowCursor()

	switch a.mode {
	case ModeAlternateScreen:
		a.host.DisableMouseCapture()
		a.host.LeaveAltScreen()
	case ModeInline:
		if a.inlineCfg.MouseCapture {
			a.host.DisableMouseCapture()
		}
		if a.inline.initialized {
			if a.inlineCfg.PreserveOnExit {
				a.inline.moveToEnd(a.host)
			} else {
				a.writer.ClearRegion(a.inline.originRow, a.inline.reservedHeight)
			}
		}
	}

	a.host.DisableRawMode()
	a.host.Close()
}
