package rxtui

import (
	"fmt"
	"os"
	"time"
)

// TerminalMode selects how the app renders to the terminal.
type TerminalMode uint8

const (
	// ModeAlternateScreen renders full-viewport in the alternate buffer
	// with mouse capture enabled and the cursor hidden (default).
	ModeAlternateScreen TerminalMode = iota
	// ModeInline renders in a reserved region of the main buffer.
	ModeInline
)

// InlineHeightKind selects the inline height policy.
type InlineHeightKind uint8

const (
	// InlineHeightFixed reserves a fixed number of rows.
	InlineHeightFixed InlineHeightKind = iota
	// InlineHeightContent grows to fit content, optionally capped.
	InlineHeightContent
	// InlineHeightFill uses the content height with a minimum.
	InlineHeightFill
)

// InlineHeight is the height policy for inline rendering.
type InlineHeight struct {
	Kind InlineHeightKind
	// Value holds the rows for Fixed, the minimum for Fill, and the cap
	// for Content.
	Value int
	// HasCap marks a Content height as capped at Value.
	HasCap bool
}

// InlineFixed reserves exactly h rows.
func InlineFixed(h int) InlineHeight {
	return InlineHeight{Kind: InlineHeightFixed, Value: h}
}

// InlineContent grows the region to fit content without a cap.
func InlineContent() InlineHeight {
	return InlineHeight{Kind: InlineHeightContent}
}

// InlineContentMax grows the region to fit content, up to max rows.
func InlineContentMax(maxRows int) InlineHeight {
	return InlineHeight{Kind: InlineHeightContent, Value: maxRows, HasCap: true}
}

// InlineFill uses the content height, never less than min rows.
func InlineFill(minRows int) InlineHeight {
	return InlineHeight{Kind: InlineHeightFill, Value: minRows}
}

// InlineConfig controls inline-mode rendering.
type InlineConfig struct {
	Height InlineHeight
	// CursorVisible keeps the cursor visible while running.
	CursorVisible bool
	// MouseCapture enables mouse reporting. Off by default so the
	// terminal's natural scrolling keeps working.
	MouseCapture bool
	// PreserveOnExit leaves the rendered content in the terminal and moves
	// the cursor past it; otherwise the region is cleared.
	PreserveOnExit bool
}

// DefaultInlineConfig renders content-sized output up to 24 rows,
// preserved on exit.
func DefaultInlineConfig() InlineConfig {
	return InlineConfig{
		Height:         InlineContentMax(24),
		PreserveOnExit: true,
	}
}

// RenderConfig holds rendering switches, mainly for debugging.
type RenderConfig struct {
	// DoubleBuffering renders through the back buffer and diffs against
	// the front buffer. Disabling it redraws every cell each frame.
	DoubleBuffering bool
	// CellDiffing emits only changed cells. Disabling it retransmits the
	// full frame.
	CellDiffing bool
	// TerminalOptimizations batches cells into style-homogeneous runs.
	// Disabling it emits one positioned write per cell.
	TerminalOptimizations bool
	// PollInterval is the input poll timeout per loop iteration.
	PollInterval time.Duration
}

// DefaultRenderConfig enables all optimizations with a 100ms poll.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		DoubleBuffering:       true,
		CellDiffing:           true,
		TerminalOptimizations: true,
		PollInterval:          100 * time.Millisecond,
	}
}

// App drives the frame loop: expanding components, draining messages,
// laying out, rasterizing, and flushing minimal updates to the terminal.
// The pipeline is single-threaded; effects run on worker goroutines and
// communicate only through the message queues.
type App struct {
	host    TerminalHost
	writer  *TerminalWriter
	vdom    *VDom
	buffers *DoubleBuffer

	core    *contextCore
	effects *effectRuntime
	tracker *effectTracker

	mode      TerminalMode
	inlineCfg InlineConfig
	inline    inlineState
	config    RenderConfig

	renderLogFn func(string)

	running     bool
	needsRender bool
	fullRedraw  bool
}

// AppOption configures an App.
type AppOption func(*App) error

// WithInline switches the app to inline rendering with the given config.
func WithInline(cfg InlineConfig) AppOption {
	return func(a *App) error {
		a.mode = ModeInline
		a.inlineCfg = cfg
		return nil
	}
}

// WithRenderConfig replaces the render configuration.
func WithRenderConfig(cfg RenderConfig) AppOption {
	return func(a *App) error {
		a.config = cfg
		return nil
	}
}

// WithPollInterval sets the input poll timeout.
func WithPollInterval(d time.Duration) AppOption {
	return func(a *App) error {
		a.config.PollInterval = d
		return nil
	}
}

// WithHost substitutes the terminal host. Used by tests with MockTerminal.
func WithHost(host TerminalHost) AppOption {
	return func(a *App) error {
		a.host = host
		return nil
	}
}

// WithRenderLog sets a callback invoked after each frame with the render
// tree debug dump.
func WithRenderLog(fn func(string)) AppOption {
	return func(a *App) error {
		a.renderLogFn = fn
		return nil
	}
}

// NewApp creates an application in alternate screen mode unless configured
// otherwise.
func NewApp(opts ...AppOption) (*App, error) {
	a := &App{
		vdom:      NewVDom(),
		core:      newContextCore(),
		effects:   newEffectRuntime(),
		tracker:   newEffectTracker(),
		mode:      ModeAlternateScreen,
		inlineCfg: DefaultInlineConfig(),
		config:    DefaultRenderConfig(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.host == nil {
		host, err := NewANSITerminal(os.Stdout, os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("terminal host: %w", err)
		}
		a.host = host
	}

	a.writer = NewTerminalWriter(a.host, a.host.Caps())
	width, height := a.host.Size()
	a.buffers = NewDoubleBuffer(width, height)
	a.core.wake = func() { a.host.Interrupt() }

	return a, nil
}

// Tree returns the current render tree. Exposed for tests and debugging.
func (a *App) Tree() *RenderTree {
	return a.vdom.Tree()
}

// DebugString returns the render tree dump.
func (a *App) DebugString() string {
	return a.vdom.Tree().DebugString()
}

// Stop requests the loop to exit after the current iteration.
func (a *App) Stop() {
	a.running = false
}
