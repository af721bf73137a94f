package marquee

import (
	"context"
	"log/slog"
	"time"
)

// WidthFunc reports the current display width in cells.
type WidthFunc func() int

// FixedWidth returns a WidthFunc that always reports w.
func FixedWidth(w int) WidthFunc {
	return func() int { return w }
}

// Engine advances the scroll position and publishes frames.
type Engine struct {
	state    *State
	width    WidthFunc
	logger   *slog.Logger
	observer Observer
}

// NewEngine creates an engine over state that asks width for the viewport size.
func NewEngine(state *State, width WidthFunc, opts ...Option) *Engine {
	o := newOptions(opts)
	if width == nil {
		width = FixedWidth(0)
	}
	return &Engine{state: state, width: width, logger: o.logger, observer: o.observer}
}

// Tick performs one animation step for a viewport of width cells. It reports
// false, and leaves the frame and position untouched, when width <= 0.
func (e *Engine) Tick(width int) bool {
	if width <= 0 {
		return false
	}
	text, pos, gen := e.state.cursor()
	buf := VirtualBuffer(text, width)
	n := len(buf)
	if pos < 0 || pos >= n {
		pos = 0
	}
	frame := Window(buf, pos, width)
	e.state.publish(frame, gen, (pos+1)%n)
	e.observer.Ticked()
	return true
}

// Run ticks until ctx is cancelled or the state is stopped. While running it
// sleeps for the configured speed after each tick. While stopped it polls
// every PollInterval. Speed changes apply from the next sleep.
func (e *Engine) Run(ctx context.Context) {
	e.logger.Debug("engine started")
	defer e.logger.Debug("engine stopped")

	for e.state.Alive() {
		wait := PollInterval
		if e.state.Running() {
			e.Tick(e.width())
			wait = e.state.Speed()
		}
		if !e.sleep(ctx, wait) {
			return
		}
	}
}

// sleep waits for d and reports false if the session ended first.
func (e *Engine) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-e.state.Done():
		return false
	case <-timer.C:
		return true
	}
}
