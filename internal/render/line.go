package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/dkoosis/marquee/pkg/marquee"
)

const inputMarker = ">> "

// Line renders with plain escape sequences. On a terminal it repaints a fixed
// block above the input row. Otherwise it appends one line per new prompt or
// frame, which keeps piped output readable.
type Line struct {
	w     io.Writer
	out   *termenv.Output
	opts  Options
	isTTY bool
	fd    int
	width atomic.Int64
}

var _ Renderer = (*Line)(nil)

// NewLine creates a line renderer writing to w.
func NewLine(w io.Writer, opts Options) *Line {
	l := &Line{w: w, opts: opts}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		l.isTTY = true
		l.fd = int(f.Fd())
	}
	var outOpts []termenv.OutputOption
	if opts.NoColor || !l.isTTY {
		outOpts = append(outOpts, termenv.WithProfile(termenv.Ascii))
	}
	l.out = termenv.NewOutput(w, outOpts...)
	l.refreshWidth()
	return l
}

// Width reports the viewport width.
func (l *Line) Width() int {
	return int(l.width.Load())
}

// refreshWidth re-reads the terminal size so a resized window takes effect
// on the next tick.
func (l *Line) refreshWidth() {
	screenWidth := MinBoxWidth + boxMargin
	if l.isTTY {
		if w, _, err := term.GetSize(l.fd); err == nil && w > 0 {
			screenWidth = w
		}
	}
	l.width.Store(int64(resolveWidth(l.opts.FixedWidth, screenWidth)))
}

// Run paints until the session stops. A write error stops the session.
func (l *Line) Run(ctx context.Context, s *marquee.Session) error {
	var err error
	if l.isTTY {
		err = l.runScreen(ctx, s)
	} else {
		err = l.runAppend(ctx, s)
	}
	if err != nil {
		s.Stop()
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (l *Line) runScreen(ctx context.Context, s *marquee.Session) error {
	scr := newScreen(l.w)
	if err := scr.Start(); err != nil {
		return err
	}
	ticker := time.NewTicker(marquee.RepaintInterval)
	defer ticker.Stop()

	var lastSeq uint64
	paint := func() error {
		snap := s.State.Snapshot()
		reset := snap.PromptSeq != lastSeq
		lastSeq = snap.PromptSeq
		return scr.Paint(l.screenLines(snap), l.out.String(inputMarker).Foreground(l.out.Color("6")).String(), reset)
	}
	if err := paint(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return scr.Complete()
		case <-s.Done():
			if err := paint(); err != nil {
				return err
			}
			return scr.Complete()
		case <-s.State.Changed():
		case <-ticker.C:
			l.refreshWidth()
		}
		if err := paint(); err != nil {
			return err
		}
	}
}

func (l *Line) runAppend(ctx context.Context, s *marquee.Session) error {
	if _, err := fmt.Fprintln(l.w, heading(l.opts.Version)); err != nil {
		return err
	}

	var lastSeq uint64
	var lastFrame string
	emit := func() error {
		snap := s.State.Snapshot()
		if snap.Frame != lastFrame && snap.Frame != "" {
			lastFrame = snap.Frame
			if _, err := fmt.Fprintf(l.w, "|%s|\n", fitFrame(snap.Frame, l.Width())); err != nil {
				return err
			}
		}
		if snap.PromptSeq != lastSeq {
			lastSeq = snap.PromptSeq
			if _, err := fmt.Fprintf(l.w, "%s%s\n", inputMarker, snap.Prompt.Text); err != nil {
				return err
			}
		}
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.Done():
			return emit()
		case <-s.State.Changed():
			if err := emit(); err != nil {
				return err
			}
		}
	}
}

// screenLines lays out the title, box, status, help and prompt rows.
func (l *Line) screenLines(snap marquee.Snapshot) []string {
	o := l.out
	width := l.Width()
	border := o.Color("5")
	edge := o.String("+" + strings.Repeat("-", width) + "+").Foreground(border).String()
	bar := o.String("|").Foreground(border).String()

	state, speed, text := statusParts(snap, width)
	stateColor := o.Color("1")
	if snap.Running {
		stateColor = o.Color("2")
	}

	lines := []string{
		o.String(heading(l.opts.Version)).Bold().Foreground(o.Color("12")).String(),
		"",
		edge,
		bar + o.String(fitFrame(snap.Frame, width)).Foreground(o.Color("11")).String() + bar,
		edge,
		"",
		fmt.Sprintf("Status: %s | Speed: %s | Mode: %s | Text: %q",
			o.String(state).Foreground(stateColor).String(),
			o.String(speed).Foreground(o.Color("3")).String(),
			modeLabel(snap.Mode),
			text),
		"",
	}
	if snap.HelpVisible {
		lines = append(lines, strings.Split(plainHelp(), "\n")...)
	} else {
		lines = append(lines, o.String(tip).Foreground(o.Color("10")).String())
	}
	lines = append(lines, "", o.String(snap.Prompt.Text).Foreground(l.severityColor(snap.Prompt.Severity)).String())
	return lines
}

func (l *Line) severityColor(sev marquee.Severity) termenv.Color {
	switch sev {
	case marquee.SeveritySuccess:
		return l.out.Color("2")
	case marquee.SeverityWarn:
		return l.out.Color("3")
	case marquee.SeverityError:
		return l.out.Color("1")
	default:
		return l.out.Color("6")
	}
}
