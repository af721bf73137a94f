// Package render paints a marquee session to a terminal.
//
// Two strategies share one interface: TUI drives a Bubble Tea program and
// collects input in a text field, Line repaints with plain ANSI sequences and
// leaves input to a marquee.Reader on stdin.
package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/marquee/pkg/marquee"
)

// Renderer paints a session until it stops.
type Renderer interface {
	// Width reports the marquee viewport width in cells. The engine calls it
	// once per tick from its own goroutine.
	Width() int
	// Run paints s until the session is done or ctx is cancelled. An output
	// error stops the session and is returned.
	Run(ctx context.Context, s *marquee.Session) error
}

// Options configures either renderer.
type Options struct {
	// FixedWidth pins the viewport width. Zero follows the terminal size.
	FixedWidth int
	NoColor    bool
	Version    string
}

const (
	// MinBoxWidth is the narrowest viewport used when following the terminal.
	MinBoxWidth = 41
	// boxMargin is the space left beside the box on wide terminals.
	boxMargin = 20
	// boxChrome is the space the box border needs on narrow terminals.
	boxChrome = 4

	title = "Marquee Console"
	tip   = "Type 'help' for available commands."
)

// BoxWidth returns the viewport width for a terminal of the given width: the
// terminal less a margin, at least MinBoxWidth, and never wider than the
// terminal allows once the border is drawn.
func BoxWidth(screen int) int {
	w := screen - boxMargin
	if w < MinBoxWidth {
		w = MinBoxWidth
	}
	if limit := screen - boxChrome; w > limit {
		w = limit
	}
	if w < 0 {
		w = 0
	}
	return w
}

func resolveWidth(fixed, screen int) int {
	if fixed > 0 {
		return fixed
	}
	return BoxWidth(screen)
}

var titleCaser = cases.Title(language.English)

// modeLabel names the interpreter mode for the status line.
func modeLabel(m marquee.Mode) string {
	return titleCaser.String(m.String())
}

func runningLabel(running bool) string {
	if running {
		return "Running"
	}
	return "Stopped"
}

// clip shortens s to at most width cells, marking the cut with an ellipsis.
func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// fitFrame pads or cuts a frame to exactly width cells.
func fitFrame(frame string, width int) string {
	if width <= 0 {
		return ""
	}
	frame = runewidth.Truncate(frame, width, "")
	return runewidth.FillRight(frame, width)
}

// statusParts returns the unstyled status fields in display order.
func statusParts(snap marquee.Snapshot, textWidth int) (state, speed, text string) {
	return runningLabel(snap.Running),
		fmt.Sprintf("%dms", snap.SpeedMS),
		clip(snap.Text, textWidth)
}

// plainHelp lists the commands without markup.
func plainHelp() string {
	var sb strings.Builder
	sb.WriteString("Available Commands:\n")
	nameWidth := 0
	for _, c := range marquee.Commands {
		if n := runewidth.StringWidth(c.Name); n > nameWidth {
			nameWidth = n
		}
	}
	for _, c := range marquee.Commands {
		fmt.Fprintf(&sb, "  %s - %s\n", runewidth.FillRight(c.Name, nameWidth), c.Description)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func heading(version string) string {
	if version == "" {
		return title
	}
	return title + " " + version
}
