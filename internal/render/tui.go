package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/marquee/pkg/marquee"
)

// TUI renders a session as a Bubble Tea program. The text field at the
// bottom is the session's input reader: each submitted line goes to the
// session queue.
type TUI struct {
	in    io.Reader
	out   io.Writer
	opts  Options
	width atomic.Int64
}

var _ Renderer = (*TUI)(nil)

// NewTUI creates a TUI reading keys from in and drawing to out.
func NewTUI(in io.Reader, out io.Writer, opts Options) *TUI {
	t := &TUI{in: in, out: out, opts: opts}
	t.width.Store(int64(resolveWidth(opts.FixedWidth, MinBoxWidth+boxMargin)))
	return t
}

// Width reports the viewport width for the latest window size.
func (t *TUI) Width() int {
	return int(t.width.Load())
}

func (t *TUI) setScreenWidth(screen int) {
	t.width.Store(int64(resolveWidth(t.opts.FixedWidth, screen)))
}

// Run starts the Bubble Tea program and blocks until the session stops.
func (t *TUI) Run(ctx context.Context, s *marquee.Session) error {
	program := tea.NewProgram(
		newModel(t, s),
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	s.Stop()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

type changedMsg struct{}
type doneMsg struct{}

// waitForChange blocks in a command goroutine until the session state
// changes, so the program repaints only when there is something new.
func waitForChange(s *marquee.Session) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-s.State.Changed():
			return changedMsg{}
		case <-s.Done():
			return doneMsg{}
		}
	}
}

type model struct {
	tui     *TUI
	session *marquee.Session
	snap    marquee.Snapshot
	input   textinput.Model
	styles  tuiStyles
	help    string
	width   int
	ready   bool
}

func newModel(t *TUI, s *marquee.Session) model {
	ti := textinput.New()
	ti.Prompt = inputMarker
	ti.Placeholder = "command"
	ti.CharLimit = 256
	ti.Focus()

	return model{
		tui:     t,
		session: s,
		snap:    s.State.Snapshot(),
		input:   ti,
		styles:  newTUIStyles(t.opts.NoColor),
		help:    renderHelp(MinBoxWidth+boxMargin, t.opts.NoColor),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForChange(m.session))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.session.Stop()
			return m, tea.Quit
		case tea.KeyEnter:
			m.session.Submit(m.input.Value())
			m.input.Reset()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.tui.setScreenWidth(msg.Width)
		m.input.Width = msg.Width - len(inputMarker) - 1
		m.help = renderHelp(msg.Width-boxChrome, m.tui.opts.NoColor)
		m.ready = true
		return m, nil
	case changedMsg:
		m.snap = m.session.State.Snapshot()
		return m, waitForChange(m.session)
	case doneMsg:
		m.snap = m.session.State.Snapshot()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "Loading marquee..."
	}
	width := m.tui.Width()
	snap := m.snap
	st := m.styles

	header := st.title.Render(heading(m.tui.opts.Version))
	box := st.box.Width(width).Render(st.frame.Render(fitFrame(snap.Frame, width)))

	state, speed, text := statusParts(snap, width)
	stateStyle := st.stopped
	if snap.Running {
		stateStyle = st.running
	}
	status := strings.Join([]string{
		st.label.Render("Status: ") + stateStyle.Render(state),
		st.label.Render("Speed: ") + st.speed.Render(speed),
		st.label.Render("Mode: ") + modeLabel(snap.Mode),
		st.label.Render("Text: ") + st.frame.Render(fmt.Sprintf("%q", text)),
	}, st.muted.Render(" | "))

	lower := st.tip.Render(tip)
	if snap.HelpVisible {
		lower = m.help
	}

	prompt := st.severity(snap.Prompt.Severity).Render(snap.Prompt.Text)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		box,
		"",
		status,
		"",
		lower,
		"",
		prompt,
		m.input.View(),
	)
}

type tuiStyles struct {
	title   lipgloss.Style
	box     lipgloss.Style
	frame   lipgloss.Style
	label   lipgloss.Style
	running lipgloss.Style
	stopped lipgloss.Style
	speed   lipgloss.Style
	muted   lipgloss.Style
	tip     lipgloss.Style
	info    lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
}

func newTUIStyles(noColor bool) tuiStyles {
	st := tuiStyles{
		title:   lipgloss.NewStyle().Bold(true),
		box:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
		frame:   lipgloss.NewStyle(),
		label:   lipgloss.NewStyle().Bold(true),
		running: lipgloss.NewStyle(),
		stopped: lipgloss.NewStyle(),
		speed:   lipgloss.NewStyle(),
		muted:   lipgloss.NewStyle(),
		tip:     lipgloss.NewStyle(),
		info:    lipgloss.NewStyle(),
		success: lipgloss.NewStyle(),
		warn:    lipgloss.NewStyle(),
		err:     lipgloss.NewStyle().Bold(true),
	}
	if noColor {
		return st
	}
	st.title = st.title.Foreground(lipgloss.Color("#7D56F4"))
	st.box = st.box.BorderForeground(lipgloss.Color("#FF5FD2"))
	st.frame = st.frame.Foreground(lipgloss.Color("#FFBD2E"))
	st.running = st.running.Foreground(lipgloss.Color("#04B575"))
	st.stopped = st.stopped.Foreground(lipgloss.Color("#FF5F56"))
	st.speed = st.speed.Foreground(lipgloss.Color("#FFBD2E"))
	st.muted = st.muted.Foreground(lipgloss.Color("#626262"))
	st.tip = st.tip.Foreground(lipgloss.Color("#04B575"))
	st.info = st.info.Foreground(lipgloss.Color("#00B7EB"))
	st.success = st.success.Foreground(lipgloss.Color("#04B575"))
	st.warn = st.warn.Foreground(lipgloss.Color("#FFBD2E"))
	st.err = st.err.Foreground(lipgloss.Color("#FF5F56"))
	return st
}

func (st tuiStyles) severity(sev marquee.Severity) lipgloss.Style {
	switch sev {
	case marquee.SeveritySuccess:
		return st.success
	case marquee.SeverityWarn:
		return st.warn
	case marquee.SeverityError:
		return st.err
	default:
		return st.info
	}
}
