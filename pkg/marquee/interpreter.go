package marquee

import (
	"context"
	"fmt"
	"log/slog"
)

// Mode is the interpreter state.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAwaitingText
	ModeAwaitingSpeed
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeAwaitingText:
		return "awaiting text"
	case ModeAwaitingSpeed:
		return "awaiting speed"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Command words, matched case-sensitively.
const (
	CmdHelp  = "help"
	CmdStart = "start_marquee"
	CmdStop  = "stop_marquee"
	CmdText  = "set_text"
	CmdSpeed = "set_speed"
	CmdExit  = "exit"
)

// Labels reported to the Observer for lines that are not command words.
const (
	LabelTextValue  = "<text>"
	LabelSpeedValue = "<speed>"
	LabelUnknown    = "<unknown>"
)

// CommandInfo describes one command for help listings.
type CommandInfo struct {
	Name        string
	Description string
}

// Commands lists every command in display order.
var Commands = []CommandInfo{
	{CmdHelp, "displays the commands and their descriptions"},
	{CmdStart, "starts the marquee animation"},
	{CmdStop, "stops the marquee animation"},
	{CmdText, "asks for a line of text and scrolls it in the marquee"},
	{CmdSpeed, "asks for the animation refresh period in milliseconds"},
	{CmdExit, "terminates the console"},
}

const (
	promptEnterText   = "Enter text for marquee:"
	promptEnterSpeed  = "Enter speed in milliseconds:"
	promptRetrySpeed  = "Invalid speed (%v). Enter a positive number:"
	promptUnknown     = "Unknown command: %s. Type 'help' for available commands."
	promptHelp        = "Available commands are listed above."
	promptStarted     = "Marquee started."
	promptStopped     = "Marquee stopped."
	promptTextSet     = "Text set to %q."
	promptSpeedSet    = "Speed set to %dms."
	promptShuttingOff = "Shutting down..."
)

// Interpreter is the command state machine. It is the only writer of the
// marquee configuration and of its own mode.
type Interpreter struct {
	state    *State
	queue    *Queue
	mode     Mode
	logger   *slog.Logger
	observer Observer
}

// NewInterpreter creates an interpreter in ModeNormal reading from queue.
func NewInterpreter(state *State, queue *Queue, opts ...Option) *Interpreter {
	o := newOptions(opts)
	return &Interpreter{state: state, queue: queue, logger: o.logger, observer: o.observer}
}

// Mode returns the current interpreter state. It is only safe on the
// goroutine running Handle or Run; other goroutines read Snapshot().Mode.
func (in *Interpreter) Mode() Mode {
	return in.mode
}

// Run handles queued lines in order until the queue closes, the state is
// stopped, or ctx is cancelled.
func (in *Interpreter) Run(ctx context.Context) {
	in.logger.Debug("interpreter started")
	defer in.logger.Debug("interpreter stopped")

	for in.state.Alive() && ctx.Err() == nil {
		line, ok := in.queue.Next()
		if !ok {
			return
		}
		if !in.Handle(line) {
			return
		}
	}
}

// Handle applies one line to the state machine and reports whether the
// session should continue. exit is honoured in every mode.
func (in *Interpreter) Handle(line string) bool {
	if line == CmdExit {
		in.observer.CommandHandled(CmdExit)
		in.logger.Info("exit requested", "mode", in.mode.String())
		in.state.SetPrompt(promptShuttingOff, SeverityWarn)
		in.state.Stop()
		return false
	}

	switch in.mode {
	case ModeAwaitingText:
		in.observer.CommandHandled(LabelTextValue)
		in.state.SetText(line)
		in.state.SetPrompt(fmt.Sprintf(promptTextSet, line), SeveritySuccess)
		in.setMode(ModeNormal)

	case ModeAwaitingSpeed:
		in.observer.CommandHandled(LabelSpeedValue)
		ms, err := ParseSpeed(line)
		if err == nil {
			err = in.state.SetSpeed(ms)
		}
		if err != nil {
			in.observer.InputRejected(err)
			in.logger.Info("speed rejected", "input", line, "error", err)
			in.state.SetPrompt(fmt.Sprintf(promptRetrySpeed, err), SeverityError)
			return true
		}
		in.state.SetPrompt(fmt.Sprintf(promptSpeedSet, ms), SeveritySuccess)
		in.setMode(ModeNormal)

	default:
		in.handleCommand(line)
	}
	return true
}

func (in *Interpreter) handleCommand(line string) {
	switch line {
	case CmdHelp:
		in.state.ShowHelp()
		in.state.SetPrompt(promptHelp, SeveritySuccess)
	case CmdStart:
		in.state.SetRunning(true)
		in.state.SetPrompt(promptStarted, SeveritySuccess)
	case CmdStop:
		in.state.SetRunning(false)
		in.state.SetPrompt(promptStopped, SeverityWarn)
	case CmdText:
		in.state.SetPrompt(promptEnterText, SeverityInfo)
		in.setMode(ModeAwaitingText)
	case CmdSpeed:
		in.state.SetPrompt(promptEnterSpeed, SeverityInfo)
		in.setMode(ModeAwaitingSpeed)
	default:
		in.observer.CommandHandled(LabelUnknown)
		in.logger.Info("unknown command", "input", line)
		in.state.SetPrompt(fmt.Sprintf(promptUnknown, line), SeverityError)
		return
	}
	in.observer.CommandHandled(line)
	in.logger.Debug("command handled", "command", line)
}

func (in *Interpreter) setMode(m Mode) {
	in.mode = m
	in.state.setMode(m)
}
