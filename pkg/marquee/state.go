package marquee

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultText is shown until the user sets their own text.
	DefaultText = "Welcome to CSOPESY Marquee!"
	// DefaultSpeed is the tick period in milliseconds.
	DefaultSpeed = 200
	// PollInterval is how often a stopped engine re-checks the running flag.
	PollInterval = 50 * time.Millisecond
	// RepaintInterval bounds how long a renderer may go without repainting
	// when no change notification arrives.
	RepaintInterval = time.Second
)

// Severity classifies a prompt message for display.
type Severity int

const (
	SeverityInfo    Severity = iota // neutral prompts and questions
	SeveritySuccess                 // a command took effect
	SeverityWarn                    // the marquee stopped or is shutting down
	SeverityError                   // rejected or unknown input
)

// Prompt is the latest status or prompt line produced by the interpreter.
type Prompt struct {
	Text     string
	Severity Severity
}

// Config is the user-controlled marquee configuration.
type Config struct {
	Text    string
	SpeedMS int
	Running bool
}

// DefaultConfig returns the configuration a fresh console starts with.
func DefaultConfig() Config {
	return Config{Text: DefaultText, SpeedMS: DefaultSpeed}
}

// Snapshot is a consistent copy of everything a renderer displays.
type Snapshot struct {
	Config
	Frame       string
	Prompt      Prompt
	PromptSeq   uint64 // increments on every SetPrompt, even with the same text
	Mode        Mode
	HelpVisible bool
}

// State is the shared state of one marquee session.
//
// The interpreter is the only writer of the config fields, the mode, and the
// prompt. The engine is the only writer of the scroll position and the frame.
// Every access takes the mutex for a single logical value and releases it
// before doing anything slow.
type State struct {
	mu          sync.Mutex
	text        string
	generation  uint64 // bumped on every text change
	speed       int
	running     bool
	position    int
	frame       string
	prompt      Prompt
	promptSeq   uint64
	mode        Mode
	helpVisible bool

	alive    atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
	changed  chan struct{}
}

// NewState creates a State from cfg, normalizing empty text and speeds
// outside 1..MaxSpeed.
func NewState(cfg Config) *State {
	if checkSpeed(cfg.SpeedMS) != nil {
		cfg.SpeedMS = DefaultSpeed
	}
	s := &State{
		text:    normalizeText(cfg.Text),
		speed:   cfg.SpeedMS,
		running: cfg.Running,
		prompt:  Prompt{Text: "Type 'help' for available commands."},
		done:    make(chan struct{}),
		changed: make(chan struct{}, 1),
	}
	s.alive.Store(true)
	return s
}

func normalizeText(text string) string {
	if text == "" {
		return " "
	}
	return text
}

// Config returns a copy of the current configuration.
func (s *State) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Config{Text: s.text, SpeedMS: s.speed, Running: s.running}
}

// SetText replaces the marquee text and rewinds the scroll position.
// Empty text is stored as a single space.
func (s *State) SetText(text string) {
	s.mu.Lock()
	s.text = normalizeText(text)
	s.generation++
	s.position = 0
	s.mu.Unlock()
	s.notify()
}

// SetSpeed sets the tick period. Values outside 1..MaxSpeed are rejected
// with ErrSpeedNotPositive or ErrSpeedTooLarge and leave the speed unchanged.
func (s *State) SetSpeed(ms int) error {
	if err := checkSpeed(ms); err != nil {
		return err
	}
	s.mu.Lock()
	s.speed = ms
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetRunning starts or stops the animation.
func (s *State) SetRunning(running bool) {
	s.mu.Lock()
	s.running = running
	s.mu.Unlock()
	s.notify()
}

// Running reports whether the animation is running.
func (s *State) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Speed returns the current tick period.
func (s *State) Speed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Duration(s.speed) * time.Millisecond
}

// Position returns the current scroll offset.
func (s *State) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// Frame returns the most recently computed visible slice.
func (s *State) Frame() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// SetPrompt replaces the prompt message.
func (s *State) SetPrompt(text string, sev Severity) {
	s.mu.Lock()
	s.prompt = Prompt{Text: text, Severity: sev}
	s.promptSeq++
	s.mu.Unlock()
	s.notify()
}

// Prompt returns the current prompt message.
func (s *State) Prompt() Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompt
}

// ShowHelp keeps the command listing on screen from now on.
func (s *State) ShowHelp() {
	s.mu.Lock()
	s.helpVisible = true
	s.mu.Unlock()
	s.notify()
}

func (s *State) setMode(m Mode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
	s.notify()
}

// cursor copies out what the engine needs for one tick.
func (s *State) cursor() (text string, pos int, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text, s.position, s.generation
}

// publish stores a computed frame. The new position is dropped if the text
// changed while the frame was being computed, so a SetText rewind always wins.
func (s *State) publish(frame string, gen uint64, next int) {
	s.mu.Lock()
	s.frame = frame
	if s.generation == gen {
		s.position = next
	}
	s.mu.Unlock()
	s.notify()
}

// Snapshot returns a consistent copy of the displayable state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Config:      Config{Text: s.text, SpeedMS: s.speed, Running: s.running},
		Frame:       s.frame,
		Prompt:      s.prompt,
		PromptSeq:   s.promptSeq,
		Mode:        s.mode,
		HelpVisible: s.helpVisible,
	}
}

// Changed is signalled after any displayable change. Signals coalesce, so a
// slow reader sees one pending notification rather than a backlog.
func (s *State) Changed() <-chan struct{} {
	return s.changed
}

func (s *State) notify() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// Alive reports whether the session should keep running.
func (s *State) Alive() bool {
	return s.alive.Load()
}

// Stop clears the keep-running flag and closes Done. Safe to call repeatedly.
func (s *State) Stop() {
	s.stopOnce.Do(func() {
		s.alive.Store(false)
		close(s.done)
	})
}

// Done is closed once Stop has been called.
func (s *State) Done() <-chan struct{} {
	return s.done
}
