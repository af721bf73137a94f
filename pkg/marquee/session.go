package marquee

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// SessionConfig configures a Session.
type SessionConfig struct {
	Config Config    // initial marquee configuration
	Width  WidthFunc // display width, supplied by the renderer
	// Input is scanned by a Reader when non-nil. Leave it nil when the
	// renderer collects lines itself and calls Submit.
	Input    io.Reader
	Logger   *slog.Logger
	Observer Observer
}

// Session wires a State, Queue, Engine, Interpreter and optional Reader.
type Session struct {
	State *State
	Queue *Queue

	engine *Engine
	interp *Interpreter
	reader *Reader
	logger *slog.Logger

	wg        sync.WaitGroup
	readerErr chan error
}

// NewSession creates a session. Nothing runs until Start.
func NewSession(cfg SessionConfig) *Session {
	opts := []Option{WithLogger(cfg.Logger), WithObserver(cfg.Observer)}
	o := newOptions(opts)

	state := NewState(cfg.Config)
	queue := NewQueue()
	s := &Session{
		State:     state,
		Queue:     queue,
		engine:    NewEngine(state, cfg.Width, opts...),
		interp:    NewInterpreter(state, queue, opts...),
		logger:    o.logger,
		readerErr: make(chan error, 1),
	}
	if cfg.Input != nil {
		s.reader = NewReader(cfg.Input, state, queue, opts...)
	}
	return s
}

// Start launches the actors. Cancelling ctx stops the session.
func (s *Session) Start(ctx context.Context) {
	s.wg.Add(3)
	go func() {
		defer s.wg.Done()
		select {
		case <-ctx.Done():
			s.State.Stop()
		case <-s.State.Done():
		}
		s.Queue.Close()
	}()
	go func() {
		defer s.wg.Done()
		s.engine.Run(ctx)
	}()
	go func() {
		defer s.wg.Done()
		s.interp.Run(ctx)
	}()

	// The reader is not joined by Wait: a read blocked on a terminal cannot
	// be cancelled.
	if s.reader != nil {
		go func() {
			s.readerErr <- s.reader.Run()
		}()
	}
	s.logger.Debug("session started", "reader", s.reader != nil)
}

// Submit queues a line typed by the user. See Queue.Submit.
func (s *Session) Submit(line string) bool {
	return s.Queue.Submit(line)
}

// Stop asks every actor to finish.
func (s *Session) Stop() {
	s.State.Stop()
}

// Done is closed when the session has been asked to stop.
func (s *Session) Done() <-chan struct{} {
	return s.State.Done()
}

// Wait blocks until the engine and interpreter have returned.
func (s *Session) Wait() {
	s.wg.Wait()
	s.logger.Debug("session finished")
}

// ReaderErr returns the reader's error if it has already finished.
func (s *Session) ReaderErr() error {
	select {
	case err := <-s.readerErr:
		return err
	default:
		return nil
	}
}

// Mode returns the interpreter's current mode as last published.
func (s *Session) Mode() Mode {
	return s.State.Snapshot().Mode
}
