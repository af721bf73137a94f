package marquee

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Reader feeds lines from an input stream into a Queue.
type Reader struct {
	in     io.Reader
	queue  *Queue
	state  *State
	logger *slog.Logger
}

// NewReader creates a reader that scans in and submits to queue.
func NewReader(in io.Reader, state *State, queue *Queue, opts ...Option) *Reader {
	o := newOptions(opts)
	return &Reader{in: in, queue: queue, state: state, logger: o.logger}
}

// Run reads lines until end of input, a read error, an exit line, or a
// stopped state. End of input and read errors stop the session. Lines have
// no length limit, so any text the user types can become marquee text.
//
// A read blocked on the underlying stream cannot be interrupted, so Run may
// outlive the session by one line when the stream is a terminal.
func (r *Reader) Run() error {
	r.logger.Debug("reader started")
	defer r.logger.Debug("reader stopped")

	br := bufio.NewReader(r.in)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if !r.state.Alive() {
				return nil
			}
			line = strings.TrimRight(line, "\r\n")
			if r.queue.Submit(line) && strings.TrimSpace(line) == CmdExit {
				return nil
			}
		}
		if err == nil {
			continue
		}

		r.state.Stop()
		if errors.Is(err, io.EOF) {
			r.logger.Info("end of input")
			return nil
		}
		return fmt.Errorf("read input: %w", err)
	}
}
