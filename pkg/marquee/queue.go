package marquee

import (
	"strings"
	"sync"
)

// Queue is a FIFO of trimmed, non-empty command lines.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []string
	closed bool
}

// NewQueue returns an empty, open queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Submit trims line and appends it. Blank lines, and any line submitted after
// Close, are dropped and reported as false.
func (q *Queue) Submit(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.items = append(q.items, line)
	q.cond.Signal()
	return true
}

// Next blocks until a line is available or the queue is closed. Once closed
// it reports false even if lines remain, so shutdown wins over draining.
func (q *Queue) Next() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.closed {
		return "", false
	}
	line := q.items[0]
	q.items[0] = ""
	q.items = q.items[1:]
	return line, true
}

// Close wakes every waiter and rejects further submissions.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Len returns the number of pending lines.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
