package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// screen paints a fixed block of rows at the top of a terminal while the
// user types on the row below it. Every paint is one write: save the
// cursor, rewrite each row in place, restore the cursor.
type screen struct {
	out      io.Writer
	rows     int // rows painted by the last Paint
	inputRow int // 1-based row where the user types
	mu       sync.Mutex
}

func newScreen(out io.Writer) *screen {
	return &screen{out: out}
}

func csi(seq string, args ...any) string {
	if len(args) == 0 {
		return termenv.CSI + seq
	}
	return termenv.CSI + fmt.Sprintf(seq, args...)
}

// Start clears the terminal.
func (s *screen) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := io.WriteString(s.out, csi(termenv.EraseDisplaySeq, 2)+csi(termenv.CursorPositionSeq, 1, 1))
	s.rows = 0
	return err
}

// Complete leaves the painted block in place and moves the cursor below it.
func (s *screen) Complete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := csi(termenv.CursorPositionSeq, s.inputRow+1, 1) + csi(termenv.EraseDisplaySeq, 0)
	_, err := io.WriteString(s.out, seq)
	return err
}

// Paint rewrites rows 1..len(lines) and clears rows a previous, taller paint
// left behind. If resetInput is true the input row is cleared and the cursor
// is left after the input marker; otherwise the cursor returns to where the
// user was typing.
func (s *screen) Paint(lines []string, marker string, resetInput bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sb strings.Builder
	if !resetInput {
		sb.WriteString(csi(termenv.SaveCursorPositionSeq))
	}
	for i, line := range lines {
		sb.WriteString(csi(termenv.CursorPositionSeq, i+1, 1))
		sb.WriteString(line)
		sb.WriteString(csi(termenv.EraseLineRightSeq))
	}
	for i := len(lines); i < s.rows; i++ {
		sb.WriteString(csi(termenv.CursorPositionSeq, i+1, 1))
		sb.WriteString(csi(termenv.EraseEntireLineSeq))
	}

	inputRow := len(lines) + 1
	if inputRow != s.inputRow {
		resetInput = true
	}
	if resetInput {
		sb.WriteString(csi(termenv.CursorPositionSeq, inputRow, 1))
		sb.WriteString(csi(termenv.EraseDisplaySeq, 0))
		sb.WriteString(marker)
	} else {
		sb.WriteString(csi(termenv.RestoreCursorPositionSeq))
	}

	_, err := io.WriteString(s.out, sb.String())
	s.rows = len(lines)
	s.inputRow = inputRow
	return err
}
