package render

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/marquee/pkg/marquee"
)

// syncBuffer is a bytes.Buffer safe for one writer and concurrent readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestLine_Width_UsesFixedOrDefault_When_NotATerminal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 12, NewLine(&bytes.Buffer{}, Options{FixedWidth: 12}).Width())
	assert.Equal(t, MinBoxWidth, NewLine(&bytes.Buffer{}, Options{}).Width())
}

func TestLine_AppendsPromptsAndFrames_When_OutputIsPiped(t *testing.T) {
	t.Parallel()

	out := &syncBuffer{}
	r := NewLine(out, Options{FixedWidth: 5, Version: "test"})
	s := marquee.NewSession(marquee.SessionConfig{
		Config: marquee.Config{Text: "Hi", SpeedMS: 5},
		Width:  r.Width,
	})
	s.Start(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- r.Run(context.Background(), s) }()

	step := func(line, want string) {
		t.Helper()
		require.True(t, s.Submit(line))
		assert.Eventually(t, func() bool { return strings.Contains(out.String(), want) },
			2*time.Second, 5*time.Millisecond, "waiting for %q", want)
	}
	step("set_speed", ">> Enter speed in milliseconds:")
	step("abc", ">> Invalid speed")
	step("10", ">> Speed set to 10ms.")
	step("start_marquee", "|Hi   |")
	step("exit", ">> Shutting down...")

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("renderer did not return after exit")
	}
	s.Wait()

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "Marquee Console test\n"))
	assert.NotContains(t, got, "\x1b[", "piped output carries no escape sequences")
}

func TestLine_StopsSession_When_OutputFails(t *testing.T) {
	t.Parallel()

	r := NewLine(brokenWriter{}, Options{FixedWidth: 5})
	s := marquee.NewSession(marquee.SessionConfig{Config: marquee.DefaultConfig(), Width: r.Width})
	s.Start(context.Background())

	err := r.Run(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
	s.Wait()
	assert.False(t, s.State.Alive())
}

func TestScreen_Paint_RewritesRowsAndKeepsCursor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	scr := newScreen(&buf)
	require.NoError(t, scr.Start())

	require.NoError(t, scr.Paint([]string{"title", "body", "prompt"}, ">> ", true))
	first := buf.String()
	assert.Contains(t, first, "\x1b[1;1Htitle")
	assert.Contains(t, first, "\x1b[4;1H")
	assert.True(t, strings.HasSuffix(first, ">> "))

	buf.Reset()
	require.NoError(t, scr.Paint([]string{"title", "body", "prompt"}, ">> ", false))
	second := buf.String()
	assert.True(t, strings.HasPrefix(second, "\x1b[s"), "saves the typing position")
	assert.True(t, strings.HasSuffix(second, "\x1b[u"), "restores the typing position")

	buf.Reset()
	require.NoError(t, scr.Paint([]string{"title"}, ">> ", false))
	shrunk := buf.String()
	assert.Contains(t, shrunk, "\x1b[3;1H\x1b[2K", "clears rows left by a taller paint")
	assert.True(t, strings.HasSuffix(shrunk, ">> "), "input row moved so it is reset")
}

func TestLine_ScreenLines_ShowHelpOnceRequested(t *testing.T) {
	t.Parallel()

	r := NewLine(&bytes.Buffer{}, Options{FixedWidth: 8, NoColor: true})
	snap := marquee.Snapshot{
		Config: marquee.Config{Text: "Hi", SpeedMS: 200},
		Frame:  "Hi      ",
		Prompt: marquee.Prompt{Text: "Marquee stopped."},
	}

	lines := r.screenLines(snap)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "+--------+")
	assert.Contains(t, joined, "|Hi      |")
	assert.Contains(t, joined, `Status: Stopped | Speed: 200ms | Mode: Normal | Text: "Hi"`)
	assert.Contains(t, joined, tip)
	assert.Equal(t, "Marquee stopped.", lines[len(lines)-1])

	snap.HelpVisible = true
	joined = strings.Join(r.screenLines(snap), "\n")
	assert.Contains(t, joined, "Available Commands:")
	assert.NotContains(t, joined, tip)
}
