package marquee

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type scenario struct {
	Name  string   `yaml:"name"`
	Lines []string `yaml:"lines"`
	Want  struct {
		Mode           *string `yaml:"mode"`
		Text           *string `yaml:"text"`
		Speed          *int    `yaml:"speed"`
		Running        *bool   `yaml:"running"`
		Alive          *bool   `yaml:"alive"`
		HelpVisible    *bool   `yaml:"help_visible"`
		Prompt         *string `yaml:"prompt"`
		PromptContains *string `yaml:"prompt_contains"`
		Severity       *string `yaml:"severity"`
	} `yaml:"want"`
}

var severityNames = map[string]Severity{
	"info":    SeverityInfo,
	"success": SeveritySuccess,
	"warn":    SeverityWarn,
	"error":   SeverityError,
}

func loadScenarios(t *testing.T) []scenario {
	t.Helper()
	data, err := os.ReadFile("testdata/scenarios.yaml")
	require.NoError(t, err)
	var out []scenario
	require.NoError(t, yaml.Unmarshal(data, &out))
	require.NotEmpty(t, out)
	return out
}

func TestInterpreter_MatchesScenarioTable_When_LinesAreHandledInOrder(t *testing.T) {
	t.Parallel()

	for _, sc := range loadScenarios(t) {
		t.Run(sc.Name, func(t *testing.T) {
			t.Parallel()

			state := NewState(DefaultConfig())
			in := NewInterpreter(state, NewQueue())
			for _, line := range sc.Lines {
				if !in.Handle(line) {
					break
				}
			}

			snap := state.Snapshot()
			w := sc.Want
			if w.Mode != nil {
				assert.Equal(t, *w.Mode, in.Mode().String())
				assert.Equal(t, in.Mode(), snap.Mode, "published mode should match")
			}
			if w.Text != nil {
				assert.Equal(t, *w.Text, snap.Text)
			}
			if w.Speed != nil {
				assert.Equal(t, *w.Speed, snap.SpeedMS)
			}
			if w.Running != nil {
				assert.Equal(t, *w.Running, snap.Running)
			}
			if w.Alive != nil {
				assert.Equal(t, *w.Alive, state.Alive())
			}
			if w.HelpVisible != nil {
				assert.Equal(t, *w.HelpVisible, snap.HelpVisible)
			}
			if w.Prompt != nil {
				assert.Equal(t, *w.Prompt, snap.Prompt.Text)
			}
			if w.PromptContains != nil {
				assert.Contains(t, snap.Prompt.Text, *w.PromptContains)
			}
			if w.Severity != nil {
				sev, ok := severityNames[*w.Severity]
				require.True(t, ok, "unknown severity %q in fixture", *w.Severity)
				assert.Equal(t, sev, snap.Prompt.Severity)
			}
		})
	}
}

func TestInterpreter_StoresSingleSpace_When_TextIsEmpty(t *testing.T) {
	t.Parallel()

	state := NewState(DefaultConfig())
	in := NewInterpreter(state, NewQueue())
	require.True(t, in.Handle(CmdText))
	// Lines reaching the interpreter are never blank, but the mutation
	// boundary still normalizes.
	require.True(t, in.Handle(""))

	assert.Equal(t, " ", state.Config().Text)
	assert.Equal(t, ModeNormal, in.Mode())
}

func TestInterpreter_RewindsPosition_When_TextIsSet(t *testing.T) {
	t.Parallel()

	state := NewState(DefaultConfig())
	engine := NewEngine(state, FixedWidth(10))
	for i := 0; i < 4; i++ {
		engine.Tick(10)
	}
	require.Equal(t, 4, state.Position())

	in := NewInterpreter(state, NewQueue())
	in.Handle(CmdText)
	in.Handle("new text")

	assert.Equal(t, 0, state.Position())
}

type recordingObserver struct {
	mu       sync.Mutex
	ticks    int
	labels   []string
	rejected []string
}

func (r *recordingObserver) Ticked() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
}

func (r *recordingObserver) CommandHandled(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.labels = append(r.labels, label)
}

func (r *recordingObserver) InputRejected(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected = append(r.rejected, RejectionReason(err))
}

func (r *recordingObserver) snapshot() (int, []string, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticks, append([]string(nil), r.labels...), append([]string(nil), r.rejected...)
}

func TestInterpreter_ReportsBoundedLabels_When_HandlingDataAndUnknownLines(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	state := NewState(DefaultConfig())
	in := NewInterpreter(state, NewQueue(), WithObserver(obs))

	for _, line := range []string{"help", "set_text", "any text at all", "set_speed", "x", "-1", "10000000000000", "90", "bogus"} {
		in.Handle(line)
	}

	_, labels, rejected := obs.snapshot()
	assert.Equal(t, []string{
		CmdHelp, CmdText, LabelTextValue, CmdSpeed,
		LabelSpeedValue, LabelSpeedValue, LabelSpeedValue, LabelSpeedValue, LabelUnknown,
	}, labels)
	assert.Equal(t, []string{"not_numeric", "not_positive", "too_large"}, rejected)
}

func TestInterpreter_AppliesCommandsInFIFOOrder_When_QueuedBeforeAndDuringRun(t *testing.T) {
	t.Parallel()

	state := NewState(DefaultConfig())
	queue := NewQueue()
	obs := &recordingObserver{}
	in := NewInterpreter(state, queue, WithObserver(obs))

	// c1 and c2 are queued before the interpreter runs, c3 while it waits.
	queue.Submit(CmdSpeed)
	queue.Submit("350")

	done := make(chan struct{})
	go func() {
		defer close(done)
		in.Run(context.Background())
	}()

	queue.Submit(CmdStart)
	assert.Eventually(t, state.Running, time.Second, 5*time.Millisecond)
	queue.Submit(CmdExit)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("interpreter did not stop after exit")
	}

	_, labels, _ := obs.snapshot()
	assert.Equal(t, []string{CmdSpeed, LabelSpeedValue, CmdStart, CmdExit}, labels)
	assert.Equal(t, 350, state.Config().SpeedMS)
	assert.False(t, state.Alive())
}

func TestInterpreter_ReturnsFromRun_When_QueueCloses(t *testing.T) {
	t.Parallel()

	state := NewState(DefaultConfig())
	queue := NewQueue()
	in := NewInterpreter(state, queue)

	done := make(chan struct{})
	go func() {
		defer close(done)
		in.Run(context.Background())
	}()

	queue.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("interpreter still waiting after queue close")
	}
}

func TestMode_String_When_Unknown(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "normal", ModeNormal.String())
	assert.Equal(t, "mode(9)", Mode(9).String())
}
