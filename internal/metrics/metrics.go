// Package metrics counts what a marquee session did, using a private
// Prometheus registry. Nothing is served over the network; counters can be
// summarized in-process or written to a textfile on exit.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dkoosis/marquee/pkg/marquee"
)

const namespace = "marquee"

// Recorder implements marquee.Observer with Prometheus counters.
type Recorder struct {
	registry *prometheus.Registry
	ticks    prometheus.Counter
	commands *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

var _ marquee.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames published by the animation engine.",
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Input lines handled by the interpreter, by command.",
		}, []string{"command"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_speeds_total",
			Help:      "Speed values rejected by the interpreter, by reason.",
		}, []string{"reason"}),
	}
	r.registry.MustRegister(r.ticks, r.commands, r.rejected)
	return r
}

// Ticked counts one published frame.
func (r *Recorder) Ticked() { r.ticks.Inc() }

// CommandHandled counts one interpreted line.
func (r *Recorder) CommandHandled(label string) { r.commands.WithLabelValues(label).Inc() }

// InputRejected counts one rejected speed value.
func (r *Recorder) InputRejected(err error) {
	r.rejected.WithLabelValues(marquee.RejectionReason(err)).Inc()
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteFile writes all counters to path in the Prometheus text format.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}

// Report is a flattened view of the counters.
type Report struct {
	Rows []Row
}

// Row is a single named counter value. Labelled counters get one row per
// label value, named metric{label="value"}.
type Row struct {
	Name  string
	Value float64
}

// Report gathers the current counter values.
func (r *Recorder) Report() (*Report, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}
	rep := &Report{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			if labels := m.GetLabel(); len(labels) > 0 {
				parts := make([]string, 0, len(labels))
				for _, lp := range labels {
					parts = append(parts, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
				}
				name += "{" + strings.Join(parts, ",") + "}"
			}
			rep.Rows = append(rep.Rows, Row{Name: name, Value: m.GetCounter().GetValue()})
		}
	}
	sort.Slice(rep.Rows, func(i, j int) bool { return rep.Rows[i].Name < rep.Rows[j].Name })
	return rep, nil
}

// Total sums every row whose name starts with metric.
func (rep *Report) Total(metric string) float64 {
	var sum float64
	for _, row := range rep.Rows {
		if row.Name == metric || strings.HasPrefix(row.Name, metric+"{") {
			sum += row.Value
		}
	}
	return sum
}

// Summary renders a one-line description of the session.
func (rep *Report) Summary() string {
	return fmt.Sprintf("%d frames, %d commands, %d rejected speeds",
		int(rep.Total(namespace+"_frames_total")),
		int(rep.Total(namespace+"_commands_total")),
		int(rep.Total(namespace+"_rejected_speeds_total")))
}
