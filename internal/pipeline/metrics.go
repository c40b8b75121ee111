package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors that report pipeline activity.
type Metrics struct {
	runs         prometheus.Counter
	steps        *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
}

// MustNewMetrics constructs Metrics registered with reg.
// Registration errors panic, as with promauto.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "agentflow",
		Subsystem: "pipeline",
		Name:      "runs_total",
		Help:      "Number of pipeline runs started.",
	})
	steps := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agentflow",
			Subsystem: "pipeline",
			Name:      "steps_total",
			Help:      "Number of executed steps by task kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
	stepDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agentflow",
			Subsystem: "pipeline",
			Name:      "step_duration_seconds",
			Help:      "Time spent in collaborator calls per step.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"source"},
	)
	reg.MustRegister(runs, steps, stepDuration)
	return &Metrics{runs: runs, steps: steps, stepDuration: stepDuration}
}

func (m *Metrics) observeRun() {
	if m == nil {
		return
	}
	m.runs.Inc()
}

func (m *Metrics) observeStep(step Step) {
	if m == nil {
		return
	}
	m.steps.WithLabelValues(step.Kind.String(), step.Outcome()).Inc()
	if step.Assigned {
		m.stepDuration.WithLabelValues(step.Source.String()).Observe(step.Duration.Seconds())
	}
}
