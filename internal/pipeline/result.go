package pipeline

import (
	"errors"
	"time"

	"github.com/metalagman/agentflow/internal/agent"
)

// Step is the outcome of one task in a run.
type Step struct {
	Index    int
	Task     string
	Kind     Kind
	Agent    agent.Agent
	Assigned bool
	Source   Source
	Prompt   string
	// Output is the model text, or the error text when Err is set.
	Output   string
	Err      error
	Duration time.Duration
}

// Outcome names how the step ended.
func (s Step) Outcome() string {
	switch {
	case s.Err == nil:
		return "ok"
	case errors.Is(s.Err, agent.ErrNoAgentFound):
		return "no_agent"
	case errors.Is(s.Err, ErrFetch):
		return "fetch_error"
	case errors.Is(s.Err, ErrModel):
		return "model_error"
	default:
		return "error"
	}
}

// Result holds the steps of one run in execution order.
type Result struct {
	RunID string
	URL   string
	Steps []Step
}

// Lookup returns the last step executed for task.
func (r Result) Lookup(task string) (Step, bool) {
	for i := len(r.Steps) - 1; i >= 0; i-- {
		if r.Steps[i].Task == task {
			return r.Steps[i], true
		}
	}
	return Step{}, false
}

// Failed counts steps that ended with an error.
func (r Result) Failed() int {
	n := 0
	for _, s := range r.Steps {
		if s.Err != nil {
			n++
		}
	}
	return n
}
