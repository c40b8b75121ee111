// Package pipeline runs an ordered list of tasks, dispatching each one to an
// agent by role and threading every step's output into the next prompt.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/metalagman/agentflow/internal/agent"
	"github.com/metalagman/agentflow/internal/catalog"
	"github.com/rs/zerolog/log"
)

var (
	// ErrFetch marks a step whose page content could not be retrieved.
	ErrFetch = errors.New("fetch failed")
	// ErrModel marks a step whose model call failed.
	ErrModel = errors.New("model call failed")
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Fetcher retrieves the text content of a web page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Options tune an Executor.
type Options struct {
	// ResetOnMiss clears the carried result when a task has no agent.
	// By default the last successful result keeps flowing to later steps.
	ResetOnMiss bool
	Observer    Observer
	Metrics     *Metrics
}

// Executor runs pipelines. Runs must not overlap with registry or catalog
// mutation; callers serialize access.
type Executor struct {
	agents  *agent.Registry
	catalog *catalog.Catalog
	model   Generator
	fetcher Fetcher
	opts    Options
}

// New creates an executor. fetcher may be nil when no URL will be supplied.
func New(agents *agent.Registry, tasks *catalog.Catalog, model Generator, fetcher Fetcher, opts Options) (*Executor, error) {
	if agents == nil {
		return nil, fmt.Errorf("agent registry is required")
	}
	if tasks == nil {
		return nil, fmt.Errorf("task catalog is required")
	}
	if model == nil {
		return nil, fmt.Errorf("model client is required")
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	return &Executor{
		agents:  agents,
		catalog: tasks,
		model:   model,
		fetcher: fetcher,
		opts:    opts,
	}, nil
}

// Run executes taskNames in order and returns one step per name.
// url is only used by the Requirements Gathering step; pass "" for none.
// Step failures are recorded in the result and never abort the run.
func (e *Executor) Run(ctx context.Context, taskNames []string, url string) Result {
	res := Result{
		RunID: uuid.NewString(),
		URL:   url,
		Steps: make([]Step, 0, len(taskNames)),
	}
	logger := log.With().Str("run_id", res.RunID).Logger()
	logger.Info().Strs("tasks", taskNames).Msg("starting workflow execution")
	e.opts.Metrics.observeRun()

	var previous string
	for i, name := range taskNames {
		step := Step{Index: i, Task: name, Kind: Classify(name)}

		a, err := e.resolveAgent(step)
		if err != nil {
			step.Err = err
			step.Output = fmt.Sprintf("No suitable agent found for task: %s", name)
			if e.opts.ResetOnMiss {
				previous = ""
			}
			logger.Warn().Str("task", name).Msg("no suitable agent found")
			e.finish(step, &res)
			continue
		}
		step.Agent = a
		step.Assigned = true
		logger.Info().Str("task", name).Str("agent", a.Name).Str("role", string(a.Role)).Msg("task assigned")
		e.opts.Observer.StepStarted(step)

		plan := BuildPrompt(PromptInput{
			Task:        name,
			Instruction: e.catalog.Instruction(name),
			URL:         url,
			Previous:    previous,
		})
		step.Source = plan.Source

		started := time.Now()
		step.Prompt, step.Output, step.Err = e.invoke(ctx, plan)
		step.Duration = time.Since(started)
		if step.Err != nil {
			logger.Error().Err(step.Err).Str("task", name).Msg("step failed")
		}

		previous = step.Output
		e.finish(step, &res)
	}

	logger.Info().Int("steps", len(res.Steps)).Int("failed", res.Failed()).Msg("workflow execution completed")
	return res
}

func (e *Executor) resolveAgent(step Step) (agent.Agent, error) {
	role, ok := step.Kind.Role()
	if !ok {
		return agent.Agent{}, fmt.Errorf("%w for task %q", agent.ErrNoAgentFound, step.Task)
	}
	return e.agents.FindByRole(role)
}

// invoke performs the blocking collaborator calls for one step. Errors are
// returned alongside their text so the text can stand in as the step output.
func (e *Executor) invoke(ctx context.Context, plan Plan) (prompt, output string, err error) {
	prompt = plan.Prompt
	if plan.Source == SourceFetch {
		content, err := e.fetch(ctx, plan.URL)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrFetch, err)
			return "", err.Error(), err
		}
		prompt = RequirementsPrompt(content)
	}

	out, err := e.model.Generate(ctx, prompt)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrModel, err)
		return prompt, err.Error(), err
	}
	return prompt, out, nil
}

func (e *Executor) fetch(ctx context.Context, url string) (string, error) {
	if e.fetcher == nil {
		return "", fmt.Errorf("no content fetcher configured")
	}
	return e.fetcher.Fetch(ctx, url)
}

func (e *Executor) finish(step Step, res *Result) {
	res.Steps = append(res.Steps, step)
	e.opts.Metrics.observeStep(step)
	e.opts.Observer.StepFinished(step)
}
