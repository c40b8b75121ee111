package main

import (
	"context"

	"github.com/metalagman/agentflow/internal/agent"
	"github.com/metalagman/agentflow/internal/catalog"
	"github.com/metalagman/agentflow/internal/config"
	"github.com/metalagman/agentflow/internal/fetch"
	"github.com/metalagman/agentflow/internal/llm"
	"github.com/metalagman/agentflow/internal/pipeline"
)

// newRegistries seeds the agent registry and task catalog from cfg.
func newRegistries(cfg config.Config) (*agent.Registry, *catalog.Catalog) {
	agents := agent.NewRegistry()
	for _, a := range cfg.Agents {
		agents.Register(a.Name, agent.Role(a.Role))
	}
	tasks := catalog.New()
	for _, t := range cfg.Tasks {
		tasks.Register(t.Name, t.Instruction)
	}
	return agents, tasks
}

// newExecutor wires the model client and fetcher described by cfg.
func newExecutor(ctx context.Context, cfg config.Config, agents *agent.Registry, tasks *catalog.Catalog, opts pipeline.Options) (*pipeline.Executor, error) {
	model, err := llm.New(ctx, cfg.Model, nil)
	if err != nil {
		return nil, err
	}
	fetcher, err := fetch.New(fetch.FromConfig(cfg.Fetch), nil)
	if err != nil {
		return nil, err
	}
	opts.ResetOnMiss = cfg.Pipeline.ResetOnMiss
	return pipeline.New(agents, tasks, model, fetcher, opts)
}
