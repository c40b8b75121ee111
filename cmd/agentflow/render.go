package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/metalagman/agentflow/internal/pipeline"
)

const wrapWidth = 100

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

// renderer prints run progress as a pipeline observer and the final summary.
type renderer struct {
	out   io.Writer
	plain bool
	md    *glamour.TermRenderer
}

func newRenderer(out io.Writer, plain bool) (*renderer, error) {
	r := &renderer{out: out, plain: plain}
	if plain {
		return r, nil
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	r.md = md
	return r, nil
}

func (r *renderer) paint(style lipgloss.Style, s string) string {
	if r.plain {
		return s
	}
	return style.Render(s)
}

func (r *renderer) markdown(s string) string {
	if r.md == nil {
		return s
	}
	out, err := r.md.Render(s)
	if err != nil {
		return s
	}
	return strings.TrimRight(out, "\n")
}

func (r *renderer) StepStarted(step pipeline.Step) {
	if !step.Assigned {
		return
	}
	fmt.Fprintf(r.out, "Task '%s' assigned to %s\n", step.Task, r.paint(nameStyle, step.Agent.String()))
}

func (r *renderer) StepFinished(step pipeline.Step) {
	if !step.Assigned {
		fmt.Fprintln(r.out, r.paint(errorStyle, step.Output))
		return
	}
	if step.Err != nil {
		fmt.Fprintln(r.out, r.paint(errorStyle, step.Task+" failed:"))
		fmt.Fprintln(r.out, step.Output)
		return
	}
	fmt.Fprintln(r.out, r.paint(successStyle, step.Task+" Result:"))
	fmt.Fprintln(r.out, r.markdown(step.Output))
}

// Summary prints the consolidated results in task order.
func (r *renderer) Summary(res pipeline.Result) {
	fmt.Fprintln(r.out, r.paint(successStyle, "Workflow Execution Completed!"))
	fmt.Fprintln(r.out, r.paint(headingStyle, "Consolidated Results"))
	for i, step := range res.Steps {
		fmt.Fprintf(r.out, "%d. %s: %s\n", i+1, r.paint(nameStyle, step.Task), step.Output)
	}
	if failed := res.Failed(); failed > 0 {
		fmt.Fprintln(r.out, r.paint(mutedStyle, fmt.Sprintf("%d of %d steps failed (run %s)", failed, len(res.Steps), res.RunID)))
	}
}
