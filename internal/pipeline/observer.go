package pipeline

// Observer receives progress notifications during a run.
// StepStarted is only called for steps that resolved to an agent.
type Observer interface {
	StepStarted(step Step)
	StepFinished(step Step)
}

type nopObserver struct{}

func (nopObserver) StepStarted(Step)  {}
func (nopObserver) StepFinished(Step) {}
