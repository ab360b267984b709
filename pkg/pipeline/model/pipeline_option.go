package model

import "time"

// PipelineOption defines the interface for pipeline options.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error

	pipelineStepOption
	pipelineApplyOption

	// Finish runs when the pipeline is finished with.
	Finish() error
}

// pipelineStepOption defines the interface for step options at the pipeline level.
type pipelineStepOption interface {
	// PrepareStep runs when a step is registered, after its arguments were validated.
	PrepareStep(parentStep, step *StepInfo) error
}

// StepDiscarder is implemented by options keeping state per registered step. DiscardStep runs
// when an option later in the list rejected a step this option already prepared.
type StepDiscarder interface {
	DiscardStep(parentStep, step *StepInfo) error
}

// pipelineApplyOption defines the interface for apply options at the pipeline level.
// Apply may run concurrently, implementations must guard their own state.
type pipelineApplyOption interface {
	// OnStepOutput runs every time a step produced its output collection.
	OnStepOutput(step *StepInfo, inputLen, outputLen int, computationDuration time.Duration) error
	// AfterApply runs after every step of an apply call succeeded.
	AfterApply(totalDuration time.Duration) error
}
