package model

import "strconv"

// StepInfo describes a registered step.
type StepInfo struct {
	// Operation is the tag of the operation, such as "slice".
	Operation string
	// Name identifies the step inside its pipeline, see [StepName].
	Name string
	// Description renders the operation together with its captured parameters.
	Description string
	// Index is the zero based registration position.
	Index int
}

var (
	StartStep = &StepInfo{Name: "start"}
	EndStep   = &StepInfo{Name: "end"}
)

// StepName returns the name of the step registered at index with the given operation.
func StepName(index int, operation string) string {
	return strconv.Itoa(index+1) + ". " + operation
}
