package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrPipelineMustBeSet = errors.New("p must be set")
	// ErrInvalidArgument is matched by every registration failure.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrRuntimeLookup is matched by apply failures caused by data missing from the collection.
	ErrRuntimeLookup = errors.New("runtime lookup failure")
	// ErrInvalidDefinition is matched by YAML definitions missing a required field.
	ErrInvalidDefinition = errors.New("invalid definition")
)

// ArgumentError reports a registration argument that violates its constraint.
type ArgumentError struct {
	Operation  Operation
	Parameter  string
	Constraint string
}

func (e *ArgumentError) Error() string {
	if e.Parameter == "" {
		return fmt.Sprintf("%s: %s: %s", ErrInvalidArgument, e.Operation, e.Constraint)
	}
	return fmt.Sprintf("%s: %s: %s must be %s", ErrInvalidArgument, e.Operation, e.Parameter, e.Constraint)
}

func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }

func invalidArgument(op Operation, param, constraint string) error {
	return &ArgumentError{Operation: op, Parameter: param, Constraint: constraint}
}

// LookupError reports a value a step needed but could not find while applying.
type LookupError struct {
	Operation Operation
	// Position is the position of the offending entry in the step input.
	Position int
	Reason   string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %s: entry %d: %s", ErrRuntimeLookup, e.Operation, e.Position, e.Reason)
}

func (e *LookupError) Unwrap() error { return ErrRuntimeLookup }
