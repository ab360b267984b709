package pipeline

import (
	"github.com/askiada/go-arraytransformer/pkg/collection"
)

// Step is a registered operation together with the parameters captured at registration.
// Steps are never modified once registered.
type Step struct {
	op     Operation
	params stepParams
}

// stepParams is implemented by the parameters of every operation of the catalog.
type stepParams interface {
	apply(in *collection.Collection) (*collection.Collection, error)
	describe() string
}

// Operation returns the operation tag of the step.
func (s Step) Operation() Operation { return s.op }

// String renders the operation with its parameters, for instance slice(offset=1, length=none).
func (s Step) String() string {
	return string(s.op) + "(" + s.params.describe() + ")"
}

// Run applies the step alone to in.
func (s Step) Run(in *collection.Collection) (*collection.Collection, error) {
	out, err := s.params.apply(in)
	if err != nil {
		return nil, err
	}
	return out, nil
}
