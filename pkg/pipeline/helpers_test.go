package pipeline_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-arraytransformer/pkg/collection"
	"github.com/askiada/go-arraytransformer/pkg/pipeline/model"
)

func assertCollection(t *testing.T, want, got *collection.Collection) {
	t.Helper()
	assert.Truef(t, want.Equal(got), "want %s, got %s", want, got)
}

func pairs(kv ...any) *collection.Collection {
	c := collection.New()
	for i := 0; i+1 < len(kv); i += 2 {
		key, err := collection.KeyOf(kv[i])
		if err != nil {
			panic(err)
		}
		c.Set(key, kv[i+1])
	}
	return c
}

type stepOutput struct {
	name      string
	inputLen  int
	outputLen int
}

// recordingOption records every hook call and fails the hooks it is told to.
type recordingOption struct {
	mu sync.Mutex

	newErr     error
	prepareErr error
	outputErr  error
	applyErr   error
	finishErr  error

	prepared  [][2]string
	discarded []string
	outputs  []stepOutput
	applied  int
	finished int
}

func (o *recordingOption) New() error { return o.newErr }

func (o *recordingOption) PrepareStep(parentStep, step *model.StepInfo) error {
	if o.prepareErr != nil {
		return o.prepareErr
	}
	o.prepared = append(o.prepared, [2]string{parentStep.Name, step.Name})
	return nil
}

func (o *recordingOption) DiscardStep(_, step *model.StepInfo) error {
	o.discarded = append(o.discarded, step.Name)
	return nil
}

func (o *recordingOption) OnStepOutput(step *model.StepInfo, inputLen, outputLen int, _ time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.outputErr != nil {
		return o.outputErr
	}
	o.outputs = append(o.outputs, stepOutput{name: step.Name, inputLen: inputLen, outputLen: outputLen})
	return nil
}

func (o *recordingOption) AfterApply(time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.applyErr != nil {
		return o.applyErr
	}
	o.applied++
	return nil
}

func (o *recordingOption) Finish() error {
	if o.finishErr != nil {
		return o.finishErr
	}
	o.finished++
	return nil
}

var _ model.PipelineOption = (*recordingOption)(nil)
