package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-arraytransformer/pkg/collection"
	"github.com/askiada/go-arraytransformer/pkg/pipeline/model"
)

// Pipeline is an ordered list of steps applied to a collection on demand.
//
// Registration is not safe for concurrent use. Apply only reads the pipeline, so it may run
// concurrently as long as no step is being registered.
type Pipeline struct {
	steps []Step
	infos []*model.StepInfo
	opts  []model.PipelineOption
}

// New creates a new pipeline.
func New(opts ...model.PipelineOption) (*Pipeline, error) {
	pipe := &Pipeline{
		opts: opts,
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

// Len returns the number of registered steps.
func (p *Pipeline) Len() int {
	if p == nil {
		return 0
	}
	return len(p.steps)
}

// Steps returns a copy of the registered steps in registration order.
func (p *Pipeline) Steps() []Step {
	if p == nil {
		return nil
	}
	out := make([]Step, len(p.steps))
	copy(out, p.steps)
	return out
}

// addStep appends a validated step. Options see the step before it is appended; if one of them
// fails the step is dropped.
func (p *Pipeline) addStep(op Operation, params stepParams) (*Pipeline, error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}
	step := Step{op: op, params: params}
	info := &model.StepInfo{
		Operation:   string(op),
		Name:        model.StepName(len(p.steps), string(op)),
		Description: step.String(),
		Index:       len(p.steps),
	}
	parent := model.StartStep
	if len(p.infos) > 0 {
		parent = p.infos[len(p.infos)-1]
	}
	for i, opt := range p.opts {
		err := opt.PrepareStep(parent, info)
		if err != nil {
			if derr := discardStep(p.opts[:i], parent, info); derr != nil {
				return nil, errors.Wrapf(err, "unable to prepare step %s (%v)", info.Name, derr)
			}
			return nil, errors.Wrapf(err, "unable to prepare step %s", info.Name)
		}
	}
	p.steps = append(p.steps, step)
	p.infos = append(p.infos, info)
	return p, nil
}

// discardStep rolls back a rejected step in the options that already prepared it, last first.
func discardStep(opts []model.PipelineOption, parent, info *model.StepInfo) error {
	for i := len(opts) - 1; i >= 0; i-- {
		d, ok := opts[i].(model.StepDiscarder)
		if !ok {
			continue
		}
		err := d.DiscardStep(parent, info)
		if err != nil {
			return errors.Wrap(err, "unable to discard step")
		}
	}
	return nil
}

// Apply runs every step in registration order, each one consuming the output of the previous
// one. The input is never modified. With no step registered, Apply returns a copy of the input.
// The first failing step aborts the run.
func (p *Pipeline) Apply(input *collection.Collection) (*collection.Collection, error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}
	start := time.Now()
	current := input.Clone()
	for i, step := range p.steps {
		startFn := time.Now()
		next, err := step.Run(current)
		if err != nil {
			return nil, errors.Wrapf(err, "step %s", p.infos[i].Name)
		}
		endFn := time.Since(startFn)
		for _, opt := range p.opts {
			err := opt.OnStepOutput(p.infos[i], current.Len(), next.Len(), endFn)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to run step output hook of %s", p.infos[i].Name)
			}
		}
		current = next
	}

	total := time.Since(start)
	for _, opt := range p.opts {
		err := opt.AfterApply(total)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run after apply hook")
		}
	}
	return current, nil
}

// ApplyAll applies the pipeline to every input, at most limit at a time (no limit when limit is
// not positive). Outputs follow the order of inputs. The first failure cancels the inputs not yet
// started and is returned.
func (p *Pipeline) ApplyAll(ctx context.Context, inputs []*collection.Collection, limit int) ([]*collection.Collection, error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}
	errGrp, dCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		errGrp.SetLimit(limit)
	}
	outputs := make([]*collection.Collection, len(inputs))
	for idx, input := range inputs {
		localIdx, localInput := idx, input
		errGrp.Go(func() error {
			if err := dCtx.Err(); err != nil {
				return errors.Wrapf(err, "input %d", localIdx)
			}
			out, err := p.Apply(localInput)
			if err != nil {
				return errors.Wrapf(err, "input %d", localIdx)
			}
			outputs[localIdx] = out
			return nil
		})
	}
	err := errGrp.Wait()
	if err != nil {
		return nil, err
	}
	return outputs, nil
}

// Finish runs the Finish hook of every option, for instance to write the pipeline drawing.
func (p *Pipeline) Finish() error {
	if p == nil {
		return ErrPipelineMustBeSet
	}
	for _, opt := range p.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}
