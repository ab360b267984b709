package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-arraytransformer/pkg/pipeline/measure"
	"github.com/askiada/go-arraytransformer/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m         measure.Measure
	last      string
	endLinked string
}

func (pd *pipelineDrawer) New() error {
	err := pd.AddStep(model.StartStep.Name, "")
	if err != nil {
		return errors.Wrap(err, "unable to add start step to drawer")
	}
	err = pd.AddStep(model.EndStep.Name, "")
	if err != nil {
		return errors.Wrap(err, "unable to add end step to drawer")
	}
	pd.last = model.StartStep.Name

	return nil
}

func (pd *pipelineDrawer) PrepareStep(parentStep, step *model.StepInfo) error {
	err := pd.AddStep(step.Name, step.Operation)
	if err != nil {
		return err
	}
	err = pd.AddLink(parentStep.Name, step.Name)
	if err != nil {
		if rerr := pd.RemoveStep(step.Name); rerr != nil {
			return errors.Wrapf(err, "unable to remove step %s (%v)", step.Name, rerr)
		}
		return err
	}
	pd.last = step.Name

	return nil
}

// DiscardStep unlinks and removes a step another option rejected.
func (pd *pipelineDrawer) DiscardStep(parentStep, step *model.StepInfo) error {
	err := pd.RemoveLink(parentStep.Name, step.Name)
	if err != nil {
		return err
	}
	err = pd.RemoveStep(step.Name)
	if err != nil {
		return err
	}
	pd.last = parentStep.Name

	return nil
}

func (pd *pipelineDrawer) OnStepOutput(step *model.StepInfo, inputLen, outputLen int, computationDuration time.Duration) error {
	return nil
}

func (pd *pipelineDrawer) AfterApply(totalDuration time.Duration) error {
	return nil
}

// Finish links the last registered step to the end step and draws the pipeline.
func (pd *pipelineDrawer) Finish() error {
	if pd.endLinked != pd.last {
		if pd.endLinked != "" {
			err := pd.RemoveLink(pd.endLinked, model.EndStep.Name)
			if err != nil {
				return errors.Wrap(err, "unable to unlink end step")
			}
		}
		err := pd.AddLink(pd.last, model.EndStep.Name)
		if err != nil {
			return errors.Wrap(err, "unable to link end step")
		}
		pd.endLinked = pd.last
	}

	if pd.m != nil {
		if end := pd.m.GetMetric(model.EndStep.Name); end != nil && end.Runs() > 0 {
			err := pd.SetTotalTime(model.EndStep.Name, end.GetTotalDuration())
			if err != nil {
				return errors.Wrap(err, "unable to set total time")
			}
		}
		err := pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err := pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// PipelineDrawer draws the pipeline with drawer when the pipeline is finished. With a non nil
// measure, the drawing carries the durations it recorded.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{Drawer: drawer, m: measure}
}
