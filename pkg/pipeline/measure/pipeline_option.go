package measure

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-arraytransformer/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	pm.AddMetric(model.StartStep.Name)
	pm.AddMetric(model.EndStep.Name)
	return nil
}

func (pm *pipelineMeasure) PrepareStep(parentStep, step *model.StepInfo) error {
	pm.AddMetric(step.Name)

	return nil
}

func (pm *pipelineMeasure) DiscardStep(parentStep, step *model.StepInfo) error {
	pm.RemoveMetric(step.Name)

	return nil
}

func (pm *pipelineMeasure) OnStepOutput(step *model.StepInfo, inputLen, outputLen int, computationDuration time.Duration) error {
	mt := pm.GetMetric(step.Name)
	if mt == nil {
		return errors.Errorf("no metric for step %s", step.Name)
	}
	mt.AddDuration(computationDuration)
	mt.SetSizes(inputLen, outputLen)

	return nil
}

func (pm *pipelineMeasure) AfterApply(totalDuration time.Duration) error {
	mt := pm.GetMetric(model.EndStep.Name)
	if mt == nil {
		return errors.Errorf("no metric for step %s", model.EndStep.Name)
	}
	mt.AddDuration(totalDuration)
	mt.SetTotalDuration(totalDuration)

	return nil
}

func (pm *pipelineMeasure) Finish() error {
	return nil
}

// PipelineMeasure records the duration and sizes of every step run in measure. The end metric
// holds the duration of whole apply calls.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{measure}
}
