// Package logging reports pipeline registrations and runs through zerolog.
package logging

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/askiada/go-arraytransformer/pkg/pipeline/model"
)

const (
	FieldStep        = "step"
	FieldOperation   = "operation"
	FieldParent      = "parent"
	FieldDescription = "description"
	FieldInputLen    = "input_len"
	FieldOutputLen   = "output_len"
	FieldDuration    = "duration"
)

type pipelineLogger struct {
	logger zerolog.Logger
}

func (pl *pipelineLogger) New() error {
	pl.logger.Debug().Msg("pipeline created")
	return nil
}

func (pl *pipelineLogger) PrepareStep(parentStep, step *model.StepInfo) error {
	pl.logger.Debug().
		Str(FieldStep, step.Name).
		Str(FieldOperation, step.Operation).
		Str(FieldParent, parentStep.Name).
		Str(FieldDescription, step.Description).
		Msg("step registered")
	return nil
}

func (pl *pipelineLogger) OnStepOutput(step *model.StepInfo, inputLen, outputLen int, computationDuration time.Duration) error {
	pl.logger.Debug().
		Str(FieldStep, step.Name).
		Str(FieldOperation, step.Operation).
		Int(FieldInputLen, inputLen).
		Int(FieldOutputLen, outputLen).
		Dur(FieldDuration, computationDuration).
		Msg("step applied")
	return nil
}

func (pl *pipelineLogger) AfterApply(totalDuration time.Duration) error {
	pl.logger.Info().Dur(FieldDuration, totalDuration).Msg("pipeline applied")
	return nil
}

func (pl *pipelineLogger) Finish() error {
	pl.logger.Debug().Msg("pipeline finished")
	return nil
}

// PipelineLogger logs every registration and step run of a pipeline to logger, at debug level,
// and every completed apply at info level.
func PipelineLogger(logger zerolog.Logger) model.PipelineOption {
	return &pipelineLogger{logger: logger.With().Str("component", "pipeline").Logger()}
}
