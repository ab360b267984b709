package drawer

import (
	"time"

	"github.com/askiada/go-arraytransformer/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing a pipeline.
type Drawer interface {
	// AddStep adds a step running operation to the pipeline drawer.
	AddStep(stepName, operation string) error
	// RemoveStep removes a step without links from the pipeline drawer.
	RemoveStep(stepName string) error
	// AddLink adds a link between parent and child steps.
	AddLink(parentStepName, childStepName string) error
	// RemoveLink removes the link between parent and child steps.
	RemoveLink(parentStepName, childStepName string) error
	// Draw writes the pipeline graph.
	Draw() error
	// SetTotalTime sets the total time for the step.
	SetTotalTime(stepName string, totalTime time.Duration) error
	// AddMeasure adds a measure to the pipeline drawer.
	AddMeasure(measure measure.Measure) error
}
