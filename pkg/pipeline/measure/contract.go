package measure

import "time"

// Measure collects one metric per step name.
type Measure interface {
	AddMetric(name string) Metric
	RemoveMetric(name string)
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric accumulates the runs of a single step.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AVGDuration() time.Duration
	SetSizes(inputLen, outputLen int)
	Sizes() (inputLen, outputLen int)
	Runs() int64
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
}
