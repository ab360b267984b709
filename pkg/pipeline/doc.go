// Package pipeline provides a deferred pipeline of transformations over an ordered collection.
//
// Steps are registered one at a time, either with the typed methods (Values, Slice, Diff...) or by
// operation tag with Register. Every registration validates its arguments straight away: an
// invalid argument fails with an error matching ErrInvalidArgument and leaves the pipeline
// untouched. Registered steps capture their parameters and nothing runs until Apply is called.
//
// Apply folds the steps over an input collection in registration order, each step consuming the
// output of the previous one. The input is never modified and a failing step, for instance a
// column lookup on a row missing that column, aborts the whole run with an error matching
// ErrRuntimeLookup.
//
// LoadDefinition builds a pipeline from a YAML list of steps, going through Register for each.
//
// Options from the measure, drawer and logging packages can observe registrations and runs. Apply
// does not modify the pipeline, so it can be called concurrently, which ApplyAll does to process
// many inputs at once.
package pipeline
