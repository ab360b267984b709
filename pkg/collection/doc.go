// Package collection provides the ordered key/value collection consumed and produced by the pipeline.
//
// A Collection mirrors the behaviour of an associative array: keys are unique, either integers or
// strings, and iteration follows insertion order. Numeric strings used as keys are normalised to
// integer keys, and appending without a key uses the next free integer index.
//
// The package also holds the value comparison rules the pipeline operations rely on: strict and
// loose equality, string and numeric conversion, and truthiness.
package collection
