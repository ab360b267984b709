// Package model provides the data structures shared by the pipeline package and its options.
// It defines the description of a registered step and the hooks a pipeline option implements.
package model
