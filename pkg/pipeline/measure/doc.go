// Package measure records how long each step of a pipeline takes to run.
package measure
