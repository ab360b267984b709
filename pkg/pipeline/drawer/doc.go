// Package drawer renders the steps of a pipeline as a Graphviz DOT graph.
//
// Steps are linked in registration order from a start node to an end node. Each node is coloured
// after the family of its operation and, when a measure is attached, labelled with its average
// duration and sizes, the edge leading to it going from blue for the fastest step to red for the
// slowest.
package drawer
