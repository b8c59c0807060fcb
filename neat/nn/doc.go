// Package nn evaluates evolved networks and answers structural questions
// about them (incoming adjacency, cycles, gonum graph views).
//
// It does not know about genomes; anything that can list its input nodes,
// output nodes and links can be evaluated.
package nn
