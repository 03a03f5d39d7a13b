// Package output renders the cluster graph for the external visualizer.
//
// The graph is a JSON array of top-level clusters. Every cluster carries its
// type, display-scaled radius, 4-component feature vector, and its members
// in build order; members are either nested clusters or definition leaves.
// Key order is fixed by struct tags and every float is rounded to 6 decimal
// places, so identical runs produce byte-identical output.
package output
