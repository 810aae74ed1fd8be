// Package netgraph builds the connectivity graph of a parsed netlist and
// searches it.
//
// # Model
//
// The graph is undirected and simple. Its nodes are pins ("R1-2"), nets
// ("GND") and designators ("R1"); every node carries its Kind. Two kinds of
// edge exist:
//
//   - pin <-> net: the pin is a member of the net
//   - pin <-> designator: the pin belongs to the component
//
// A path such as R1-1 -> NET1 -> R2-1 -> R2 -> R2-2 therefore alternates
// between electrical connections and "through the component" hops.
//
// # Searches
//
// Neighborhood returns every node within a number of hops of a start node.
// FindPaths returns up to N shortest paths from a start node to a target
// using a single breadth-first pass with one visited set, so every node is
// reached at most once and the returned paths are branches of one search
// tree. This is not a k-shortest-paths algorithm.
//
// Both searches apply the same instance-avoidance rule, configured by
// Avoidance: the walk never re-enters the start's own component through its
// designator or its sibling pins, and nodes named with a category prefix
// (default "Comp") are never expanded.
//
// A target containing "-" is a pin target. A path to a pin target is only
// accepted when it arrives from a net node, so it reflects an electrical
// connection rather than the pin's own designator.
package netgraph
