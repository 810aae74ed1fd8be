package netgraph

import (
	"strings"

	"github.com/OpenTraceLab/OpenTraceNet/pkg/netlist"
)

// DefaultCategoryPrefix marks category nodes that searches never expand.
const DefaultCategoryPrefix = "Comp"

// Avoidance configures which neighbors a search refuses to step onto.
type Avoidance struct {
	// CategoryPrefix blocks every node whose name starts with it.
	// Empty disables the check.
	CategoryPrefix string

	// LegacyPrefix replaces the kind-based instance rule with a plain string
	// test: any node whose name starts with the start's designator text
	// (everything before its first "-") is blocked. "R1" then also blocks
	// "R10" and its pins.
	LegacyPrefix bool
}

// DefaultAvoidance returns the kind-based rule with the "Comp" category
// prefix.
func DefaultAvoidance() Avoidance {
	return Avoidance{CategoryPrefix: DefaultCategoryPrefix}
}

// blocker returns the neighbor filter for a search starting at start.
func (a Avoidance) blocker(start *Node) func(current, neighbor *Node) bool {
	category := func(n *Node) bool {
		return a.CategoryPrefix != "" && strings.HasPrefix(n.Name, a.CategoryPrefix)
	}

	if a.LegacyPrefix {
		prefix, _, _ := strings.Cut(start.Name, netlist.PinSeparator)
		return func(_, neighbor *Node) bool {
			return category(neighbor) || strings.HasPrefix(neighbor.Name, prefix)
		}
	}

	owner := start.Designator
	return func(current, neighbor *Node) bool {
		if category(neighbor) {
			return true
		}
		if owner == "" || neighbor.Designator != owner {
			return false
		}
		// A designator start leaves through its own pins.
		return !(start.Kind == KindDesignator && current == start)
	}
}

// Neighborhood returns the names of all nodes reachable from start within
// maxDepth hops, start first. A start that is not in the graph has only
// itself as neighborhood.
func (gr *Graph) Neighborhood(start string, maxDepth int, avoid Avoidance) []string {
	found := []string{start}

	s, ok := gr.byName[start]
	if !ok || maxDepth <= 0 {
		return found
	}

	type item struct {
		node  *Node
		depth int
	}

	blocked := avoid.blocker(s)
	visited := map[int64]bool{s.id: true}
	queue := []item{{node: s}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.depth >= maxDepth {
			continue
		}
		for _, next := range gr.Neighbors(cur.node) {
			if visited[next.id] || blocked(cur.node, next) {
				continue
			}
			visited[next.id] = true
			found = append(found, next.Name)
			queue = append(queue, item{node: next, depth: cur.depth + 1})
		}
	}

	return found
}

// IsPinTarget reports whether target names a pin rather than a component.
func IsPinTarget(target string) bool {
	return strings.Contains(target, netlist.PinSeparator)
}

// FindPaths returns up to count shortest paths from start to target. The
// second result is false when no path exists, count is below one, or start
// is not in the graph.
//
// All paths come from one breadth-first pass with a shared visited set, so
// they are branches of a single search tree and reach target through
// different predecessors.
func (gr *Graph) FindPaths(start, target string, count int, avoid Avoidance) ([][]string, bool) {
	s, ok := gr.byName[start]
	if !ok || count < 1 {
		return nil, false
	}

	type item struct {
		node *Node
		path []string
	}

	pinTarget := IsPinTarget(target)
	blocked := avoid.blocker(s)
	visited := map[int64]bool{s.id: true}
	queue := []item{{node: s, path: []string{s.Name}}}

	var paths [][]string
	for len(queue) > 0 && len(paths) < count {
		cur := queue[0]
		queue = queue[1:]

		for _, next := range gr.Neighbors(cur.node) {
			if next.Name == target {
				if !pinTarget || cur.node.Kind == KindNet {
					paths = append(paths, extend(cur.path, next.Name))
					if len(paths) >= count {
						return paths, true
					}
				}
				continue
			}

			if visited[next.id] || blocked(cur.node, next) {
				continue
			}
			visited[next.id] = true
			queue = append(queue, item{node: next, path: extend(cur.path, next.Name)})
		}
	}

	if len(paths) == 0 {
		return nil, false
	}
	return paths, true
}

func extend(path []string, name string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = name
	return out
}
