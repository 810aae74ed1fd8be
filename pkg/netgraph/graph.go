package netgraph

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/OpenTraceLab/OpenTraceNet/pkg/netlist"
)

// Kind is the category of a graph node.
type Kind int

const (
	KindPin Kind = iota
	KindNet
	KindDesignator
)

func (k Kind) String() string {
	switch k {
	case KindPin:
		return "pin"
	case KindNet:
		return "net"
	case KindDesignator:
		return "designator"
	default:
		return "unknown"
	}
}

// Node is a pin, net or designator in the graph.
type Node struct {
	id int64

	Name string
	Kind Kind

	// Designator is the owning component of a pin, the name itself for a
	// designator node and empty for a net.
	Designator string
}

// ID implements graph.Node. IDs follow node creation order.
func (n *Node) ID() int64 { return n.id }

// Graph is the connectivity graph of one netlist.
type Graph struct {
	g      *simple.UndirectedGraph
	byName map[string]*Node
}

// Build creates the graph from the net and component maps. Excluded nets and
// components contribute no edges.
//
// Nets are added before components, so a name that appears in both maps is
// typed as a net.
func Build(nets, components *netlist.PinGroups, excludedNets, excludedComponents []string) *Graph {
	gr := &Graph{
		g:      simple.NewUndirectedGraph(),
		byName: make(map[string]*Node),
	}

	skipNets := toSet(excludedNets)
	for _, net := range nets.Names() {
		if skipNets[net] {
			continue
		}
		for _, pin := range nets.Pins(net) {
			gr.connect(gr.pin(pin), gr.node(net, KindNet, ""))
		}
	}

	skipComponents := toSet(excludedComponents)
	for _, ref := range components.Names() {
		if skipComponents[ref] {
			continue
		}
		for _, pin := range components.Pins(ref) {
			p := gr.pin(pin)
			if p.Kind == KindPin {
				p.Designator = ref
			}
			gr.connect(p, gr.node(ref, KindDesignator, ref))
		}
	}

	return gr
}

// node returns the node called name, creating it with the given kind.
func (gr *Graph) node(name string, kind Kind, designator string) *Node {
	if n, ok := gr.byName[name]; ok {
		return n
	}
	n := &Node{
		id:         int64(len(gr.byName)),
		Name:       name,
		Kind:       kind,
		Designator: designator,
	}
	gr.byName[name] = n
	gr.g.AddNode(n)
	return n
}

func (gr *Graph) pin(name string) *Node {
	designator, _, _ := netlist.SplitPin(name)
	return gr.node(name, KindPin, designator)
}

func (gr *Graph) connect(a, b *Node) {
	if a.id == b.id {
		return
	}
	gr.g.SetEdge(simple.Edge{F: a, T: b})
}

// Len returns the number of nodes.
func (gr *Graph) Len() int {
	return len(gr.byName)
}

// Has reports whether name is a node of the graph.
func (gr *Graph) Has(name string) bool {
	_, ok := gr.byName[name]
	return ok
}

// Node returns the node called name.
func (gr *Graph) Node(name string) (*Node, bool) {
	n, ok := gr.byName[name]
	return n, ok
}

// Nodes returns all nodes in creation order.
func (gr *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(gr.byName))
	for _, n := range gr.byName {
		out = append(out, n)
	}
	sortNodes(out)
	return out
}

// Neighbors returns the nodes adjacent to n in creation order.
func (gr *Graph) Neighbors(n *Node) []*Node {
	adjacent := graph.NodesOf(gr.g.From(n.id))
	out := make([]*Node, len(adjacent))
	for i, a := range adjacent {
		out[i] = a.(*Node)
	}
	sortNodes(out)
	return out
}

// HasEdge reports whether the named nodes are adjacent.
func (gr *Graph) HasEdge(a, b string) bool {
	na, okA := gr.byName[a]
	nb, okB := gr.byName[b]
	if !okA || !okB {
		return false
	}
	return gr.g.HasEdgeBetween(na.id, nb.id)
}

// EdgeCount returns the number of edges.
func (gr *Graph) EdgeCount() int {
	return gr.g.Edges().Len()
}

// Islands returns the names in each connected part of the graph, largest
// part first.
func (gr *Graph) Islands() [][]string {
	parts := topo.ConnectedComponents(gr.g)
	islands := make([][]string, 0, len(parts))
	for _, part := range parts {
		nodes := make([]*Node, len(part))
		for i, n := range part {
			nodes[i] = n.(*Node)
		}
		sortNodes(nodes)
		names := make([]string, len(nodes))
		for i, n := range nodes {
			names[i] = n.Name
		}
		islands = append(islands, names)
	}
	sort.SliceStable(islands, func(i, j int) bool {
		if len(islands[i]) != len(islands[j]) {
			return len(islands[i]) > len(islands[j])
		}
		return gr.byName[islands[i][0]].id < gr.byName[islands[j][0]].id
	})
	return islands
}

func sortNodes(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].id < nodes[j].id })
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
