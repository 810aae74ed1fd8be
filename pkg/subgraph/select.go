// Package subgraph selects the part of a connectivity graph to show and
// assigns the style attributes a visualizer needs. It does no drawing.
package subgraph

import (
	"sort"

	"github.com/OpenTraceLab/OpenTraceNet/pkg/netgraph"
)

// Shape is the node shape category.
type Shape string

const (
	ShapeText   Shape = "text"   // nets
	ShapeSquare Shape = "square" // designators
	ShapeBox    Shape = "box"    // pins and anything else
)

// Color is the node color category.
type Color string

const (
	ColorDefault Color = "default"
	ColorStart   Color = "start"
	ColorTarget  Color = "target"
)

// Value returns the display color, empty for the visualizer's default.
func (c Color) Value() string {
	switch c {
	case ColorStart:
		return "lime"
	case ColorTarget:
		return "red"
	default:
		return ""
	}
}

// EdgeStyle is the edge category.
type EdgeStyle string

const (
	EdgeNet       EdgeStyle = "net"       // at least one end is a net
	EdgeComponent EdgeStyle = "component" // pin to designator
)

// Color returns the display color of the edge category.
func (s EdgeStyle) Color() string {
	if s == EdgeNet {
		return "red"
	}
	return "blue"
}

// Width returns the display width of the edge category.
func (s EdgeStyle) Width() int {
	if s == EdgeNet {
		return 1
	}
	return 5
}

// Node is a selected node with its display attributes.
type Node struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Label   string `json:"label"`
	Shape   Shape  `json:"shape"`
	Color   Color  `json:"color"`
	Tooltip string `json:"tooltip,omitempty"`
}

// Edge is a selected edge with its display category.
type Edge struct {
	From  string    `json:"from"`
	To    string    `json:"to"`
	Style EdgeStyle `json:"style"`
}

// Selection is the node and edge set handed to a visualizer.
type Selection struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Describer looks up a designator description.
type Describer func(designator string) (string, bool)

// Request names what to select.
type Request struct {
	Start        string
	Target       string // empty when there is no target to highlight
	Neighborhood []string
	Paths        [][]string
	Describe     Describer
}

// Select unions the neighborhood with every path node and keeps the graph
// edges whose ends are both selected. Names not in the graph are dropped.
func Select(g *netgraph.Graph, req Request) *Selection {
	selected := make(map[string]*netgraph.Node)
	add := func(name string) {
		if n, ok := g.Node(name); ok {
			selected[name] = n
		}
	}
	for _, name := range req.Neighborhood {
		add(name)
	}
	for _, path := range req.Paths {
		for _, name := range path {
			add(name)
		}
	}

	nodes := make([]*netgraph.Node, 0, len(selected))
	for _, n := range selected {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })

	sel := &Selection{
		Nodes: make([]Node, 0, len(nodes)),
		Edges: []Edge{},
	}
	for _, n := range nodes {
		sel.Nodes = append(sel.Nodes, styleNode(n, req))
		for _, m := range g.Neighbors(n) {
			if m.ID() <= n.ID() || selected[m.Name] == nil {
				continue
			}
			sel.Edges = append(sel.Edges, styleEdge(n, m))
		}
	}
	return sel
}

func styleNode(n *netgraph.Node, req Request) Node {
	out := Node{
		ID:    n.Name,
		Kind:  n.Kind.String(),
		Label: n.Name,
		Shape: ShapeBox,
		Color: ColorDefault,
	}

	switch n.Kind {
	case netgraph.KindNet:
		out.Shape = ShapeText
	case netgraph.KindDesignator:
		out.Shape = ShapeSquare
		if req.Describe != nil {
			if desc, ok := req.Describe(n.Name); ok {
				out.Tooltip = desc
			}
		}
	}

	switch {
	case n.Name == req.Start:
		out.Color = ColorStart
		out.Label = "Source " + n.Name
	case req.Target != "" && n.Name == req.Target:
		out.Color = ColorTarget
		out.Label = "Target " + n.Name
	}
	return out
}

func styleEdge(a, b *netgraph.Node) Edge {
	style := EdgeComponent
	if a.Kind == netgraph.KindNet || b.Kind == netgraph.KindNet {
		style = EdgeNet
	}
	return Edge{From: a.Name, To: b.Name, Style: style}
}

// Node returns the selected node called id.
func (s *Selection) Node(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
