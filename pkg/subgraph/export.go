package subgraph

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// ExportJSON encodes the selection.
func (s *Selection) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// dotNode adapts a selected node to the gonum DOT encoder.
type dotNode struct {
	id   int64
	node Node
}

func (n dotNode) ID() int64     { return n.id }
func (n dotNode) DOTID() string { return n.node.ID }

func (n dotNode) Attributes() []encoding.Attribute {
	attrs := []encoding.Attribute{
		{Key: "label", Value: n.node.Label},
		{Key: "shape", Value: dotShape(n.node.Shape)},
	}
	if c := n.node.Color.Value(); c != "" {
		attrs = append(attrs,
			encoding.Attribute{Key: "style", Value: "filled"},
			encoding.Attribute{Key: "fillcolor", Value: c},
		)
	}
	if n.node.Tooltip != "" {
		attrs = append(attrs, encoding.Attribute{Key: "tooltip", Value: n.node.Tooltip})
	}
	return attrs
}

func dotShape(s Shape) string {
	if s == ShapeText {
		return "plaintext"
	}
	return string(s)
}

type dotEdge struct {
	from, to dotNode
	style    EdgeStyle
}

func (e dotEdge) From() graph.Node         { return e.from }
func (e dotEdge) To() graph.Node           { return e.to }
func (e dotEdge) ReversedEdge() graph.Edge { return dotEdge{from: e.to, to: e.from, style: e.style} }

func (e dotEdge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{
		{Key: "color", Value: e.style.Color()},
		{Key: "penwidth", Value: strconv.Itoa(e.style.Width())},
	}
}

// ExportDOT encodes the selection as a Graphviz graph called name.
func (s *Selection) ExportDOT(name string) ([]byte, error) {
	g := simple.NewUndirectedGraph()
	byID := make(map[string]dotNode, len(s.Nodes))
	for i, n := range s.Nodes {
		dn := dotNode{id: int64(i), node: n}
		byID[n.ID] = dn
		g.AddNode(dn)
	}

	for _, e := range s.Edges {
		from, okFrom := byID[e.From]
		to, okTo := byID[e.To]
		if !okFrom || !okTo {
			return nil, fmt.Errorf("subgraph: edge %s -- %s references an unselected node", e.From, e.To)
		}
		g.SetEdge(dotEdge{from: from, to: to, style: e.Style})
	}

	return dot.Marshal(g, name, "", "  ")
}

// ExportMermaid renders the selection as a Mermaid flowchart. Net edges are
// thin links and component edges thick ones.
func (s *Selection) ExportMermaid() string {
	ids := make(map[string]string, len(s.Nodes))

	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for i, n := range s.Nodes {
		id := fmt.Sprintf("N%d", i)
		ids[n.ID] = id
		left, right := mermaidShape(n.Shape)
		sb.WriteString(fmt.Sprintf("  %s%s\"%s\"%s\n", id, left, mermaidEscape(n.Label), right))
	}

	for _, e := range s.Edges {
		link := "==="
		if e.Style == EdgeNet {
			link = "---"
		}
		sb.WriteString(fmt.Sprintf("  %s %s %s\n", ids[e.From], link, ids[e.To]))
	}

	sb.WriteString("  classDef start fill:" + ColorStart.Value() + "\n")
	sb.WriteString("  classDef target fill:" + ColorTarget.Value() + "\n")
	for _, n := range s.Nodes {
		if n.Color != ColorDefault {
			sb.WriteString(fmt.Sprintf("  class %s %s\n", ids[n.ID], n.Color))
		}
	}

	return sb.String()
}

func mermaidShape(s Shape) (left, right string) {
	switch s {
	case ShapeText:
		return "([", "])"
	case ShapeSquare:
		return "[", "]"
	default:
		return "(", ")"
	}
}

func mermaidEscape(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
