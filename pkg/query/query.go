// Package query runs a connectivity query against a loaded netlist: build the
// graph, look for paths, collect the neighborhood and select what to show.
package query

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/OpenTraceLab/OpenTraceNet/pkg/netgraph"
	"github.com/OpenTraceLab/OpenTraceNet/pkg/netlist"
	"github.com/OpenTraceLab/OpenTraceNet/pkg/subgraph"
)

// Output formats accepted by Result.Export.
const (
	FormatJSON    = "json"
	FormatDOT     = "dot"
	FormatMermaid = "mermaid"
)

// Result is the outcome of one query.
type Result struct {
	Config       Config
	Paths        [][]string
	PathFound    bool
	Neighborhood []string
	Selection    *subgraph.Selection
}

// Run executes cfg against nl. cfg is validated (and clamped) in place.
// A target without a path is not an error: the result then only shows the
// neighborhood and the target is not highlighted.
func Run(nl *netlist.Netlist, cfg *Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.CheckNodes(nl); err != nil {
		return nil, err
	}

	g := netgraph.Build(nl.Nets, nl.Components, cfg.ExcludedNets, cfg.ExcludedComponents)
	logger.Debug("graph built",
		"nodes", g.Len(),
		"edges", g.EdgeCount(),
		"excluded_nets", len(cfg.ExcludedNets),
		"excluded_components", len(cfg.ExcludedComponents))

	avoid := cfg.Avoidance()
	res := &Result{Config: *cfg}

	target := cfg.Target
	if target != "" {
		res.Paths, res.PathFound = g.FindPaths(cfg.Start, target, cfg.PathCount, avoid)
		if res.PathFound {
			for i, path := range res.Paths {
				logger.Info("path found", "index", i+1, "path", strings.Join(path, " -> "))
			}
		} else {
			logger.Info("no path found", "start", cfg.Start, "target", target)
			target = ""
		}
	}

	res.Neighborhood = g.Neighborhood(cfg.Start, cfg.MaxDepth, avoid)
	logger.Info("neighborhood collected", "depth", cfg.MaxDepth, "nodes", len(res.Neighborhood))

	res.Selection = subgraph.Select(g, subgraph.Request{
		Start:        cfg.Start,
		Target:       target,
		Neighborhood: res.Neighborhood,
		Paths:        res.Paths,
		Describe:     nl.Describe,
	})
	logger.Debug("subgraph selected", "nodes", len(res.Selection.Nodes), "edges", len(res.Selection.Edges))

	return res, nil
}

// ExportJSON encodes the query parameters, the paths, the neighborhood and
// the selected nodes and edges.
func (r *Result) ExportJSON() ([]byte, error) {
	paths := r.Paths
	if paths == nil {
		paths = [][]string{}
	}

	output := struct {
		Parameters   Config          `json:"parameters"`
		PathFound    bool            `json:"path_found"`
		Paths        [][]string      `json:"paths"`
		Neighborhood []string        `json:"neighborhood"`
		Nodes        []subgraph.Node `json:"nodes"`
		Edges        []subgraph.Edge `json:"edges"`
	}{
		Parameters:   r.Config,
		PathFound:    r.PathFound,
		Paths:        paths,
		Neighborhood: r.Neighborhood,
		Nodes:        r.Selection.Nodes,
		Edges:        r.Selection.Edges,
	}

	return json.MarshalIndent(output, "", "  ")
}

// Export encodes the result in one of the output formats.
func (r *Result) Export(format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return r.ExportJSON()
	case FormatDOT:
		return r.Selection.ExportDOT("netlist")
	case FormatMermaid:
		return []byte(r.Selection.ExportMermaid()), nil
	default:
		return nil, fmt.Errorf("query: unknown output format %q", format)
	}
}
