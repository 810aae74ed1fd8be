package query

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/OpenTraceNet/pkg/netgraph"
	"github.com/OpenTraceLab/OpenTraceNet/pkg/netlist"
)

var (
	// ErrNoStart is returned when a query has no start node.
	ErrNoStart = errors.New("query: start node is required")

	// ErrUnknownNode is returned when the start or target is not part of
	// the loaded netlist.
	ErrUnknownNode = errors.New("query: unknown node")
)

// Config holds the parameters of one connectivity query.
type Config struct {
	// Start is the pin-id, designator or net the search begins at.
	Start string `yaml:"start" json:"start"`
	// Target is the pin-id or designator to find paths to. Empty means
	// neighborhood only.
	Target string `yaml:"target,omitempty" json:"target"`

	MaxDepth  int `yaml:"max_depth" json:"max_depth"`   // neighborhood radius (default: 0)
	PathCount int `yaml:"path_count" json:"path_count"` // paths to collect (default: 1)

	// Graph exclusions
	ExcludedNets       []string `yaml:"excluded_nets,omitempty" json:"excluded_nets"`
	ExcludedComponents []string `yaml:"excluded_components,omitempty" json:"excluded_components"`

	// Instance avoidance, see netgraph.Avoidance
	CategoryPrefix string `yaml:"category_prefix" json:"category_prefix"`
	LegacyPrefix   bool   `yaml:"legacy_prefix,omitempty" json:"legacy_prefix"`
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		MaxDepth:       0,
		PathCount:      1,
		CategoryPrefix: netgraph.DefaultCategoryPrefix,
	}
}

// LoadConfig reads a YAML query file. Fields the file leaves out keep their
// defaults.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("query: failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("query: parse %s: %w", filename, err)
	}
	return cfg, nil
}

// Validate clamps out-of-range bounds and checks the start node is set.
func (c *Config) Validate() error {
	if c.Start == "" {
		return ErrNoStart
	}

	if c.MaxDepth < 0 {
		c.MaxDepth = 0
	}

	if c.PathCount < 1 {
		c.PathCount = 1
	}

	return nil
}

// CheckNodes verifies that the start and target name a pin, designator or
// net of nl.
func (c *Config) CheckNodes(nl *netlist.Netlist) error {
	if !known(nl, c.Start) {
		return fmt.Errorf("%w: start %q", ErrUnknownNode, c.Start)
	}
	if c.Target != "" && !known(nl, c.Target) {
		return fmt.Errorf("%w: target %q", ErrUnknownNode, c.Target)
	}
	return nil
}

// Avoidance returns the search filter described by the config.
func (c *Config) Avoidance() netgraph.Avoidance {
	return netgraph.Avoidance{
		CategoryPrefix: c.CategoryPrefix,
		LegacyPrefix:   c.LegacyPrefix,
	}
}

func known(nl *netlist.Netlist, name string) bool {
	if nl.Components.Has(name) || nl.Nets.Has(name) {
		return true
	}
	designator, _, ok := netlist.SplitPin(name)
	if !ok {
		return false
	}
	for _, pin := range nl.Components.Pins(designator) {
		if pin == name {
			return true
		}
	}
	return false
}
