package query

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/OpenTraceNet/pkg/netlist"
)

// LoadBatch reads a YAML file holding either one query or a list of them
// under "queries". Every entry starts from DefaultConfig.
func LoadBatch(filename string) ([]*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("query: failed to read config: %w", err)
	}

	var doc struct {
		Queries []yaml.Node `yaml:"queries"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("query: parse %s: %w", filename, err)
	}

	if len(doc.Queries) == 0 {
		cfg := DefaultConfig()
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("query: parse %s: %w", filename, err)
		}
		return []*Config{cfg}, nil
	}

	cfgs := make([]*Config, len(doc.Queries))
	for i := range doc.Queries {
		cfg := DefaultConfig()
		if err := doc.Queries[i].Decode(cfg); err != nil {
			return nil, fmt.Errorf("query: %s: query %d: %w", filename, i+1, err)
		}
		cfgs[i] = cfg
	}
	return cfgs, nil
}

// RunAll runs every query against nl in parallel. Results keep the order of
// cfgs. The first failing query cancels the ones not yet started and its
// error is returned.
func RunAll(ctx context.Context, nl *netlist.Netlist, cfgs []*Config, logger *slog.Logger) ([]*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]*Result, len(cfgs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, cfg := range cfgs {
		i, cfg := i, cfg
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Run(nl, cfg, logger.With("query", i+1))
			if err != nil {
				return fmt.Errorf("query %d: %w", i+1, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
