package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/OpenTraceLab/OpenTraceNet/pkg/netlist"
	"github.com/OpenTraceLab/OpenTraceNet/pkg/query"
	"github.com/spf13/cobra"
)

var (
	configFile         string
	startNode          string
	targetNode         string
	maxDepth           int
	pathCount          int
	excludedNets       []string
	excludedComponents []string
	categoryPrefix     string
	legacyPrefix       bool
	outputFormat       string
	outputFile         string
)

var queryCmd = &cobra.Command{
	Use:   "query <netlist_file>",
	Short: "Explore the connectivity around a pin, net or component",
	Long: `Build the connectivity graph of a netlist and select the part of it
around a start node: every node within --depth hops, plus up to --paths
shortest paths to --target when one is given.

Parameters can come from a YAML file (--config); flags given on the command
line override it.

Examples:
  otn query board.NET --start U1-3 --depth 2
  otn query board.NET --start U1-3 --target R7 --paths 3
  otn query board.NET --start U1-3 --exclude-net GND --exclude-net VCC
  otn query board.NET --config probe.yaml --format dot -o probe.dot`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVarP(&configFile, "config", "c", "",
		"YAML query file")
	queryCmd.Flags().StringVarP(&startNode, "start", "s", "",
		"start pin, designator or net")
	queryCmd.Flags().StringVarP(&targetNode, "target", "t", "",
		"target pin or designator")
	queryCmd.Flags().IntVarP(&maxDepth, "depth", "d", 0,
		"neighborhood radius in hops")
	queryCmd.Flags().IntVarP(&pathCount, "paths", "p", 1,
		"number of paths to find")
	queryCmd.Flags().StringSliceVar(&excludedNets, "exclude-net", nil,
		"net left out of the graph (repeatable)")
	queryCmd.Flags().StringSliceVar(&excludedComponents, "exclude-component", nil,
		"component left out of the graph (repeatable)")
	queryCmd.Flags().StringVar(&categoryPrefix, "category-prefix", "Comp",
		"neighbors starting with this prefix are never entered")
	queryCmd.Flags().BoolVar(&legacyPrefix, "legacy-prefix", false,
		"avoid start instances by plain name prefix")
	queryCmd.Flags().StringVarP(&outputFormat, "format", "f", "",
		"export format: json, dot or mermaid")
	queryCmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"write the export to a file instead of stdout")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := queryConfig(cmd)
	if err != nil {
		return err
	}

	nl, err := netlist.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("error loading netlist: %w", err)
	}

	res, err := query.Run(nl, cfg, newLogger())
	if err != nil {
		return err
	}

	if outputFormat != "" {
		return writeExport(res)
	}

	showQueryResult(res)
	return nil
}

// queryConfig merges the config file, if any, with the flags set on the
// command line.
func queryConfig(cmd *cobra.Command) (*query.Config, error) {
	cfg := query.DefaultConfig()
	if configFile != "" {
		loaded, err := query.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("start") {
		cfg.Start = startNode
	}
	if flags.Changed("target") {
		cfg.Target = targetNode
	}
	if flags.Changed("depth") {
		cfg.MaxDepth = maxDepth
	}
	if flags.Changed("paths") {
		cfg.PathCount = pathCount
	}
	if flags.Changed("exclude-net") {
		cfg.ExcludedNets = excludedNets
	}
	if flags.Changed("exclude-component") {
		cfg.ExcludedComponents = excludedComponents
	}
	if flags.Changed("category-prefix") {
		cfg.CategoryPrefix = categoryPrefix
	}
	if flags.Changed("legacy-prefix") {
		cfg.LegacyPrefix = legacyPrefix
	}
	return cfg, nil
}

func writeExport(res *query.Result) error {
	data, err := res.Export(outputFormat)
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Print(string(data))
		if !strings.HasSuffix(string(data), "\n") {
			fmt.Println()
		}
		return nil
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	fmt.Printf("Wrote %s (%d nodes, %d edges)\n", outputFile,
		len(res.Selection.Nodes), len(res.Selection.Edges))
	return nil
}

func showQueryResult(res *query.Result) {
	cfg := res.Config

	fmt.Printf("Start: %s\n", cfg.Start)
	if cfg.Target != "" {
		fmt.Printf("Target: %s\n", cfg.Target)
	}
	fmt.Println()

	if cfg.Target != "" {
		if res.PathFound {
			fmt.Printf("Paths (%d):\n", len(res.Paths))
			for i, path := range res.Paths {
				fmt.Printf("  %d. %s\n", i+1, strings.Join(path, " -> "))
			}
		} else {
			fmt.Printf("No path found from %s to %s\n", cfg.Start, cfg.Target)
		}
		fmt.Println()
	}

	fmt.Printf("Neighborhood (depth %d, %d nodes):\n", cfg.MaxDepth, len(res.Neighborhood))
	fmt.Printf("  %s\n", strings.Join(res.Neighborhood, ", "))
	fmt.Println()

	fmt.Printf("Selection: %d nodes, %d edges\n", len(res.Selection.Nodes), len(res.Selection.Edges))
	if verbose {
		for _, n := range res.Selection.Nodes {
			fmt.Printf("  %-12s %-10s %s\n", n.ID, n.Kind, n.Label)
		}
	}
}
