package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/OpenTraceLab/OpenTraceNet/pkg/netlist"
	"github.com/OpenTraceLab/OpenTraceNet/pkg/query"
	"github.com/spf13/cobra"
)

var (
	batchFormat    string
	batchOutputDir string
)

var batchCmd = &cobra.Command{
	Use:   "batch <netlist_file> <queries.yaml>",
	Short: "Run several queries against one netlist",
	Long: `Run every query listed under "queries" in a YAML file against the same
netlist. Queries run in parallel; results are printed in file order.

With --output-dir each result is also exported as query-<n>.<format>.

Examples:
  otn batch board.NET probes.yaml
  otn batch board.NET probes.yaml --format dot --output-dir out/`,
	Args: cobra.ExactArgs(2),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", query.FormatJSON,
		"export format: json, dot or mermaid")
	batchCmd.Flags().StringVarP(&batchOutputDir, "output-dir", "o", "",
		"directory for exported results")
}

func runBatch(cmd *cobra.Command, args []string) error {
	nl, err := netlist.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("error loading netlist: %w", err)
	}

	cfgs, err := query.LoadBatch(args[1])
	if err != nil {
		return err
	}

	results, err := query.RunAll(cmd.Context(), nl, cfgs, newLogger())
	if err != nil {
		return err
	}

	if batchOutputDir != "" {
		if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", batchOutputDir, err)
		}
	}

	for i, res := range results {
		fmt.Printf("=== Query %d ===\n", i+1)
		showQueryResult(res)
		fmt.Println()

		if batchOutputDir == "" {
			continue
		}
		data, err := res.Export(batchFormat)
		if err != nil {
			return err
		}
		name := filepath.Join(batchOutputDir, fmt.Sprintf("query-%d.%s", i+1, batchFormat))
		if err := os.WriteFile(name, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		fmt.Printf("Wrote %s\n\n", name)
	}

	return nil
}
