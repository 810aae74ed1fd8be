package cmd

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceNet/pkg/netlist"
	"github.com/spf13/cobra"
)

var (
	parseJSON bool
	showNets  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <netlist_file>",
	Short: "Parse a netlist and display its component and net maps",
	Long: `Parse a Protel 2 or KiCad netlist and display the pins of every
component, and optionally the members of every net.

Examples:
  otn parse board.NET
  otn parse --nets filter.net
  otn parse --json board.NET > board.json`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&parseJSON, "json", false,
		"print both maps as JSON")
	parseCmd.Flags().BoolVarP(&showNets, "nets", "n", false,
		"show net members")
}

func runParse(cmd *cobra.Command, args []string) error {
	filename := args[0]

	if verbose {
		fmt.Printf("Parsing netlist: %s\n\n", filename)
	}

	nl, err := netlist.LoadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to parse file: %w", err)
	}

	if parseJSON {
		data, err := nl.ExportJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Format: %s\n\n", nl.Format)

	fmt.Printf("Components (%d):\n", nl.Components.Len())
	for _, ref := range nl.Designators() {
		fmt.Printf("  %-10s %s\n", ref, strings.Join(nl.Components.Pins(ref), " "))
	}

	if showNets {
		fmt.Printf("\nNets (%d):\n", nl.Nets.Len())
		for _, net := range nl.Nets.Names() {
			fmt.Printf("  %-20s %s\n", net, strings.Join(nl.Nets.Pins(net), " "))
		}
	}

	return nil
}
