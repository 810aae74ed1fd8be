package cmd

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceNet/pkg/netlist"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <netlist_file> <designator>...",
	Short: "Show the description of components",
	Long: `Print the value and description recorded for each designator.

Protel 2 netlists yield "<comment> | <description>", KiCad netlists the
component value.

Examples:
  otn describe board.NET R12
  otn describe filter.net R10 C1 U1`,
	Args: cobra.MinimumNArgs(2),
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	nl, err := netlist.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("error loading netlist: %w", err)
	}

	missing := 0
	for _, designator := range args[1:] {
		desc, ok := nl.Describe(designator)
		if !ok {
			fmt.Printf("%-10s (no description)\n", designator)
			missing++
			continue
		}
		fmt.Printf("%-10s %s\n", designator, desc)
	}

	if missing == len(args)-1 {
		return fmt.Errorf("no description found for %s", strings.Join(args[1:], ", "))
	}
	return nil
}
