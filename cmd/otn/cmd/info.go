package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/OpenTraceLab/OpenTraceNet/pkg/netgraph"
	"github.com/OpenTraceLab/OpenTraceNet/pkg/netlist"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <netlist_file> [designator]",
	Short: "Show netlist information",
	Long: `Display information about a Protel 2 or KiCad netlist.

Without designator argument: shows netlist summary
With designator argument: shows the pins of that component and their nets`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	nl, err := netlist.LoadFile(filename)
	if err != nil {
		return fmt.Errorf("error loading netlist: %w", err)
	}

	if len(args) >= 2 {
		return showComponentDetails(nl, args[1])
	}

	showNetlistSummary(nl, filename)
	return nil
}

func showNetlistSummary(nl *netlist.Netlist, filename string) {
	g := netgraph.Build(nl.Nets, nl.Components, nil, nil)

	fmt.Printf("Netlist: %s\n", filename)
	fmt.Printf("Format: %s\n", nl.Format)
	fmt.Println()

	// Statistics
	fmt.Println("Statistics:")
	fmt.Printf("  Components: %d\n", nl.Components.Len())
	fmt.Printf("  Nets: %d\n", nl.Nets.Len())
	fmt.Printf("  Graph nodes: %d\n", g.Len())
	fmt.Printf("  Graph edges: %d\n", g.EdgeCount())
	fmt.Printf("  Islands: %d\n", len(g.Islands()))
	fmt.Println()

	designators := nl.Designators()
	if len(designators) > 0 {
		fmt.Println("Components:")

		// Group by reference prefix
		byPrefix := make(map[string][]string)
		for _, ref := range designators {
			prefix := refPrefix(ref)
			byPrefix[prefix] = append(byPrefix[prefix], ref)
		}

		var prefixes []string
		for p := range byPrefix {
			prefixes = append(prefixes, p)
		}
		sort.Strings(prefixes)

		for _, prefix := range prefixes {
			fmt.Printf("  %s: %s\n", prefix, strings.Join(byPrefix[prefix], ", "))
		}
		fmt.Println()
	}

	nets := nl.NetsBySize()
	if len(nets) > 0 {
		fmt.Println("Nets (largest first):")
		for _, net := range nets {
			fmt.Printf("  %-30s %4d pins\n", net, len(nl.Nets.Pins(net)))
		}
	}
}

func showComponentDetails(nl *netlist.Netlist, designator string) error {
	if !nl.Components.Has(designator) {
		return fmt.Errorf("component %s not found", designator)
	}

	fmt.Printf("Component: %s\n", designator)
	if desc, ok := nl.Describe(designator); ok {
		fmt.Printf("Description: %s\n", desc)
	}
	fmt.Println()

	netOf := make(map[string]string)
	for _, net := range nl.Nets.Names() {
		for _, pin := range nl.Nets.Pins(net) {
			netOf[pin] = net
		}
	}

	pins := nl.PinNumbers(designator)
	fmt.Printf("Pins (%d):\n", len(pins))
	for _, number := range pins {
		pin := designator + netlist.PinSeparator + number
		net := netOf[pin]
		if net == "" {
			net = "(unconnected)"
		}
		fmt.Printf("  %-6s %s\n", number, net)
	}
	return nil
}

func refPrefix(ref string) string {
	// Extract prefix (letters before numbers)
	for i, c := range ref {
		if c >= '0' && c <= '9' {
			return ref[:i]
		}
	}
	return ref
}
