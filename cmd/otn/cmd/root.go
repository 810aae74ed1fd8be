package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "otn",
	Short: "OpenTraceNet - netlist connectivity explorer",
	Long: `OpenTraceNet (otn) loads Protel 2 and KiCad netlists, builds the
pin/net/component connectivity graph and answers questions about it:
which pins sit around a given pin, and how two parts are connected.

Examples:
  otn info board.NET                            # Summary of a netlist
  otn describe board.NET R12                    # Value and description of R12
  otn parse --json board.net                    # Dump the parsed maps
  otn query board.NET --start U1-3 --depth 2    # Neighborhood of a pin
  otn query board.NET --start U1-3 --target R7  # Paths from a pin to a part`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger returns the logger handed to the query engine. Logs go to stderr
// so they never mix with exported graph data.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
