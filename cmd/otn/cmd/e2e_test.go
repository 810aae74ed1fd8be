package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func findTestdata(t *testing.T) string {
	t.Helper()
	testdata := "../../../testdata"
	if _, err := os.Stat(testdata); os.IsNotExist(err) {
		t.Fatalf("testdata directory not found")
	}
	return testdata
}

// resetFlags restores every flag global and clears the Changed marks left
// by the previous command, so query flags do not leak between runs.
func resetFlags() {
	verbose = false
	parseJSON = false
	showNets = false

	configFile = ""
	startNode = ""
	targetNode = ""
	maxDepth = 0
	pathCount = 1
	excludedNets = nil
	excludedComponents = nil
	categoryPrefix = "Comp"
	legacyPrefix = false
	outputFormat = ""
	outputFile = ""

	batchFormat = "json"
	batchOutputDir = ""

	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
}

// runCLI executes the root command with args and returns what it printed
// on stdout.
func runCLI(args []string) (string, error) {
	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// Read in background to prevent pipe buffer from blocking on Windows
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		buf.ReadFrom(r)
		close(done)
	}()

	resetFlags()
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	// Restore stdout and wait for reader
	w.Close()
	os.Stdout = old
	<-done

	return buf.String(), err
}

type e2eCase struct {
	name        string
	args        []string
	wantErr     bool
	wantContain []string
	wantMissing []string
}

func runCases(t *testing.T, tests []e2eCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := runCLI(tt.args)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none\nOutput: %s", output)
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v\nOutput: %s", err, output)
				return
			}

			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
			for _, unwanted := range tt.wantMissing {
				if strings.Contains(output, unwanted) {
					t.Errorf("Output contains unexpected string: %q\nGot:\n%s", unwanted, output)
				}
			}
		})
	}
}

// TestInfoE2E tests the info command end-to-end
func TestInfoE2E(t *testing.T) {
	testdata := findTestdata(t)
	divider := filepath.Join(testdata, "divider.NET")
	filter := filepath.Join(testdata, "filter.net")

	runCases(t, []e2eCase{
		{
			name: "protel summary",
			args: []string{"info", divider},
			wantContain: []string{
				"Format: protel2",
				"Components: 3",
				"Nets: 2",
				"Graph nodes: 9",
				"Graph edges: 8",
				"Islands: 1",
				"R: R1, R2, R3",
				"NET1",
			},
		},
		{
			name: "kicad summary",
			args: []string{"info", filter},
			wantContain: []string{
				"Format: kicad",
				"Components: 3",
				"Nets: 3",
				"C: C1",
				"R: R10",
				"U: U1",
				"/OUT",
				"VCC",
			},
		},
		{
			name: "component details",
			args: []string{"info", divider, "R2"},
			wantContain: []string{
				"Component: R2",
				"Description: 4k7 | Resistor",
				"Pins (2):",
				"NET1",
				"NET2",
			},
		},
		{
			name:    "unknown component",
			args:    []string{"info", divider, "Q9"},
			wantErr: true,
		},
		{
			name:    "missing file",
			args:    []string{"info", filepath.Join(testdata, "missing.NET")},
			wantErr: true,
		},
	})
}

// TestDescribeE2E tests the describe command end-to-end
func TestDescribeE2E(t *testing.T) {
	testdata := findTestdata(t)
	divider := filepath.Join(testdata, "divider.NET")
	filter := filepath.Join(testdata, "filter.net")

	runCases(t, []e2eCase{
		{
			name:        "protel comment and description",
			args:        []string{"describe", divider, "R1", "R3"},
			wantContain: []string{"10k | Resistor", "(no description)"},
		},
		{
			name:        "kicad value",
			args:        []string{"describe", filter, "R10", "U1"},
			wantContain: []string{"10k", "LM358"},
		},
		{
			name:    "nothing described",
			args:    []string{"describe", divider, "R3"},
			wantErr: true,
		},
		{
			name:    "missing designator",
			args:    []string{"describe", divider},
			wantErr: true,
		},
	})
}

// TestParseE2E tests the parse command end-to-end
func TestParseE2E(t *testing.T) {
	testdata := findTestdata(t)
	divider := filepath.Join(testdata, "divider.NET")
	filter := filepath.Join(testdata, "filter.net")

	runCases(t, []e2eCase{
		{
			name:        "components only",
			args:        []string{"parse", divider},
			wantContain: []string{"Components (3):", "R2-1 R2-2"},
			wantMissing: []string{"Nets ("},
		},
		{
			name:        "with nets",
			args:        []string{"parse", "--nets", filter},
			wantContain: []string{"Format: kicad", "Nets (3):", "R10-1 C1-2 U1-4"},
		},
		{
			name:        "json",
			args:        []string{"parse", "--json", divider},
			wantContain: []string{`"format": "protel2"`, `"NET2"`, `"R3-1"`},
		},
	})
}

// TestQueryE2E tests the query command end-to-end
func TestQueryE2E(t *testing.T) {
	testdata := findTestdata(t)
	divider := filepath.Join(testdata, "divider.NET")
	filter := filepath.Join(testdata, "filter.net")

	tmp := t.TempDir()
	configPath := filepath.Join(tmp, "probe.yaml")
	config := "start: R1-1\ntarget: R3\nmax_depth: 1\n"
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	dotPath := filepath.Join(tmp, "probe.dot")

	runCases(t, []e2eCase{
		{
			name: "path to designator",
			args: []string{"query", divider, "--start", "R1-1", "--target", "R3", "--depth", "1"},
			wantContain: []string{
				"Paths (1):",
				"1. R1-1 -> NET1 -> R2-1 -> R2 -> R2-2 -> NET2 -> R3-1 -> R3",
				"Neighborhood (depth 1, 2 nodes):",
				"R1-1, NET1",
				"Selection: 8 nodes, 7 edges",
			},
		},
		{
			name: "excluded component blocks the path",
			args: []string{"query", divider, "-s", "R1-1", "-t", "R3", "--exclude-component", "R2", "-d", "2"},
			wantContain: []string{
				"No path found from R1-1 to R3",
				"R1-1, NET1, R2-1",
			},
			wantMissing: []string{"Paths ("},
		},
		{
			name:        "neighborhood of a net",
			args:        []string{"query", filter, "--start", "VCC", "--depth", "2"},
			wantContain: []string{"VCC, U1-8, U1"},
		},
		{
			name: "config file",
			args: []string{"query", divider, "--config", configPath},
			wantContain: []string{
				"Start: R1-1",
				"Target: R3",
				"Neighborhood (depth 1, 2 nodes):",
			},
		},
		{
			name:        "flags override config file",
			args:        []string{"query", divider, "--config", configPath, "--depth", "0"},
			wantContain: []string{"Neighborhood (depth 0, 1 nodes):"},
		},
		{
			name:        "mermaid export",
			args:        []string{"query", divider, "-s", "R3-1", "-t", "R3", "--format", "mermaid"},
			wantContain: []string{"graph LR", `N1["Target R3"]`, "class N0 start"},
		},
		{
			name:        "json export",
			args:        []string{"query", divider, "-s", "R1-1", "-t", "R3", "-f", "json"},
			wantContain: []string{`"path_found": true`, `"parameters"`, `"start": "R1-1"`},
		},
		{
			name:        "dot export to file",
			args:        []string{"query", divider, "-s", "NET1", "-d", "1", "-f", "dot", "-o", dotPath},
			wantContain: []string{"Wrote " + dotPath, "3 nodes, 2 edges"},
		},
		{
			name:    "unknown start",
			args:    []string{"query", divider, "--start", "Q1-1"},
			wantErr: true,
		},
		{
			name:    "missing start",
			args:    []string{"query", divider},
			wantErr: true,
		},
		{
			name:    "unknown export format",
			args:    []string{"query", divider, "-s", "R1-1", "-f", "svg"},
			wantErr: true,
		},
		{
			name:    "missing config file",
			args:    []string{"query", divider, "--config", filepath.Join(tmp, "nope.yaml")},
			wantErr: true,
		},
	})

	data, err := os.ReadFile(dotPath)
	if err != nil {
		t.Fatalf("dot export not written: %v", err)
	}
	if !strings.Contains(string(data), "NET1") {
		t.Errorf("dot export missing NET1:\n%s", data)
	}
}

// TestBatchE2E tests the batch command end-to-end
func TestBatchE2E(t *testing.T) {
	testdata := findTestdata(t)
	divider := filepath.Join(testdata, "divider.NET")

	tmp := t.TempDir()
	queriesPath := filepath.Join(tmp, "probes.yaml")
	queries := `queries:
  - start: R1-1
    target: R3
  - start: NET2
    max_depth: 1
`
	if err := os.WriteFile(queriesPath, []byte(queries), 0644); err != nil {
		t.Fatalf("failed to write queries: %v", err)
	}
	badPath := filepath.Join(tmp, "bad.yaml")
	if err := os.WriteFile(badPath, []byte("queries:\n  - start: X9\n"), 0644); err != nil {
		t.Fatalf("failed to write queries: %v", err)
	}
	outDir := filepath.Join(tmp, "out")

	runCases(t, []e2eCase{
		{
			name: "summaries in file order",
			args: []string{"batch", divider, queriesPath},
			wantContain: []string{
				"=== Query 1 ===",
				"1. R1-1 -> NET1 -> R2-1 -> R2 -> R2-2 -> NET2 -> R3-1 -> R3",
				"=== Query 2 ===",
				"NET2, R2-2, R3-1",
			},
		},
		{
			name:        "mermaid exports",
			args:        []string{"batch", divider, queriesPath, "-f", "mermaid", "-o", outDir},
			wantContain: []string{"query-1.mermaid", "query-2.mermaid"},
		},
		{
			name:    "unknown node",
			args:    []string{"batch", divider, badPath},
			wantErr: true,
		},
	})

	data, err := os.ReadFile(filepath.Join(outDir, "query-2.mermaid"))
	if err != nil {
		t.Fatalf("export not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "graph LR") {
		t.Errorf("unexpected export:\n%s", data)
	}
}
