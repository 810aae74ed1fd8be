package netgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceNet/pkg/netlist"
)

// divider: R1 -- NET1 -- R2 -- NET2 -- R3
const divider = `PROTEL NETLIST 2.0
(
NET1
R1-1
R2-1
)
(
NET2
R2-2
R3-1
)
`

// fork: U1 drives NA; R1 bridges NA to NB and R2 bridges NA to NC; U2 sits
// on both NB and NC.
const fork = `PROTEL NETLIST 2.0
(
NA
U1-1
R1-1
R2-1
)
(
NB
R1-2
U2-1
)
(
NC
R2-2
U2-2
)
`

func load(t *testing.T, text string) *netlist.Netlist {
	t.Helper()
	nl, err := netlist.Load(text)
	require.NoError(t, err)
	return nl
}

func build(t *testing.T, text string, excludedNets, excludedComponents []string) *Graph {
	t.Helper()
	nl := load(t, text)
	return Build(nl.Nets, nl.Components, excludedNets, excludedComponents)
}

func TestBuild(t *testing.T) {
	g := build(t, divider, nil, nil)

	assert.Equal(t, 9, g.Len())
	assert.Equal(t, 8, g.EdgeCount())

	assert.True(t, g.HasEdge("R1-1", "NET1"))
	assert.True(t, g.HasEdge("NET1", "R2-1"))
	assert.True(t, g.HasEdge("R2-1", "R2"))
	assert.True(t, g.HasEdge("R2", "R2-2"))
	assert.False(t, g.HasEdge("R1", "NET1"))

	kinds := map[string]Kind{"R1-1": KindPin, "NET1": KindNet, "R2": KindDesignator}
	for name, want := range kinds {
		n, ok := g.Node(name)
		require.True(t, ok, name)
		assert.Equal(t, want, n.Kind, name)
	}

	pin, _ := g.Node("R2-2")
	assert.Equal(t, "R2", pin.Designator)
	net, _ := g.Node("NET2")
	assert.Empty(t, net.Designator)
}

func TestBuildEmpty(t *testing.T) {
	g := Build(netlist.NewPinGroups(), netlist.NewPinGroups(), nil, nil)
	assert.Zero(t, g.Len())
	assert.Zero(t, g.EdgeCount())
	assert.Empty(t, g.Islands())
}

func TestBuildDuplicateEdgesCollapse(t *testing.T) {
	nets := netlist.NewPinGroups()
	nets.Add("GND", "R1-2")
	nets.Add("GND", "R1-2")
	components := netlist.NewPinGroups()
	components.Add("R1", "R1-2")
	components.Add("R1", "R1-2")

	g := Build(nets, components, nil, nil)
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 2, g.EdgeCount())
}

func TestBuildExclusions(t *testing.T) {
	t.Run("component", func(t *testing.T) {
		g := build(t, divider, nil, []string{"R2"})
		assert.False(t, g.Has("R2"))
		// R2's pins stay reachable through their nets.
		assert.True(t, g.Has("R2-1"))
		assert.True(t, g.Has("R2-2"))
		assert.False(t, g.HasEdge("R2-1", "R2"))
	})

	t.Run("net", func(t *testing.T) {
		g := build(t, divider, []string{"NET1"}, nil)
		assert.False(t, g.Has("NET1"))
		assert.True(t, g.HasEdge("R1-1", "R1"))
	})

	t.Run("net and component", func(t *testing.T) {
		g := build(t, divider, []string{"NET1"}, []string{"R1"})
		assert.False(t, g.Has("R1-1"))
		assert.False(t, g.Has("R1"))
		assert.True(t, g.Has("R2-1"))
	})
}

func TestNeighbors(t *testing.T) {
	g := build(t, fork, nil, nil)
	na, ok := g.Node("NA")
	require.True(t, ok)

	var names []string
	for _, n := range g.Neighbors(na) {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"U1-1", "R1-1", "R2-1"}, names)
}

func TestIslands(t *testing.T) {
	text := divider + "(\nISO\nX1-1\nX2-1\n)\n"
	g := build(t, text, nil, nil)

	islands := g.Islands()
	require.Len(t, islands, 2)
	assert.Len(t, islands[0], 9)
	assert.ElementsMatch(t, []string{"X1-1", "ISO", "X2-1", "X1", "X2"}, islands[1])
}
