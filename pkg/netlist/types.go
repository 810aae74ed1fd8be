package netlist

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// PinSeparator joins a designator and a pin number into a pin-id.
const PinSeparator = "-"

// PinGroups maps a name (net name or designator) to an ordered list of
// pin-ids. Names keep the order in which they were first added.
type PinGroups struct {
	names []string
	pins  map[string][]string
}

// NewPinGroups creates an empty group map.
func NewPinGroups() *PinGroups {
	return &PinGroups{pins: make(map[string][]string)}
}

// Ensure creates an empty entry for name if none exists.
func (g *PinGroups) Ensure(name string) {
	if _, ok := g.pins[name]; ok {
		return
	}
	g.names = append(g.names, name)
	g.pins[name] = []string{}
}

// Add appends pin to the entry for name, creating the entry if needed.
func (g *PinGroups) Add(name, pin string) {
	g.Ensure(name)
	g.pins[name] = append(g.pins[name], pin)
}

// Has reports whether name has an entry.
func (g *PinGroups) Has(name string) bool {
	_, ok := g.pins[name]
	return ok
}

// Pins returns the pin-ids of name in insertion order.
// The returned slice must not be modified.
func (g *PinGroups) Pins(name string) []string {
	return g.pins[name]
}

// Names returns all names in first-seen order.
func (g *PinGroups) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Len returns the number of entries.
func (g *PinGroups) Len() int {
	return len(g.names)
}

// MarshalJSON encodes the groups as a JSON object with keys in first-seen order.
func (g *PinGroups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range g.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(g.pins[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Netlist is the parsed form of one netlist file.
type Netlist struct {
	Format     Format
	Components *PinGroups // designator -> pin-ids
	Nets       *PinGroups // net name -> pin-ids

	source string
}

// Describe returns the human-readable description of a designator.
func (nl *Netlist) Describe(designator string) (string, bool) {
	d := DialectFor(nl.Format)
	if d == nil {
		return "", false
	}
	return d.Describe(nl.source, designator)
}

// Designators returns all designators in natural order, so "R2" sorts
// before "R10".
func (nl *Netlist) Designators() []string {
	refs := nl.Components.Names()
	SortNatural(refs)
	return refs
}

// PinNumbers returns the pin numbers of a designator in natural order.
func (nl *Netlist) PinNumbers(designator string) []string {
	var numbers []string
	for _, pin := range nl.Components.Pins(designator) {
		_, number, ok := SplitPin(pin)
		if ok {
			numbers = append(numbers, number)
		}
	}
	SortNatural(numbers)
	return numbers
}

// NetsBySize returns net names ordered by member count, largest first.
// Nets of equal size keep their parse order.
func (nl *Netlist) NetsBySize() []string {
	names := nl.Nets.Names()
	sort.SliceStable(names, func(i, j int) bool {
		return len(nl.Nets.Pins(names[i])) > len(nl.Nets.Pins(names[j]))
	})
	return names
}

// ExportJSON dumps both maps for inspection.
func (nl *Netlist) ExportJSON() ([]byte, error) {
	output := struct {
		Format     string     `json:"format"`
		Components *PinGroups `json:"components"`
		Nets       *PinGroups `json:"nets"`
	}{
		Format:     nl.Format.String(),
		Components: nl.Components,
		Nets:       nl.Nets,
	}
	return json.MarshalIndent(output, "", "  ")
}

// SplitPin splits a pin-id at its first separator.
func SplitPin(pin string) (designator, number string, ok bool) {
	designator, number, ok = strings.Cut(pin, PinSeparator)
	if !ok || designator == "" {
		return "", "", false
	}
	return designator, number, true
}

// SortNatural sorts names so that runs of digits compare numerically.
func SortNatural(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return naturalLess(names[i], names[j])
	})
}

func naturalLess(a, b string) bool {
	ca, cb := naturalChunks(a), naturalChunks(b)
	for i := 0; i < len(ca) && i < len(cb); i++ {
		if ca[i] == cb[i] {
			continue
		}
		na, errA := strconv.Atoi(ca[i])
		nb, errB := strconv.Atoi(cb[i])
		if errA == nil && errB == nil && na != nb {
			return na < nb
		}
		return ca[i] < cb[i]
	}
	return len(ca) < len(cb)
}

// naturalChunks splits s into alternating digit and non-digit runs.
func naturalChunks(s string) []string {
	var chunks []string
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || isDigit(s[i]) != isDigit(s[i-1]) {
			chunks = append(chunks, s[start:i])
			start = i
		}
	}
	return chunks
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
