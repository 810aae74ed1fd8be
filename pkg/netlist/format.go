package netlist

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Format identifies a netlist dialect.
type Format int

const (
	FormatUnknown Format = iota
	FormatProtel2
	FormatKiCad
)

// Marker tokens used for dialect detection.
const (
	protel2Marker = "PROTEL"
	kicadMarker   = "EESchema"
)

func (f Format) String() string {
	switch f {
	case FormatProtel2:
		return "protel2"
	case FormatKiCad:
		return "kicad"
	default:
		return "unknown"
	}
}

// Detect classifies raw netlist text by its marker token. Protel2 wins when
// both markers are present.
func Detect(text string) (Format, error) {
	switch {
	case strings.Contains(text, protel2Marker):
		return FormatProtel2, nil
	case strings.Contains(text, kicadMarker):
		return FormatKiCad, nil
	default:
		return FormatUnknown, ErrUnrecognizedFormat
	}
}

// Dialect parses one netlist format.
type Dialect interface {
	// Parse returns the component map and the net map of text.
	Parse(text string) (components, nets *PinGroups, err error)

	// Describe returns the description of designator, if the text has one.
	Describe(text, designator string) (string, bool)
}

// DialectFor returns the parser for f, or nil for FormatUnknown.
func DialectFor(f Format) Dialect {
	switch f {
	case FormatProtel2:
		return Protel2{}
	case FormatKiCad:
		return KiCad{}
	default:
		return nil
	}
}

// Load detects the dialect of text and parses it.
func Load(text string) (*Netlist, error) {
	format, err := Detect(text)
	if err != nil {
		return nil, err
	}

	components, nets, err := DialectFor(format).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("netlist: %s: %w", format, err)
	}

	return &Netlist{
		Format:     format,
		Components: components,
		Nets:       nets,
		source:     text,
	}, nil
}

// LoadFile reads and parses a netlist file. Files that are not valid UTF-8
// are decoded as ISO 8859-1, which is what older EDA tools write.
func LoadFile(filename string) (*Netlist, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("netlist: failed to read file: %w", err)
	}

	if !utf8.Valid(data) {
		data, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("netlist: failed to decode %s: %w", filename, err)
		}
	}

	nl, err := Load(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return nl, nil
}

// Describe detects the dialect of text and looks up the description of
// designator. Unrecognized text has no descriptions.
func Describe(text, designator string) (string, bool) {
	format, err := Detect(text)
	if err != nil {
		return "", false
	}
	return DialectFor(format).Describe(text, designator)
}

// splitLines splits text into lines, dropping carriage returns.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}
