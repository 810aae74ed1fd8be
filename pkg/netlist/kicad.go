package netlist

import (
	"regexp"
	"strings"
)

// kicadGroupDelimiter introduces each component group.
const kicadGroupDelimiter = "( /"

// kicadRecordPattern matches lines opening with a parenthesis.
var kicadRecordPattern = regexp.MustCompile(`^\s*\(`)

// KiCad parses EESchema netlists.
//
//	( /5C1234AB $noname  R10 10k
//	  (    1 GND )
//	  (    2 VCC )
//	 )
//
// The header names the designator (second-to-last token) and its value
// (last token); each record gives a pin number and a net name.
type KiCad struct{}

// Parse builds both maps directly from the component groups.
func (KiCad) Parse(text string) (components, nets *PinGroups, err error) {
	components = NewPinGroups()
	nets = NewPinGroups()

	for _, group := range kicadGroups(text) {
		lines := splitLines(group)
		designator, _, ok := kicadHeader(lines[0])
		if !ok {
			continue
		}

		components.Ensure(designator)
		for _, line := range lines[1:] {
			number, net, ok := kicadPinRecord(line)
			if !ok {
				continue
			}
			pin := designator + PinSeparator + number
			components.Add(designator, pin)
			nets.Add(net, pin)
		}
	}

	return components, nets, nil
}

// Describe returns the value token from the header of designator's group.
func (KiCad) Describe(text, designator string) (string, bool) {
	for _, group := range kicadGroups(text) {
		ref, value, ok := kicadHeader(splitLines(group)[0])
		if ok && ref == designator {
			return value, true
		}
	}
	return "", false
}

// kicadGroups splits text on the group delimiter. Text before the first
// delimiter is the file preamble and is not a group.
func kicadGroups(text string) []string {
	return strings.Split(text, kicadGroupDelimiter)[1:]
}

// kicadHeader extracts the designator and value from a group header line.
func kicadHeader(line string) (designator, value string, ok bool) {
	if kicadRecordPattern.MatchString(line) {
		return "", "", false
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", "", false
	}
	return fields[len(fields)-2], fields[len(fields)-1], true
}

// kicadPinRecord extracts the pin number and net name from a
// "( number net )" record.
func kicadPinRecord(line string) (number, net string, ok bool) {
	if !kicadRecordPattern.MatchString(line) || !strings.HasSuffix(line, " )") {
		return "", "", false
	}
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return "", "", false
	}
	return fields[len(fields)-3], fields[len(fields)-2], true
}
