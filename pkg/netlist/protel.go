package netlist

import "strings"

// Protel2 anchors inside a component section.
const (
	protel2CommentAnchor     = "Comment"
	protel2DescriptionAnchor = "DESCRIPTION"
)

// Protel2 parses Protel 2.0 netlists.
//
// Component sections are bracketed and ignored by Parse; only net blocks
// carry connectivity:
//
//	(
//	NET1
//	R1-1 RES 1
//	R2-1 RES 1
//	)
type Protel2 struct{}

// Parse scans net blocks and derives the component map from their pin-ids.
func (Protel2) Parse(text string) (components, nets *PinGroups, err error) {
	nets = NewPinGroups()

	var (
		insideNet bool
		named     bool
		current   string
	)

	for i, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)

		switch {
		case strings.HasPrefix(line, "[") || strings.HasSuffix(line, "]"):
			continue
		case line == "(":
			insideNet = true
		case line == ")":
			insideNet = false
			named = false
			current = ""
		case !insideNet || line == "":
			continue
		case !named:
			current = line
			named = true
			nets.Ensure(current)
		default:
			pin := strings.Fields(line)[0]
			if _, _, ok := SplitPin(pin); !ok {
				return nil, nil, &MalformedRecordError{Line: i + 1, Record: pin}
			}
			nets.Add(current, pin)
		}
	}

	return componentsFromNets(nets), nets, nil
}

// componentsFromNets groups every pin-id of nets by its designator.
func componentsFromNets(nets *PinGroups) *PinGroups {
	components := NewPinGroups()
	for _, net := range nets.Names() {
		for _, pin := range nets.Pins(net) {
			designator, _, _ := SplitPin(pin)
			components.Add(designator, pin)
		}
	}
	return components
}

// Describe finds the component section that lists designator on a line of
// its own and joins its Comment and DESCRIPTION values. Both anchors must be
// present.
func (Protel2) Describe(text, designator string) (string, bool) {
	for _, section := range strings.Split(text, "[") {
		lines := splitLines(section)
		if !hasLine(lines, designator) {
			continue
		}

		comment, hasComment := valueAfter(lines, protel2CommentAnchor)
		description, hasDescription := valueAfter(lines, protel2DescriptionAnchor)
		if !hasComment || !hasDescription {
			return "", false
		}
		return comment + " | " + description, true
	}
	return "", false
}

func hasLine(lines []string, value string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) == value {
			return true
		}
	}
	return false
}

// valueAfter returns the trimmed line following the last line equal to
// anchor.
func valueAfter(lines []string, anchor string) (string, bool) {
	var (
		value string
		found bool
	)
	for i := 0; i+1 < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == anchor {
			value = strings.TrimSpace(lines[i+1])
			found = true
		}
	}
	return value, found
}
