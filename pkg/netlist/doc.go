// Package netlist reads schematic netlist exports into a canonical pin model.
//
// Two vendor dialects are understood:
//
//   - Protel2: bracketed component sections ("[" ... "]") followed by
//     parenthesised net blocks ("(" NAME, one record per line, ")").
//   - KiCad (EESchema): component groups introduced by "( /", each with a
//     header line naming the designator and one "( pin net )" record per pin.
//
// # Overview
//
// Loading a netlist is a single pass:
//  1. Detect sniffs the dialect from a marker token ("PROTEL" or "EESchema")
//  2. The matching Dialect parses the text into two ordered maps:
//     designator -> pin-ids and net name -> pin-ids
//  3. The raw text is kept so designator descriptions can be looked up later
//
// A pin-id is always "Designator-PinNumber" (for example "R1-2"). Every pin-id
// listed under a net is also listed under exactly one component, and the
// other way around.
//
// # Usage
//
//	nl, err := netlist.LoadFile("board.NET")
//	if err != nil {
//		return err
//	}
//	for _, ref := range nl.Designators() {
//		desc, _ := nl.Describe(ref)
//		fmt.Printf("%s %s\n", ref, desc)
//	}
//
// # Errors
//
// Text carrying neither marker fails with ErrUnrecognizedFormat. A Protel2 net
// record whose first token has no "-" fails with a *MalformedRecordError that
// wraps ErrMalformedRecord. KiCad groups whose header cannot name a designator
// are skipped without error; the format contains such groups legitimately.
//
// Description lookups and other lookups that find nothing report absence with
// a false second return value rather than an error.
package netlist
