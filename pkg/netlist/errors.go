package netlist

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedFormat is returned when text carries neither the
	// Protel2 nor the KiCad marker token.
	ErrUnrecognizedFormat = errors.New("netlist: unrecognized format")

	// ErrMalformedRecord is wrapped by *MalformedRecordError.
	ErrMalformedRecord = errors.New("netlist: malformed record")
)

// MalformedRecordError reports a net record that cannot be split into a
// designator and a pin number.
type MalformedRecordError struct {
	Line   int    // 1-based line number in the source text
	Record string // offending pin-id token
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %q at line %d: expected Designator-Pin", e.Record, e.Line)
}

func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}
