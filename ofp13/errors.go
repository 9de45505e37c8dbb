package ofp13

import "fmt"

// InvalidSliceLengthError is returned when a fixed-size structure is
// decoded from a slice of the wrong length.
type InvalidSliceLengthError struct {
	Expected int
	Actual   int
	Kind     string
}

func (e *InvalidSliceLengthError) Error() string {
	return fmt.Sprintf("ofp13: expected %d bytes but got %d for %s", e.Expected, e.Actual, e.Kind)
}

// CouldNotReadLengthError is returned when a length-prefixed
// substructure could not be read because the surrounding slice is too
// short to even hold the length field.
type CouldNotReadLengthError struct {
	Position int
	Kind     string
}

func (e *CouldNotReadLengthError) Error() string {
	return fmt.Sprintf("ofp13: could not read length at position %d of %s", e.Position, e.Kind)
}

// UnknownEnumError is returned for a value that does not belong to a
// closed enumeration (protocol version, message type, action kind, ...).
type UnknownEnumError struct {
	Value uint64
	Kind  string
}

func (e *UnknownEnumError) Error() string {
	return fmt.Sprintf("ofp13: encountered unknown value %d for %s", e.Value, e.Kind)
}

// UnknownBitsError is returned when a bitflag field has bits set outside
// the mask defined for that flag set.
type UnknownBitsError struct {
	Value uint64
	Kind  string
}

func (e *UnknownBitsError) Error() string {
	return fmt.Sprintf("ofp13: encountered unknown bits 0x%x for %s", e.Value, e.Kind)
}

// IllegalValueError is returned for a structurally valid but
// semantically forbidden value, e.g. port number 0.
type IllegalValueError struct {
	Value uint64
	Kind  string
}

func (e *IllegalValueError) Error() string {
	return fmt.Sprintf("ofp13: encountered illegal value %d for %s", e.Value, e.Kind)
}

// UnsupportedTypeError is returned for a value this codec deliberately
// does not implement, e.g. a Match of type OXM or an Experimenter
// instruction.
type UnsupportedTypeError struct {
	Value uint64
	Kind  string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("ofp13: unsupported value %d for %s", e.Value, e.Kind)
}
