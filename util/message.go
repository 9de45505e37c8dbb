package util

// Message is implemented by every OpenFlow wire structure in this
// module: headers, match fields, actions, instructions and the fixed
// records of ofp13. It mirrors encoding.BinaryMarshaler/Unmarshaler but
// additionally exposes the encoded length so callers can size buffers
// and compute padding without re-marshaling.
type Message interface {
	// Len returns the number of bytes MarshalBinary would produce.
	Len() uint16
	MarshalBinary() (data []byte, err error)
	UnmarshalBinary(data []byte) error
}
