package ofp13

import "encoding/binary"

// PortNo is a well-known reserved port number.
type PortNo uint32

const (
	PortNoMax        PortNo = 0xFFFFFF00
	PortNoInPort     PortNo = 0xFFFFFFF8
	PortNoTable      PortNo = 0xFFFFFFF9
	PortNoNormal     PortNo = 0xFFFFFFFA
	PortNoFlood      PortNo = 0xFFFFFFFB
	PortNoAll        PortNo = 0xFFFFFFFC
	PortNoController PortNo = 0xFFFFFFFD
	PortNoLocal      PortNo = 0xFFFFFFFE
	PortNoAny        PortNo = 0xFFFFFFFF
)

var reservedPortNames = map[PortNo]string{
	PortNoMax:        "Max",
	PortNoInPort:     "InPort",
	PortNoTable:      "Table",
	PortNoNormal:     "Normal",
	PortNoFlood:      "Flood",
	PortNoAll:        "All",
	PortNoController: "Controller",
	PortNoLocal:      "Local",
	PortNoAny:        "Any",
}

// PortNumber is the tagged union described in spec.md §3: either one of
// the reserved PortNo values, or an arbitrary non-zero port number.
// The zero value is never valid; construct one with DecodePortNumber.
type PortNumber struct {
	reserved bool
	value    uint32
}

// ReservedPortNumber constructs a PortNumber wrapping a well-known
// reserved value.
func ReservedPortNumber(p PortNo) PortNumber {
	return PortNumber{reserved: true, value: uint32(p)}
}

// NormalPortNumber constructs a PortNumber wrapping an ordinary,
// non-reserved port. The caller must ensure n is non-zero and not one
// of the reserved values; use DecodePortNumber to validate an
// arbitrary uint32 instead.
func NormalPortNumber(n uint32) PortNumber {
	return PortNumber{reserved: false, value: n}
}

// DecodePortNumber validates and classifies a raw 32-bit port number
// read from the wire. Zero is always illegal.
func DecodePortNumber(n uint32) (PortNumber, error) {
	if n == 0 {
		return PortNumber{}, &IllegalValueError{Value: 0, Kind: "PortNumber"}
	}
	if _, ok := reservedPortNames[PortNo(n)]; ok {
		return ReservedPortNumber(PortNo(n)), nil
	}
	return NormalPortNumber(n), nil
}

// IsReserved reports whether the port number is one of the well-known
// reserved values.
func (p PortNumber) IsReserved() bool { return p.reserved }

// Uint32 returns the raw wire value of the port number.
func (p PortNumber) Uint32() uint32 { return p.value }

// Reserved returns the reserved PortNo and true if the port number is
// reserved.
func (p PortNumber) Reserved() (PortNo, bool) {
	if !p.reserved {
		return 0, false
	}
	return PortNo(p.value), true
}

func (p PortNumber) String() string {
	if p.reserved {
		if name, ok := reservedPortNames[PortNo(p.value)]; ok {
			return name
		}
	}
	return "Port"
}

func encodePortNumber(data []byte, p PortNumber) {
	binary.BigEndian.PutUint32(data, p.value)
}

func decodePortNumberAt(data []byte) (PortNumber, error) {
	return DecodePortNumber(binary.BigEndian.Uint32(data))
}
