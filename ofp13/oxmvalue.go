package ofp13

import (
	"encoding/binary"
	"net"
)

// Uint8Value is an OXM payload holding a single byte (IP DSCP/ECN,
// ICMP type/code, MPLS TC, VLAN PCP, ...).
type Uint8Value uint8

func (v Uint8Value) Len() uint16 { return 1 }
func (v Uint8Value) MarshalBinary() ([]byte, error) {
	return []byte{uint8(v)}, nil
}
func (v *Uint8Value) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return &InvalidSliceLengthError{Expected: 1, Actual: len(data), Kind: "Uint8Value"}
	}
	*v = Uint8Value(data[0])
	return nil
}

// Uint16Value is an OXM payload holding a big-endian uint16 (EthType,
// VlanID, TCP/UDP/SCTP ports, ARP opcode, ...).
type Uint16Value uint16

func (v Uint16Value) Len() uint16 { return 2 }
func (v Uint16Value) MarshalBinary() ([]byte, error) {
	data := make([]byte, 2)
	binary.BigEndian.PutUint16(data, uint16(v))
	return data, nil
}
func (v *Uint16Value) UnmarshalBinary(data []byte) error {
	if len(data) != 2 {
		return &InvalidSliceLengthError{Expected: 2, Actual: len(data), Kind: "Uint16Value"}
	}
	*v = Uint16Value(binary.BigEndian.Uint16(data))
	return nil
}

// Uint32Value is an OXM payload holding a big-endian uint32 (InPort,
// InPhyPort, MPLS label, IPv6 flow label).
type Uint32Value uint32

func (v Uint32Value) Len() uint16 { return 4 }
func (v Uint32Value) MarshalBinary() ([]byte, error) {
	data := make([]byte, 4)
	binary.BigEndian.PutUint32(data, uint32(v))
	return data, nil
}
func (v *Uint32Value) UnmarshalBinary(data []byte) error {
	if len(data) != 4 {
		return &InvalidSliceLengthError{Expected: 4, Actual: len(data), Kind: "Uint32Value"}
	}
	*v = Uint32Value(binary.BigEndian.Uint32(data))
	return nil
}

// Uint64Value is an OXM payload holding a big-endian uint64 (Metadata,
// TunnelId).
type Uint64Value uint64

func (v Uint64Value) Len() uint16 { return 8 }
func (v Uint64Value) MarshalBinary() ([]byte, error) {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, uint64(v))
	return data, nil
}
func (v *Uint64Value) UnmarshalBinary(data []byte) error {
	if len(data) != 8 {
		return &InvalidSliceLengthError{Expected: 8, Actual: len(data), Kind: "Uint64Value"}
	}
	*v = Uint64Value(binary.BigEndian.Uint64(data))
	return nil
}

// Uint24Value is a 3-byte big-endian integer OXM payload (PBB I-SID).
type Uint24Value uint32

func (v Uint24Value) Len() uint16 { return 3 }
func (v Uint24Value) MarshalBinary() ([]byte, error) {
	data := make([]byte, 3)
	data[0] = byte(v >> 16)
	data[1] = byte(v >> 8)
	data[2] = byte(v)
	return data, nil
}
func (v *Uint24Value) UnmarshalBinary(data []byte) error {
	if len(data) != 3 {
		return &InvalidSliceLengthError{Expected: 3, Actual: len(data), Kind: "Uint24Value"}
	}
	*v = Uint24Value(uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2]))
	return nil
}

// HardwareAddrValue is a 6-byte MAC address OXM payload (EthSrc, EthDst,
// ArpSha, ArpTha).
type HardwareAddrValue net.HardwareAddr

func (v HardwareAddrValue) Len() uint16 { return 6 }
func (v HardwareAddrValue) MarshalBinary() ([]byte, error) {
	data := make([]byte, 6)
	copy(data, v)
	return data, nil
}
func (v *HardwareAddrValue) UnmarshalBinary(data []byte) error {
	if len(data) != 6 {
		return &InvalidSliceLengthError{Expected: 6, Actual: len(data), Kind: "HardwareAddrValue"}
	}
	*v = make(HardwareAddrValue, 6)
	copy(*v, data)
	return nil
}

// IPv4Value is a 4-byte IPv4 address OXM payload.
type IPv4Value net.IP

func (v IPv4Value) Len() uint16 { return 4 }
func (v IPv4Value) MarshalBinary() ([]byte, error) {
	data := make([]byte, 4)
	ip := net.IP(v).To4()
	if ip != nil {
		copy(data, ip)
	}
	return data, nil
}
func (v *IPv4Value) UnmarshalBinary(data []byte) error {
	if len(data) != 4 {
		return &InvalidSliceLengthError{Expected: 4, Actual: len(data), Kind: "IPv4Value"}
	}
	ip := make(net.IP, 4)
	copy(ip, data)
	*v = IPv4Value(ip)
	return nil
}

// IPv6Value is a 16-byte IPv6 address OXM payload.
type IPv6Value net.IP

func (v IPv6Value) Len() uint16 { return 16 }
func (v IPv6Value) MarshalBinary() ([]byte, error) {
	data := make([]byte, 16)
	ip := net.IP(v).To16()
	if ip != nil {
		copy(data, ip)
	}
	return data, nil
}
func (v *IPv6Value) UnmarshalBinary(data []byte) error {
	if len(data) != 16 {
		return &InvalidSliceLengthError{Expected: 16, Actual: len(data), Kind: "IPv6Value"}
	}
	ip := make(net.IP, 16)
	copy(ip, data)
	*v = IPv6Value(ip)
	return nil
}
