package ofp13

import (
	"encoding/binary"

	"github.com/ofctl/ofcontroller/util"
)

// MatchType enumerates the ofp_match type field. Only Standard is
// supported by this codec; OXM is the payload encoding used inside a
// Standard match, not an alternate top-level match type.
type MatchType uint16

const (
	MatchTypeStandard MatchType = 0
	MatchTypeOXM      MatchType = 1
)

// OxmClass identifies the namespace a MatchField's Field id is drawn
// from. Only OxmClassOpenflowBasic is supported.
type OxmClass uint16

const (
	OxmClassNicira0       OxmClass = 0x0000
	OxmClassNicira1       OxmClass = 0x0001
	OxmClassOpenflowBasic OxmClass = 0x8000
	OxmClassExperimenter  OxmClass = 0xFFFF
)

// OxmField enumerates the OpenFlow Basic match field kinds.
type OxmField uint8

const (
	OxmFieldInPort OxmField = iota
	OxmFieldInPhyPort
	OxmFieldMetadata
	OxmFieldEthDst
	OxmFieldEthSrc
	OxmFieldEthType
	OxmFieldVlanVid
	OxmFieldVlanPcp
	OxmFieldIPDscp
	OxmFieldIPEcn
	OxmFieldIPProto
	OxmFieldIPv4Src
	OxmFieldIPv4Dst
	OxmFieldTCPSrc
	OxmFieldTCPDst
	OxmFieldUDPSrc
	OxmFieldUDPDst
	OxmFieldSCTPSrc
	OxmFieldSCTPDst
	OxmFieldICMPv4Type
	OxmFieldICMPv4Code
	OxmFieldArpOp
	OxmFieldArpSpa
	OxmFieldArpTpa
	OxmFieldArpSha
	OxmFieldArpTha
	OxmFieldIPv6Src
	OxmFieldIPv6Dst
	OxmFieldIPv6Flabel
	OxmFieldICMPv6Type
	OxmFieldICMPv6Code
	OxmFieldIPv6NdTarget
	OxmFieldIPv6NdSll
	OxmFieldIPv6NdTll
	OxmFieldMplsLabel
	OxmFieldMplsTc
	OxmFieldMplsBos
	OxmFieldPbbIsid
	OxmFieldTunnelID
	OxmFieldIPv6Exthdr
	oxmFieldCount
)

type oxmFieldSpec struct {
	name     string
	size     uint16
	newValue func() util.Message
}

var oxmFieldSpecs = map[OxmField]oxmFieldSpec{
	OxmFieldInPort:       {"InPort", 4, func() util.Message { return new(Uint32Value) }},
	OxmFieldInPhyPort:    {"InPhyPort", 4, func() util.Message { return new(Uint32Value) }},
	OxmFieldMetadata:     {"Metadata", 8, func() util.Message { return new(Uint64Value) }},
	OxmFieldEthDst:       {"EthDst", 6, func() util.Message { return new(HardwareAddrValue) }},
	OxmFieldEthSrc:       {"EthSrc", 6, func() util.Message { return new(HardwareAddrValue) }},
	OxmFieldEthType:      {"EthType", 2, func() util.Message { return new(Uint16Value) }},
	OxmFieldVlanVid:      {"VlanVid", 2, func() util.Message { return new(Uint16Value) }},
	OxmFieldVlanPcp:      {"VlanPcp", 1, func() util.Message { return new(Uint8Value) }},
	OxmFieldIPDscp:       {"IPDscp", 1, func() util.Message { return new(Uint8Value) }},
	OxmFieldIPEcn:        {"IPEcn", 1, func() util.Message { return new(Uint8Value) }},
	OxmFieldIPProto:      {"IPProto", 1, func() util.Message { return new(Uint8Value) }},
	OxmFieldIPv4Src:      {"IPv4Src", 4, func() util.Message { return new(IPv4Value) }},
	OxmFieldIPv4Dst:      {"IPv4Dst", 4, func() util.Message { return new(IPv4Value) }},
	OxmFieldTCPSrc:       {"TCPSrc", 2, func() util.Message { return new(Uint16Value) }},
	OxmFieldTCPDst:       {"TCPDst", 2, func() util.Message { return new(Uint16Value) }},
	OxmFieldUDPSrc:       {"UDPSrc", 2, func() util.Message { return new(Uint16Value) }},
	OxmFieldUDPDst:       {"UDPDst", 2, func() util.Message { return new(Uint16Value) }},
	OxmFieldSCTPSrc:      {"SCTPSrc", 2, func() util.Message { return new(Uint16Value) }},
	OxmFieldSCTPDst:      {"SCTPDst", 2, func() util.Message { return new(Uint16Value) }},
	OxmFieldICMPv4Type:   {"ICMPv4Type", 1, func() util.Message { return new(Uint8Value) }},
	OxmFieldICMPv4Code:   {"ICMPv4Code", 1, func() util.Message { return new(Uint8Value) }},
	OxmFieldArpOp:        {"ArpOp", 2, func() util.Message { return new(Uint16Value) }},
	OxmFieldArpSpa:       {"ArpSpa", 4, func() util.Message { return new(IPv4Value) }},
	OxmFieldArpTpa:       {"ArpTpa", 4, func() util.Message { return new(IPv4Value) }},
	OxmFieldArpSha:       {"ArpSha", 6, func() util.Message { return new(HardwareAddrValue) }},
	OxmFieldArpTha:       {"ArpTha", 6, func() util.Message { return new(HardwareAddrValue) }},
	OxmFieldIPv6Src:      {"IPv6Src", 16, func() util.Message { return new(IPv6Value) }},
	OxmFieldIPv6Dst:      {"IPv6Dst", 16, func() util.Message { return new(IPv6Value) }},
	OxmFieldIPv6Flabel:   {"IPv6Flabel", 4, func() util.Message { return new(Uint32Value) }},
	OxmFieldICMPv6Type:   {"ICMPv6Type", 1, func() util.Message { return new(Uint8Value) }},
	OxmFieldICMPv6Code:   {"ICMPv6Code", 1, func() util.Message { return new(Uint8Value) }},
	OxmFieldIPv6NdTarget: {"IPv6NdTarget", 16, func() util.Message { return new(IPv6Value) }},
	OxmFieldIPv6NdSll:    {"IPv6NdSll", 6, func() util.Message { return new(HardwareAddrValue) }},
	OxmFieldIPv6NdTll:    {"IPv6NdTll", 6, func() util.Message { return new(HardwareAddrValue) }},
	OxmFieldMplsLabel:    {"MplsLabel", 4, func() util.Message { return new(Uint32Value) }},
	OxmFieldMplsTc:       {"MplsTc", 1, func() util.Message { return new(Uint8Value) }},
	OxmFieldMplsBos:      {"MplsBos", 1, func() util.Message { return new(Uint8Value) }},
	OxmFieldPbbIsid:      {"PbbIsid", 3, func() util.Message { return new(Uint24Value) }},
	OxmFieldTunnelID:     {"TunnelId", 8, func() util.Message { return new(Uint64Value) }},
	OxmFieldIPv6Exthdr:   {"IPv6ExtHdr", 2, func() util.Message { return new(IPv6ExtHdrFlags) }},
}

// IPv6 extension header pseudo-field flag bits (OxmFieldIPv6Exthdr).
const (
	IPv6ExtHdrNoNext IPv6ExtHdrFlags = 1 << iota
	IPv6ExtHdrESP
	IPv6ExtHdrAuth
	IPv6ExtHdrDest
	IPv6ExtHdrFrag
	IPv6ExtHdrRouter
	IPv6ExtHdrHop
	IPv6ExtHdrUnrep
	IPv6ExtHdrUnseq

	ipv6ExtHdrMask = IPv6ExtHdrNoNext | IPv6ExtHdrESP | IPv6ExtHdrAuth |
		IPv6ExtHdrDest | IPv6ExtHdrFrag | IPv6ExtHdrRouter | IPv6ExtHdrHop |
		IPv6ExtHdrUnrep | IPv6ExtHdrUnseq
)

// IPv6ExtHdrFlags is the bitfield carried by the IPv6ExtHdr pseudo-field.
type IPv6ExtHdrFlags uint16

func (v IPv6ExtHdrFlags) Len() uint16 { return 2 }
func (v IPv6ExtHdrFlags) MarshalBinary() ([]byte, error) {
	data := make([]byte, 2)
	binary.BigEndian.PutUint16(data, uint16(v))
	return data, nil
}
func (v *IPv6ExtHdrFlags) UnmarshalBinary(data []byte) error {
	if len(data) != 2 {
		return &InvalidSliceLengthError{Expected: 2, Actual: len(data), Kind: "IPv6ExtHdrFlags"}
	}
	flags := IPv6ExtHdrFlags(binary.BigEndian.Uint16(data))
	if flags&^ipv6ExtHdrMask != 0 {
		return &UnknownBitsError{Value: uint64(flags &^ ipv6ExtHdrMask), Kind: "IPv6ExtHdrFlags"}
	}
	*v = flags
	return nil
}

// MatchField is a single OXM TLV entry within a Match.
type MatchField struct {
	Class   OxmClass
	Field   OxmField
	HasMask bool
	Value   util.Message
	Mask    util.Message
}

// NewMatchField constructs a basic-class match field from a decoded
// value, with no mask.
func NewMatchField(field OxmField, value util.Message) MatchField {
	return MatchField{Class: OxmClassOpenflowBasic, Field: field, Value: value}
}

// NewMaskedMatchField constructs a basic-class match field carrying a
// mask alongside its value.
func NewMaskedMatchField(field OxmField, value, mask util.Message) MatchField {
	return MatchField{Class: OxmClassOpenflowBasic, Field: field, HasMask: true, Value: value, Mask: mask}
}

// Len returns the encoded size of the field, header included.
func (f MatchField) Len() uint16 {
	n := uint16(4) // oxm header
	if f.Value != nil {
		n += f.Value.Len()
	}
	if f.HasMask && f.Mask != nil {
		n += f.Mask.Len()
	}
	return n
}

// MarshalBinary encodes the OXM TLV header and payload.
func (f MatchField) MarshalBinary() ([]byte, error) {
	var valueLen, maskLen uint16
	var valueBytes, maskBytes []byte
	var err error

	if f.Value != nil {
		valueBytes, err = f.Value.MarshalBinary()
		if err != nil {
			return nil, err
		}
		valueLen = uint16(len(valueBytes))
	}
	if f.HasMask && f.Mask != nil {
		maskBytes, err = f.Mask.MarshalBinary()
		if err != nil {
			return nil, err
		}
		maskLen = uint16(len(maskBytes))
	}

	payloadLen := valueLen + maskLen
	data := make([]byte, 4+payloadLen)

	header := uint32(f.Class) << 16
	header |= uint32(f.Field) << 9
	if f.HasMask {
		header |= 1 << 8
	}
	header |= uint32(payloadLen) & 0xFF
	binary.BigEndian.PutUint32(data[0:4], header)

	copy(data[4:4+valueLen], valueBytes)
	copy(data[4+valueLen:], maskBytes)
	return data, nil
}

// UnmarshalBinary decodes a single OXM TLV from the start of data. It
// does not require data to contain exactly one TLV; trailing bytes are
// ignored by this call (Match.UnmarshalBinary passes the rest of the
// match's declared region, and a SetField action passes its whole body,
// padding included).
func (f *MatchField) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return &CouldNotReadLengthError{Position: 0, Kind: "MatchField"}
	}
	header := binary.BigEndian.Uint32(data[0:4])

	class := OxmClass(header >> 16)
	if class != OxmClassOpenflowBasic {
		return &UnsupportedTypeError{Value: uint64(class), Kind: "MatchField.Class"}
	}

	field := OxmField((header >> 9) & 0x7F)
	hasMask := (header>>8)&0x1 == 1
	length := int(header & 0xFF)

	spec, ok := oxmFieldSpecs[field]
	if !ok {
		return &UnknownEnumError{Value: uint64(field), Kind: "MatchField.Field"}
	}

	wantLen := int(spec.size)
	if hasMask {
		wantLen *= 2
	}
	if length != wantLen {
		return &InvalidSliceLengthError{Expected: wantLen, Actual: length, Kind: "MatchField[" + spec.name + "]"}
	}
	if len(data) < 4+length {
		return &InvalidSliceLengthError{Expected: 4 + length, Actual: len(data), Kind: "MatchField"}
	}

	value := spec.newValue()
	if err := value.UnmarshalBinary(data[4 : 4+int(spec.size)]); err != nil {
		return err
	}

	f.Class = class
	f.Field = field
	f.HasMask = hasMask
	f.Value = value

	if hasMask {
		mask := spec.newValue()
		if err := mask.UnmarshalBinary(data[4+int(spec.size) : 4+length]); err != nil {
			return err
		}
		f.Mask = mask
	} else {
		f.Mask = nil
	}
	return nil
}

// Match is the ofp_match structure: a type tag, declared length and a
// sequence of OXM TLV match fields, padded to a multiple of 8 bytes.
type Match struct {
	Type   MatchType
	Fields []MatchField
}

// NewMatch returns an empty Standard match with no fields.
func NewMatch() *Match {
	return &Match{Type: MatchTypeStandard}
}

// declaredLen returns ofp_match.length: 4 (type+length) plus the sum of
// each field's encoded size, excluding the trailing alignment padding.
func (m *Match) declaredLen() uint16 {
	n := uint16(4)
	for _, f := range m.Fields {
		n += f.Len()
	}
	return n
}

// Len returns the padded, 8-byte-aligned encoded size of the match.
func (m *Match) Len() uint16 {
	l := m.declaredLen()
	return ((l + 7) / 8) * 8
}

// MarshalBinary encodes the match, zero-padded to a multiple of 8 bytes.
func (m *Match) MarshalBinary() ([]byte, error) {
	declared := m.declaredLen()
	padded := ((declared + 7) / 8) * 8
	data := make([]byte, padded)

	binary.BigEndian.PutUint16(data[0:2], uint16(m.Type))
	binary.BigEndian.PutUint16(data[2:4], declared)

	n := 4
	for _, f := range m.Fields {
		b, err := f.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], b)
		n += len(b)
	}
	// Remaining bytes in data are already zero (padding).
	return data, nil
}

// UnmarshalBinary decodes a Match from the start of data. data must
// contain at least the padded encoding of the match; bytes beyond the
// padded size are left untouched and not considered part of the match.
// Following spec.md §4.1's length-prefixed substructure rule, the
// caller is expected to have already sliced data down to (at least) the
// match's padded size.
func (m *Match) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return &CouldNotReadLengthError{Position: 0, Kind: "Match"}
	}

	typ := MatchType(binary.BigEndian.Uint16(data[0:2]))
	if typ != MatchTypeStandard {
		return &UnsupportedTypeError{Value: uint64(typ), Kind: "Match.Type"}
	}
	length := binary.BigEndian.Uint16(data[2:4])
	if int(length) < 4 || int(length) > len(data) {
		return &InvalidSliceLengthError{Expected: int(length), Actual: len(data), Kind: "Match"}
	}

	m.Type = typ
	m.Fields = m.Fields[:0]

	n := 4
	for n < int(length) {
		var field MatchField
		if err := field.UnmarshalBinary(data[n:length]); err != nil {
			return err
		}
		m.Fields = append(m.Fields, field)
		n += int(field.Len())
	}
	return nil
}

// Get returns the first field matching kind, if present.
func (m *Match) Get(field OxmField) (MatchField, bool) {
	for _, f := range m.Fields {
		if f.Field == field {
			return f, true
		}
	}
	return MatchField{}, false
}

// Add appends a field to the match.
func (m *Match) Add(f MatchField) {
	m.Fields = append(m.Fields, f)
}
