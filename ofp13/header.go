package ofp13

import (
	"encoding/binary"
	"fmt"
)

// VersionOF13 is the protocol version byte for OpenFlow 1.3.
const VersionOF13 uint8 = 0x04

// HeaderLen is the fixed size, in bytes, of a Header.
const HeaderLen = 8

// Type enumerates the OpenFlow message types this codec recognizes.
type Type uint8

const (
	TypeHello               Type = 0
	TypeError               Type = 1
	TypeEchoRequest         Type = 2
	TypeEchoReply           Type = 3
	TypeExperimenter        Type = 4
	TypeFeaturesRequest     Type = 5
	TypeFeaturesReply       Type = 6
	TypeGetConfigRequest    Type = 7
	TypeGetConfigReply      Type = 8
	TypeSetConfig           Type = 9
	TypePacketIn            Type = 10
	TypeFlowRemoved         Type = 11
	TypePortStatus          Type = 12
	TypePacketOut           Type = 13
	TypeFlowMod             Type = 14
	TypeGroupMod            Type = 15
	TypePortMod             Type = 16
	TypeTableMod            Type = 17
	TypeMultipartRequest    Type = 18
	TypeMultipartReply      Type = 19
	TypeBarrierRequest      Type = 20
	TypeBarrierReply        Type = 21
	TypeQueueGetConfigReq   Type = 22
	TypeQueueGetConfigReply Type = 23
	TypeRoleRequest         Type = 24
	TypeRoleReply           Type = 25
	TypeGetAsyncRequest     Type = 26
	TypeGetAsyncReply       Type = 27
	TypeSetAsync            Type = 28
	TypeMeterMod            Type = 29
)

var typeNames = map[Type]string{
	TypeHello:               "Hello",
	TypeError:               "Error",
	TypeEchoRequest:         "EchoRequest",
	TypeEchoReply:           "EchoReply",
	TypeExperimenter:        "Experimenter",
	TypeFeaturesRequest:     "FeaturesRequest",
	TypeFeaturesReply:       "FeaturesReply",
	TypeGetConfigRequest:    "GetConfigRequest",
	TypeGetConfigReply:      "GetConfigReply",
	TypeSetConfig:           "SetConfig",
	TypePacketIn:            "PacketIn",
	TypeFlowRemoved:         "FlowRemoved",
	TypePortStatus:          "PortStatus",
	TypePacketOut:           "PacketOut",
	TypeFlowMod:             "FlowMod",
	TypeGroupMod:            "GroupMod",
	TypePortMod:             "PortMod",
	TypeTableMod:            "TableMod",
	TypeMultipartRequest:    "MultipartRequest",
	TypeMultipartReply:      "MultipartReply",
	TypeBarrierRequest:      "BarrierRequest",
	TypeBarrierReply:        "BarrierReply",
	TypeQueueGetConfigReq:   "QueueGetConfigRequest",
	TypeQueueGetConfigReply: "QueueGetConfigReply",
	TypeRoleRequest:         "RoleRequest",
	TypeRoleReply:           "RoleReply",
	TypeGetAsyncRequest:     "GetAsyncRequest",
	TypeGetAsyncReply:       "GetAsyncReply",
	TypeSetAsync:            "SetAsync",
	TypeMeterMod:            "MeterMod",
}

// String returns the symbolic name of the type, or "Unknown(n)" for an
// unrecognized value.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint8(t))
}

// Known reports whether t is a recognized message type.
func (t Type) Known() bool {
	_, ok := typeNames[t]
	return ok
}

// Header is the fixed 8-byte preamble of every OpenFlow message.
type Header struct {
	Version uint8
	Type    Type
	Length  uint16
	Xid     uint32
}

// PayloadLen returns the number of bytes following the header, as
// declared by Length.
func (h Header) PayloadLen() int {
	return int(h.Length) - HeaderLen
}

// DecodeHeader decodes the 8-byte OpenFlow header from data. data must
// be exactly HeaderLen bytes.
func DecodeHeader(data []byte) (Header, error) {
	var h Header
	if len(data) != HeaderLen {
		return h, &InvalidSliceLengthError{Expected: HeaderLen, Actual: len(data), Kind: "Header"}
	}

	version := data[0]
	if version != VersionOF13 {
		return h, &UnknownEnumError{Value: uint64(version), Kind: "Header.Version"}
	}

	typ := Type(data[1])
	if !typ.Known() {
		return h, &UnknownEnumError{Value: uint64(data[1]), Kind: "Header.Type"}
	}

	length := binary.BigEndian.Uint16(data[2:4])
	if length < HeaderLen {
		return h, &IllegalValueError{Value: uint64(length), Kind: "Header.Length"}
	}

	h.Version = version
	h.Type = typ
	h.Length = length
	h.Xid = binary.BigEndian.Uint32(data[4:8])
	return h, nil
}

// MarshalBinary encodes the header to exactly HeaderLen bytes.
func (h Header) MarshalBinary() ([]byte, error) {
	data := make([]byte, HeaderLen)
	data[0] = h.Version
	data[1] = uint8(h.Type)
	binary.BigEndian.PutUint16(data[2:4], h.Length)
	binary.BigEndian.PutUint32(data[4:8], h.Xid)
	return data, nil
}
