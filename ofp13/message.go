package ofp13

import "github.com/ofctl/ofcontroller/util"

// Payload is the decoded body of an OpenFlow message. Empty-body types
// (Hello, FeaturesRequest, ...) decode to a nil Payload; opaque types
// (Error, EchoRequest/Reply, Experimenter, the multipart pair) decode to
// RawPayload.
type Payload interface {
	util.Message
}

// RawPayload carries a message body this codec does not interpret
// structurally: Error, EchoRequest, EchoReply, Experimenter,
// MultipartRequest, MultipartReply.
type RawPayload struct {
	Data []byte
}

func (p RawPayload) Len() uint16 { return uint16(len(p.Data)) }

func (p RawPayload) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), p.Data...), nil
}

func (p *RawPayload) UnmarshalBinary(data []byte) error {
	p.Data = append([]byte(nil), data...)
	return nil
}

// newPayload returns a zero-value Payload of the concrete type expected
// for typ, or nil for empty-body types. Unrecognized types are the
// caller's responsibility: Decode rejects them before reaching here.
func newPayload(typ Type) Payload {
	switch typ {
	case TypeHello, TypeFeaturesRequest, TypeGetConfigRequest,
		TypeBarrierRequest, TypeBarrierReply, TypeGetAsyncRequest:
		return nil
	case TypeError, TypeEchoRequest, TypeEchoReply, TypeExperimenter,
		TypeMultipartRequest, TypeMultipartReply:
		return &RawPayload{}
	case TypeFeaturesReply:
		return &SwitchFeatures{}
	case TypeGetConfigReply, TypeSetConfig:
		return &SwitchConfig{}
	case TypePacketIn:
		return &PacketIn{}
	case TypeFlowRemoved:
		return &FlowRemoved{}
	case TypePortStatus:
		return &PortStatus{}
	case TypePacketOut:
		return &PacketOut{}
	case TypeFlowMod:
		return &FlowMod{}
	case TypeGroupMod:
		return &GroupMod{}
	case TypePortMod:
		return &PortMod{}
	case TypeTableMod:
		return &TableMod{}
	case TypeQueueGetConfigReq:
		return &QueueGetConfigRequest{}
	case TypeQueueGetConfigReply:
		return &QueueGetConfigReply{}
	case TypeRoleRequest, TypeRoleReply:
		return &Role{}
	case TypeGetAsyncReply, TypeSetAsync:
		return &Async{}
	case TypeMeterMod:
		return &MeterMod{}
	default:
		return &RawPayload{}
	}
}

// DecodePayload decodes the body of a message given its already-decoded
// header. data must be exactly header.PayloadLen() bytes. An empty-body
// type returns a nil Payload and requires data to be empty.
func DecodePayload(h Header, data []byte) (Payload, error) {
	if len(data) != h.PayloadLen() {
		return nil, &InvalidSliceLengthError{Expected: h.PayloadLen(), Actual: len(data), Kind: "Payload." + h.Type.String()}
	}

	p := newPayload(h.Type)
	if p == nil {
		if len(data) != 0 {
			return nil, &InvalidSliceLengthError{Expected: 0, Actual: len(data), Kind: "Payload." + h.Type.String()}
		}
		return nil, nil
	}
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return p, nil
}

// Decode reads one full OpenFlow message (header plus body) from data,
// which must be exactly the number of bytes the header declares.
func Decode(data []byte) (Header, Payload, error) {
	if len(data) < HeaderLen {
		return Header{}, nil, &InvalidSliceLengthError{Expected: HeaderLen, Actual: len(data), Kind: "Message"}
	}
	h, err := DecodeHeader(data[:HeaderLen])
	if err != nil {
		return h, nil, err
	}
	if len(data) != int(h.Length) {
		return h, nil, &InvalidSliceLengthError{Expected: int(h.Length), Actual: len(data), Kind: "Message"}
	}
	p, err := DecodePayload(h, data[HeaderLen:])
	if err != nil {
		return h, nil, err
	}
	return h, p, nil
}

// Encode serializes header and payload into one buffer, recomputing
// header.Length from the payload's encoded size. xid and type are taken
// from h as given; Version is forced to VersionOF13.
func Encode(h Header, p Payload) ([]byte, error) {
	var body []byte
	var err error
	if p != nil {
		body, err = p.MarshalBinary()
		if err != nil {
			return nil, err
		}
	}

	h.Version = VersionOF13
	h.Length = uint16(HeaderLen + len(body))

	headerBytes, err := h.MarshalBinary()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(headerBytes)+len(body))
	out = append(out, headerBytes...)
	out = append(out, body...)
	return out, nil
}

// NewHeader builds a Header for an outbound message of the given type
// and xid; Length is a placeholder recomputed by Encode.
func NewHeader(typ Type, xid uint32) Header {
	return Header{Version: VersionOF13, Type: typ, Length: HeaderLen, Xid: xid}
}

// OutMessage is a (Header, Payload) pair queued on a session's outbound
// channel, whether synthesized by the dispatcher (Hello/EchoReply) or
// submitted by the user handler.
type OutMessage struct {
	Header  Header
	Payload Payload
}
