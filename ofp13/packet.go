package ofp13

import "encoding/binary"

// PacketInReason enumerates ofp_packet_in_reason.
type PacketInReason uint8

const (
	PacketInReasonNoMatch    PacketInReason = 0
	PacketInReasonAction     PacketInReason = 1
	PacketInReasonInvalidTTL PacketInReason = 2
)

const packetInFixedLen = 16

// BufferIDNone marks an absent buffer, i.e. the full packet is carried
// inline rather than held in the switch's buffer cache.
const BufferIDNone uint32 = 0xFFFFFFFF

// PacketIn carries a packet that missed the flow tables (or was
// explicitly punted to the controller) from switch to controller.
type PacketIn struct {
	BufferID uint32
	TotalLen uint16
	Reason   PacketInReason
	TableID  uint8
	Cookie   uint64
	Match    Match
	Data     []byte
}

func (p PacketIn) Len() uint16 {
	return packetInFixedLen + p.Match.Len() + 2 + uint16(len(p.Data))
}

func (p PacketIn) MarshalBinary() ([]byte, error) {
	matchBytes, err := p.Match.MarshalBinary()
	if err != nil {
		return nil, err
	}

	data := make([]byte, packetInFixedLen+len(matchBytes)+2+len(p.Data))
	binary.BigEndian.PutUint32(data[0:4], p.BufferID)
	binary.BigEndian.PutUint16(data[4:6], p.TotalLen)
	data[6] = uint8(p.Reason)
	data[7] = p.TableID
	binary.BigEndian.PutUint64(data[8:16], p.Cookie)

	n := packetInFixedLen
	copy(data[n:], matchBytes)
	n += len(matchBytes)
	// data[n:n+2] is the reserved 2-byte pad.
	n += 2
	copy(data[n:], p.Data)
	return data, nil
}

func (p *PacketIn) UnmarshalBinary(data []byte) error {
	if len(data) < packetInFixedLen {
		return &InvalidSliceLengthError{Expected: packetInFixedLen, Actual: len(data), Kind: "PacketIn"}
	}
	p.BufferID = binary.BigEndian.Uint32(data[0:4])
	p.TotalLen = binary.BigEndian.Uint16(data[4:6])

	reason := PacketInReason(data[6])
	switch reason {
	case PacketInReasonNoMatch, PacketInReasonAction, PacketInReasonInvalidTTL:
	default:
		return &UnknownEnumError{Value: uint64(data[6]), Kind: "PacketIn.Reason"}
	}
	p.Reason = reason
	p.TableID = data[7]
	p.Cookie = binary.BigEndian.Uint64(data[8:16])

	rest := data[packetInFixedLen:]
	if err := p.Match.UnmarshalBinary(rest); err != nil {
		return err
	}
	matchLen := int(p.Match.Len())
	if matchLen+2 > len(rest) {
		return &InvalidSliceLengthError{Expected: matchLen + 2, Actual: len(rest), Kind: "PacketIn"}
	}
	p.Data = append([]byte(nil), rest[matchLen+2:]...)
	return nil
}

const packetOutFixedLen = 16

// PacketOut is sent by the controller to inject or forward a packet.
type PacketOut struct {
	BufferID uint32
	InPort   PortNumber
	Actions  []Action
	Data     []byte
}

func (p PacketOut) Len() uint16 {
	return packetOutFixedLen + actionsLen(p.Actions) + uint16(len(p.Data))
}

func actionsLen(actions []Action) uint16 {
	var n uint16
	for _, a := range actions {
		n += a.Len()
	}
	return n
}

func (p PacketOut) MarshalBinary() ([]byte, error) {
	actionBytes, err := EncodeActions(p.Actions)
	if err != nil {
		return nil, err
	}

	data := make([]byte, packetOutFixedLen+len(actionBytes)+len(p.Data))
	binary.BigEndian.PutUint32(data[0:4], p.BufferID)
	encodePortNumber(data[4:8], p.InPort)
	binary.BigEndian.PutUint16(data[8:10], uint16(len(actionBytes)))
	// data[10:16] is the reserved 6-byte pad.
	copy(data[packetOutFixedLen:], actionBytes)
	copy(data[packetOutFixedLen+len(actionBytes):], p.Data)
	return data, nil
}

func (p *PacketOut) UnmarshalBinary(data []byte) error {
	if len(data) < packetOutFixedLen {
		return &InvalidSliceLengthError{Expected: packetOutFixedLen, Actual: len(data), Kind: "PacketOut"}
	}
	p.BufferID = binary.BigEndian.Uint32(data[0:4])

	inPort, err := decodePortNumberAt(data[4:8])
	if err != nil {
		return err
	}
	p.InPort = inPort

	actionsLen := int(binary.BigEndian.Uint16(data[8:10]))
	rest := data[packetOutFixedLen:]
	if actionsLen > len(rest) {
		return &InvalidSliceLengthError{Expected: actionsLen, Actual: len(rest), Kind: "PacketOut.ActionsLen"}
	}

	actions, err := DecodeActions(rest[:actionsLen])
	if err != nil {
		return err
	}
	p.Actions = actions
	p.Data = append([]byte(nil), rest[actionsLen:]...)
	return nil
}
