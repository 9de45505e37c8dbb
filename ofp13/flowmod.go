package ofp13

import "encoding/binary"

// FlowModCommand enumerates ofp_flow_mod_command.
type FlowModCommand uint8

const (
	FlowModCommandAdd          FlowModCommand = 0
	FlowModCommandModify       FlowModCommand = 1
	FlowModCommandModifyStrict FlowModCommand = 2
	FlowModCommandDelete       FlowModCommand = 3
	FlowModCommandDeleteStrict FlowModCommand = 4
)

// FlowModFlags bitflags (ofp_flow_mod_flags).
type FlowModFlags uint16

const (
	FlowModFlagSendFlowRem  FlowModFlags = 1
	FlowModFlagCheckOverlap FlowModFlags = 2
	FlowModFlagResetCounts  FlowModFlags = 4
	FlowModFlagNoPktCounts  FlowModFlags = 8
	FlowModFlagNoBytCounts  FlowModFlags = 16

	flowModFlagsMask = FlowModFlagSendFlowRem | FlowModFlagCheckOverlap |
		FlowModFlagResetCounts | FlowModFlagNoPktCounts | FlowModFlagNoBytCounts
)

const flowModFixedLen = 40

// FlowMod installs, updates or removes a flow-table entry.
type FlowMod struct {
	Cookie       uint64
	CookieMask   uint64
	TableID      uint8
	Command      FlowModCommand
	IdleTimeout  uint16
	HardTimeout  uint16
	Priority     uint16
	BufferID     uint32
	OutPort      PortNumber
	OutGroup     uint32
	Flags        FlowModFlags
	Match        Match
	Instructions []Instruction
}

func (m FlowMod) Len() uint16 {
	return uint16(flowModFixedLen) + m.Match.Len() + instructionsLen(m.Instructions)
}

func instructionsLen(instructions []Instruction) uint16 {
	var n uint16
	for _, i := range instructions {
		n += i.Len()
	}
	return n
}

func (m FlowMod) MarshalBinary() ([]byte, error) {
	matchBytes, err := m.Match.MarshalBinary()
	if err != nil {
		return nil, err
	}
	insBytes, err := EncodeInstructions(m.Instructions)
	if err != nil {
		return nil, err
	}

	data := make([]byte, flowModFixedLen+len(matchBytes)+len(insBytes))
	binary.BigEndian.PutUint64(data[0:8], m.Cookie)
	binary.BigEndian.PutUint64(data[8:16], m.CookieMask)
	data[16] = m.TableID
	data[17] = uint8(m.Command)
	binary.BigEndian.PutUint16(data[18:20], m.IdleTimeout)
	binary.BigEndian.PutUint16(data[20:22], m.HardTimeout)
	binary.BigEndian.PutUint16(data[22:24], m.Priority)
	binary.BigEndian.PutUint32(data[24:28], m.BufferID)
	encodePortNumber(data[28:32], m.OutPort)
	binary.BigEndian.PutUint32(data[32:36], m.OutGroup)
	binary.BigEndian.PutUint16(data[36:38], uint16(m.Flags))

	copy(data[flowModFixedLen:], matchBytes)
	copy(data[flowModFixedLen+len(matchBytes):], insBytes)
	return data, nil
}

func (m *FlowMod) UnmarshalBinary(data []byte) error {
	if len(data) < flowModFixedLen {
		return &InvalidSliceLengthError{Expected: flowModFixedLen, Actual: len(data), Kind: "FlowMod"}
	}
	m.Cookie = binary.BigEndian.Uint64(data[0:8])
	m.CookieMask = binary.BigEndian.Uint64(data[8:16])
	m.TableID = data[16]
	m.Command = FlowModCommand(data[17])
	m.IdleTimeout = binary.BigEndian.Uint16(data[18:20])
	m.HardTimeout = binary.BigEndian.Uint16(data[20:22])
	m.Priority = binary.BigEndian.Uint16(data[22:24])
	m.BufferID = binary.BigEndian.Uint32(data[24:28])

	outPort, err := decodePortNumberAt(data[28:32])
	if err != nil {
		return err
	}
	m.OutPort = outPort
	m.OutGroup = binary.BigEndian.Uint32(data[32:36])

	flags := binary.BigEndian.Uint16(data[36:38])
	if FlowModFlags(flags)&^flowModFlagsMask != 0 {
		return &UnknownBitsError{Value: uint64(FlowModFlags(flags) &^ flowModFlagsMask), Kind: "FlowMod.Flags"}
	}
	m.Flags = FlowModFlags(flags)

	rest := data[flowModFixedLen:]
	if err := m.Match.UnmarshalBinary(rest); err != nil {
		return err
	}
	matchLen := m.Match.Len()
	if int(matchLen) > len(rest) {
		return &InvalidSliceLengthError{Expected: int(matchLen), Actual: len(rest), Kind: "FlowMod.Match"}
	}

	instructions, err := DecodeInstructions(rest[matchLen:])
	if err != nil {
		return err
	}
	m.Instructions = instructions
	return nil
}
