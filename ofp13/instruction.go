package ofp13

import "encoding/binary"

// InstructionType enumerates the ofp_instruction_type values.
type InstructionType uint16

const (
	InstructionTypeGotoTable      InstructionType = 1
	InstructionTypeWriteMetadata  InstructionType = 2
	InstructionTypeWriteActions   InstructionType = 3
	InstructionTypeApplyActions   InstructionType = 4
	InstructionTypeClearActions   InstructionType = 5
	InstructionTypeMeter          InstructionType = 6
	InstructionTypeExperimenter   InstructionType = 0xFFFF
)

const instructionHeaderLen = 4

// Instruction is the tagged union of the 6 instruction kinds spec.md §3
// lists. Experimenter instructions are rejected at decode time (per
// spec.md §4.1/§7) rather than represented here.
type Instruction struct {
	Type InstructionType

	TableID      uint8    // GotoTable
	Metadata     uint64   // WriteMetadata
	MetadataMask uint64   // WriteMetadata
	Actions      []Action // WriteActions, ApplyActions, ClearActions
	MeterID      uint32   // Meter
}

// Len returns the encoded, header-included size of the instruction.
func (i Instruction) Len() uint16 {
	switch i.Type {
	case InstructionTypeGotoTable:
		return 8
	case InstructionTypeWriteMetadata:
		return 24
	case InstructionTypeWriteActions, InstructionTypeApplyActions, InstructionTypeClearActions:
		var actionsLen uint16
		for _, a := range i.Actions {
			actionsLen += a.Len()
		}
		return instructionHeaderLen + 4 + actionsLen
	case InstructionTypeMeter:
		return 8
	default:
		return instructionHeaderLen
	}
}

// MarshalBinary encodes the instruction, header included.
func (i Instruction) MarshalBinary() ([]byte, error) {
	length := i.Len()
	data := make([]byte, length)
	binary.BigEndian.PutUint16(data[0:2], uint16(i.Type))
	binary.BigEndian.PutUint16(data[2:4], length)

	switch i.Type {
	case InstructionTypeGotoTable:
		data[4] = i.TableID
	case InstructionTypeWriteMetadata:
		binary.BigEndian.PutUint64(data[8:16], i.Metadata)
		binary.BigEndian.PutUint64(data[16:24], i.MetadataMask)
	case InstructionTypeWriteActions, InstructionTypeApplyActions, InstructionTypeClearActions:
		// data[4:8] is the reserved pad(4).
		ab, err := EncodeActions(i.Actions)
		if err != nil {
			return nil, err
		}
		copy(data[8:], ab)
	case InstructionTypeMeter:
		binary.BigEndian.PutUint32(data[4:8], i.MeterID)
	}
	return data, nil
}

// UnmarshalBinary decodes a single instruction from the start of data,
// following the length-prefixed substructure rule of spec.md §4.1.
func (i *Instruction) UnmarshalBinary(data []byte) error {
	if len(data) < instructionHeaderLen {
		return &CouldNotReadLengthError{Position: 0, Kind: "Instruction"}
	}
	typ := InstructionType(binary.BigEndian.Uint16(data[0:2]))
	length := binary.BigEndian.Uint16(data[2:4])
	if int(length) < instructionHeaderLen || int(length) > len(data) {
		return &InvalidSliceLengthError{Expected: int(length), Actual: len(data), Kind: "Instruction"}
	}
	body := data[instructionHeaderLen:length]

	i.Type = typ
	switch typ {
	case InstructionTypeGotoTable:
		if len(body) < 1 {
			return &InvalidSliceLengthError{Expected: 1, Actual: len(body), Kind: "InstructionGotoTable"}
		}
		i.TableID = body[0]
	case InstructionTypeWriteMetadata:
		if len(body) < 20 {
			return &InvalidSliceLengthError{Expected: 20, Actual: len(body), Kind: "InstructionWriteMetadata"}
		}
		i.Metadata = binary.BigEndian.Uint64(body[4:12])
		i.MetadataMask = binary.BigEndian.Uint64(body[12:20])
	case InstructionTypeWriteActions, InstructionTypeApplyActions, InstructionTypeClearActions:
		if len(body) < 4 {
			return &InvalidSliceLengthError{Expected: 4, Actual: len(body), Kind: "InstructionActions"}
		}
		actions, err := DecodeActions(body[4:])
		if err != nil {
			return err
		}
		i.Actions = actions
	case InstructionTypeMeter:
		if len(body) < 4 {
			return &InvalidSliceLengthError{Expected: 4, Actual: len(body), Kind: "InstructionMeter"}
		}
		i.MeterID = binary.BigEndian.Uint32(body[0:4])
	case InstructionTypeExperimenter:
		return &UnsupportedTypeError{Value: uint64(typ), Kind: "InstructionType"}
	default:
		return &UnknownEnumError{Value: uint64(typ), Kind: "InstructionType"}
	}
	return nil
}

// DecodeInstructions decodes a packed sequence of instructions
// occupying exactly the whole of data.
func DecodeInstructions(data []byte) ([]Instruction, error) {
	var instructions []Instruction
	n := 0
	for n < len(data) {
		if len(data)-n < instructionHeaderLen {
			return nil, &InvalidSliceLengthError{Expected: instructionHeaderLen, Actual: len(data) - n, Kind: "Instruction"}
		}
		length := binary.BigEndian.Uint16(data[n+2 : n+4])
		if int(length) < instructionHeaderLen || n+int(length) > len(data) {
			return nil, &InvalidSliceLengthError{Expected: int(length), Actual: len(data) - n, Kind: "Instruction"}
		}
		var ins Instruction
		if err := ins.UnmarshalBinary(data[n : n+int(length)]); err != nil {
			return nil, err
		}
		instructions = append(instructions, ins)
		n += int(length)
	}
	return instructions, nil
}

// EncodeInstructions encodes a sequence of instructions back to back.
func EncodeInstructions(instructions []Instruction) ([]byte, error) {
	var total uint16
	for _, ins := range instructions {
		total += ins.Len()
	}
	data := make([]byte, total)
	n := 0
	for _, ins := range instructions {
		b, err := ins.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], b)
		n += len(b)
	}
	return data, nil
}
