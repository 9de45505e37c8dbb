package ofp13

import "encoding/binary"

// ActionType enumerates the ofp_action_type values this codec decodes.
type ActionType uint16

const (
	ActionTypeOutput       ActionType = 0
	ActionTypeCopyTtlOut   ActionType = 11
	ActionTypeCopyTtlIn    ActionType = 12
	ActionTypeSetMplsTtl   ActionType = 15
	ActionTypeDecMplsTtl   ActionType = 16
	ActionTypePushVlan     ActionType = 17
	ActionTypePopVlan      ActionType = 18
	ActionTypePushMpls     ActionType = 19
	ActionTypePopMpls      ActionType = 20
	ActionTypeSetQueue     ActionType = 21
	ActionTypeGroup        ActionType = 22
	ActionTypeSetNwTtl     ActionType = 23
	ActionTypeDecNwTtl     ActionType = 24
	ActionTypeSetField     ActionType = 25
	ActionTypePushPbb      ActionType = 26
	ActionTypePopPbb       ActionType = 27
	ActionTypeExperimenter ActionType = 0xFFFF
)

const actionHeaderLen = 4

// Action is the tagged union of the 16 action kinds spec.md §3 lists,
// plus opaque Experimenter actions. Exactly one of the Xxx fields is
// meaningful, as selected by Type.
type Action struct {
	Type ActionType

	Port       PortNumber // Output
	MaxLen     uint16     // Output
	EtherType  uint16     // Push{Vlan,Mpls,Pbb}, PopMpls
	MplsTtl    uint8      // SetMplsTtl
	NwTtl      uint8      // SetNwTtl
	QueueID    uint32     // SetQueue
	GroupID    uint32     // Group
	Field      MatchField // SetField
	Experiment uint32     // Experimenter
	Data       []byte     // Experimenter body
}

// NewOutputAction builds an Output action.
func NewOutputAction(port PortNumber, maxLen uint16) Action {
	return Action{Type: ActionTypeOutput, Port: port, MaxLen: maxLen}
}

// Len returns the encoded, header-included size of the action.
func (a Action) Len() uint16 {
	switch a.Type {
	case ActionTypeOutput:
		return 16
	case ActionTypeCopyTtlOut, ActionTypeCopyTtlIn, ActionTypeDecMplsTtl,
		ActionTypePopVlan, ActionTypeSetQueue, ActionTypeGroup,
		ActionTypeDecNwTtl:
		return 8
	case ActionTypeSetMplsTtl, ActionTypeSetNwTtl:
		return 8
	case ActionTypePushVlan, ActionTypePushMpls, ActionTypePopMpls, ActionTypePushPbb:
		return 8
	case ActionTypeSetField:
		fieldLen := a.Field.Len()
		total := actionHeaderLen + fieldLen
		return ((total + 7) / 8) * 8
	case ActionTypeExperimenter:
		return uint16(8 + len(a.Data))
	default:
		return 8
	}
}

// MarshalBinary encodes the action, header included.
func (a Action) MarshalBinary() ([]byte, error) {
	length := a.Len()
	data := make([]byte, length)
	binary.BigEndian.PutUint16(data[0:2], uint16(a.Type))
	binary.BigEndian.PutUint16(data[2:4], length)

	switch a.Type {
	case ActionTypeOutput:
		encodePortNumber(data[4:8], a.Port)
		binary.BigEndian.PutUint16(data[8:10], a.MaxLen)
		// data[10:16] pad
	case ActionTypeCopyTtlOut, ActionTypeCopyTtlIn, ActionTypeDecMplsTtl,
		ActionTypePopVlan, ActionTypeDecNwTtl:
		// body is all padding
	case ActionTypeSetMplsTtl:
		data[4] = a.MplsTtl
	case ActionTypeSetNwTtl:
		data[4] = a.NwTtl
	case ActionTypePushVlan, ActionTypePushMpls, ActionTypePopMpls, ActionTypePushPbb:
		binary.BigEndian.PutUint16(data[4:6], a.EtherType)
	case ActionTypeSetQueue:
		binary.BigEndian.PutUint32(data[4:8], a.QueueID)
	case ActionTypeGroup:
		binary.BigEndian.PutUint32(data[4:8], a.GroupID)
	case ActionTypeSetField:
		fb, err := a.Field.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[4:], fb)
	case ActionTypeExperimenter:
		binary.BigEndian.PutUint32(data[4:8], a.Experiment)
		copy(data[8:], a.Data)
	}
	return data, nil
}

// UnmarshalBinary decodes a single action from the start of data,
// following spec.md §4.1's length-prefixed substructure rule: it reads
// the declared length non-destructively, then requires data to contain
// at least that many bytes.
func (a *Action) UnmarshalBinary(data []byte) error {
	if len(data) < actionHeaderLen {
		return &CouldNotReadLengthError{Position: 0, Kind: "Action"}
	}
	typ := ActionType(binary.BigEndian.Uint16(data[0:2]))
	length := binary.BigEndian.Uint16(data[2:4])
	if int(length) < actionHeaderLen || int(length) > len(data) {
		return &InvalidSliceLengthError{Expected: int(length), Actual: len(data), Kind: "Action"}
	}
	body := data[actionHeaderLen:length]

	a.Type = typ
	switch typ {
	case ActionTypeOutput:
		if len(body) < 8 {
			return &InvalidSliceLengthError{Expected: 8, Actual: len(body), Kind: "ActionOutput"}
		}
		port, err := decodePortNumberAt(body[0:4])
		if err != nil {
			return err
		}
		a.Port = port
		a.MaxLen = binary.BigEndian.Uint16(body[4:6])
	case ActionTypeCopyTtlOut, ActionTypeCopyTtlIn, ActionTypeDecMplsTtl,
		ActionTypePopVlan, ActionTypeDecNwTtl, ActionTypePopPbb:
		// nothing but padding
	case ActionTypeSetMplsTtl:
		if len(body) < 1 {
			return &InvalidSliceLengthError{Expected: 1, Actual: len(body), Kind: "ActionSetMplsTtl"}
		}
		a.MplsTtl = body[0]
	case ActionTypeSetNwTtl:
		if len(body) < 1 {
			return &InvalidSliceLengthError{Expected: 1, Actual: len(body), Kind: "ActionSetNwTtl"}
		}
		a.NwTtl = body[0]
	case ActionTypePushVlan, ActionTypePushMpls, ActionTypePopMpls, ActionTypePushPbb:
		if len(body) < 2 {
			return &InvalidSliceLengthError{Expected: 2, Actual: len(body), Kind: "ActionPush/Pop"}
		}
		a.EtherType = binary.BigEndian.Uint16(body[0:2])
	case ActionTypeSetQueue:
		if len(body) < 4 {
			return &InvalidSliceLengthError{Expected: 4, Actual: len(body), Kind: "ActionSetQueue"}
		}
		a.QueueID = binary.BigEndian.Uint32(body[0:4])
	case ActionTypeGroup:
		if len(body) < 4 {
			return &InvalidSliceLengthError{Expected: 4, Actual: len(body), Kind: "ActionGroup"}
		}
		a.GroupID = binary.BigEndian.Uint32(body[0:4])
	case ActionTypeSetField:
		var field MatchField
		if err := field.UnmarshalBinary(body); err != nil {
			return err
		}
		a.Field = field
	case ActionTypeExperimenter:
		if len(body) < 4 {
			return &InvalidSliceLengthError{Expected: 4, Actual: len(body), Kind: "ActionExperimenter"}
		}
		a.Experiment = binary.BigEndian.Uint32(body[0:4])
		a.Data = append([]byte(nil), body[4:]...)
	default:
		return &UnknownEnumError{Value: uint64(typ), Kind: "ActionType"}
	}
	return nil
}

// DecodeActions decodes a packed sequence of actions occupying exactly
// the whole of data (as found in PacketOut.Actions or as the body of
// ApplyActions/WriteActions instructions).
func DecodeActions(data []byte) ([]Action, error) {
	var actions []Action
	n := 0
	for n < len(data) {
		if len(data)-n < actionHeaderLen {
			return nil, &InvalidSliceLengthError{Expected: actionHeaderLen, Actual: len(data) - n, Kind: "Action"}
		}
		length := binary.BigEndian.Uint16(data[n+2 : n+4])
		if int(length) < actionHeaderLen || n+int(length) > len(data) {
			return nil, &InvalidSliceLengthError{Expected: int(length), Actual: len(data) - n, Kind: "Action"}
		}
		var a Action
		if err := a.UnmarshalBinary(data[n : n+int(length)]); err != nil {
			return nil, err
		}
		actions = append(actions, a)
		n += int(length)
	}
	return actions, nil
}

// EncodeActions encodes a sequence of actions back to back.
func EncodeActions(actions []Action) ([]byte, error) {
	var total uint16
	for _, a := range actions {
		total += a.Len()
	}
	data := make([]byte, total)
	n := 0
	for _, a := range actions {
		b, err := a.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], b)
		n += len(b)
	}
	return data, nil
}
