package ofp13

import "encoding/binary"

// FlowRemovedReason enumerates ofp_flow_removed_reason.
type FlowRemovedReason uint8

const (
	FlowRemovedReasonIdleTimeout FlowRemovedReason = 0
	FlowRemovedReasonHardTimeout FlowRemovedReason = 1
	FlowRemovedReasonDelete      FlowRemovedReason = 2
	FlowRemovedReasonGroupDelete FlowRemovedReason = 3
)

const flowRemovedFixedLen = 40

// FlowRemoved is sent by a switch when a flow-table entry expires or is
// explicitly removed with the SendFlowRem flag set.
type FlowRemoved struct {
	Cookie      uint64
	Priority    uint16
	Reason      FlowRemovedReason
	TableID     uint8
	DurationSec uint32
	DurationNs  uint32
	IdleTimeout uint16
	HardTimeout uint16
	PacketCount uint64
	ByteCount   uint64
	Match       Match
}

func (f FlowRemoved) Len() uint16 {
	return flowRemovedFixedLen + f.Match.Len()
}

func (f FlowRemoved) MarshalBinary() ([]byte, error) {
	matchBytes, err := f.Match.MarshalBinary()
	if err != nil {
		return nil, err
	}

	data := make([]byte, flowRemovedFixedLen+len(matchBytes))
	binary.BigEndian.PutUint64(data[0:8], f.Cookie)
	binary.BigEndian.PutUint16(data[8:10], f.Priority)
	data[10] = uint8(f.Reason)
	data[11] = f.TableID
	binary.BigEndian.PutUint32(data[12:16], f.DurationSec)
	binary.BigEndian.PutUint32(data[16:20], f.DurationNs)
	binary.BigEndian.PutUint16(data[20:22], f.IdleTimeout)
	binary.BigEndian.PutUint16(data[22:24], f.HardTimeout)
	binary.BigEndian.PutUint64(data[24:32], f.PacketCount)
	binary.BigEndian.PutUint64(data[32:40], f.ByteCount)
	copy(data[flowRemovedFixedLen:], matchBytes)
	return data, nil
}

func (f *FlowRemoved) UnmarshalBinary(data []byte) error {
	if len(data) < flowRemovedFixedLen {
		return &InvalidSliceLengthError{Expected: flowRemovedFixedLen, Actual: len(data), Kind: "FlowRemoved"}
	}
	f.Cookie = binary.BigEndian.Uint64(data[0:8])
	f.Priority = binary.BigEndian.Uint16(data[8:10])

	reason := FlowRemovedReason(data[10])
	switch reason {
	case FlowRemovedReasonIdleTimeout, FlowRemovedReasonHardTimeout,
		FlowRemovedReasonDelete, FlowRemovedReasonGroupDelete:
	default:
		return &UnknownEnumError{Value: uint64(data[10]), Kind: "FlowRemoved.Reason"}
	}
	f.Reason = reason
	f.TableID = data[11]
	f.DurationSec = binary.BigEndian.Uint32(data[12:16])
	f.DurationNs = binary.BigEndian.Uint32(data[16:20])
	f.IdleTimeout = binary.BigEndian.Uint16(data[20:22])
	f.HardTimeout = binary.BigEndian.Uint16(data[22:24])
	f.PacketCount = binary.BigEndian.Uint64(data[24:32])
	f.ByteCount = binary.BigEndian.Uint64(data[32:40])

	rest := data[flowRemovedFixedLen:]
	if err := f.Match.UnmarshalBinary(rest); err != nil {
		return err
	}
	if int(f.Match.Len()) != len(rest) {
		return &InvalidSliceLengthError{Expected: int(f.Match.Len()), Actual: len(rest), Kind: "FlowRemoved.Match"}
	}
	return nil
}
