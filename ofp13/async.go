package ofp13

import "encoding/binary"

const asyncLen = 24

// Async is the payload of GetAsyncReply/SetAsync: three pairs of
// (master-role mask, slave-role mask) for PacketIn, PortStatus and
// FlowRemoved asynchronous messages.
type Async struct {
	PacketInMask    [2]uint32
	PortStatusMask  [2]uint32
	FlowRemovedMask [2]uint32
}

func (Async) Len() uint16 { return asyncLen }

func (a Async) MarshalBinary() ([]byte, error) {
	data := make([]byte, asyncLen)
	binary.BigEndian.PutUint32(data[0:4], a.PacketInMask[0])
	binary.BigEndian.PutUint32(data[4:8], a.PacketInMask[1])
	binary.BigEndian.PutUint32(data[8:12], a.PortStatusMask[0])
	binary.BigEndian.PutUint32(data[12:16], a.PortStatusMask[1])
	binary.BigEndian.PutUint32(data[16:20], a.FlowRemovedMask[0])
	binary.BigEndian.PutUint32(data[20:24], a.FlowRemovedMask[1])
	return data, nil
}

func (a *Async) UnmarshalBinary(data []byte) error {
	if len(data) != asyncLen {
		return &InvalidSliceLengthError{Expected: asyncLen, Actual: len(data), Kind: "Async"}
	}
	a.PacketInMask[0] = binary.BigEndian.Uint32(data[0:4])
	a.PacketInMask[1] = binary.BigEndian.Uint32(data[4:8])
	a.PortStatusMask[0] = binary.BigEndian.Uint32(data[8:12])
	a.PortStatusMask[1] = binary.BigEndian.Uint32(data[12:16])
	a.FlowRemovedMask[0] = binary.BigEndian.Uint32(data[16:20])
	a.FlowRemovedMask[1] = binary.BigEndian.Uint32(data[20:24])
	return nil
}
