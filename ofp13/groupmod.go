package ofp13

import "encoding/binary"

// GroupModCommand enumerates ofp_group_mod_command.
type GroupModCommand uint16

const (
	GroupModCommandAdd    GroupModCommand = 0
	GroupModCommandModify GroupModCommand = 1
	GroupModCommandDelete GroupModCommand = 2
)

// GroupType enumerates ofp_group_type.
type GroupType uint8

const (
	GroupTypeAll          GroupType = 0
	GroupTypeSelect       GroupType = 1
	GroupTypeIndirect     GroupType = 2
	GroupTypeFastFailover GroupType = 3
)

const groupModFixedLen = 8

// GroupMod creates, modifies or deletes a group-table entry.
type GroupMod struct {
	Command GroupModCommand
	Type    GroupType
	GroupID uint32
	Buckets []Bucket
}

func (g GroupMod) Len() uint16 {
	return groupModFixedLen + bucketsLen(g.Buckets)
}

func bucketsLen(buckets []Bucket) uint16 {
	var n uint16
	for _, b := range buckets {
		n += b.Len()
	}
	return n
}

func (g GroupMod) MarshalBinary() ([]byte, error) {
	bucketBytes, err := encodeBuckets(g.Buckets)
	if err != nil {
		return nil, err
	}

	data := make([]byte, groupModFixedLen+len(bucketBytes))
	binary.BigEndian.PutUint16(data[0:2], uint16(g.Command))
	data[2] = uint8(g.Type)
	binary.BigEndian.PutUint32(data[4:8], g.GroupID)
	copy(data[groupModFixedLen:], bucketBytes)
	return data, nil
}

func (g *GroupMod) UnmarshalBinary(data []byte) error {
	if len(data) < groupModFixedLen {
		return &InvalidSliceLengthError{Expected: groupModFixedLen, Actual: len(data), Kind: "GroupMod"}
	}
	g.Command = GroupModCommand(binary.BigEndian.Uint16(data[0:2]))
	g.Type = GroupType(data[2])
	g.GroupID = binary.BigEndian.Uint32(data[4:8])

	buckets, err := decodeBuckets(data[groupModFixedLen:])
	if err != nil {
		return err
	}
	g.Buckets = buckets
	return nil
}

const bucketHeaderLen = 16

// Bucket is a set of actions within a group-table entry, used for
// multipath/failover group types.
type Bucket struct {
	Weight     uint16
	WatchPort  PortNumber
	WatchGroup uint32
	Actions    []Action
}

func (b Bucket) Len() uint16 {
	return bucketHeaderLen + actionsLen(b.Actions)
}

func (b Bucket) MarshalBinary() ([]byte, error) {
	length := b.Len()
	actionBytes, err := EncodeActions(b.Actions)
	if err != nil {
		return nil, err
	}

	data := make([]byte, length)
	binary.BigEndian.PutUint16(data[0:2], length)
	binary.BigEndian.PutUint16(data[2:4], b.Weight)
	encodePortNumber(data[4:8], b.WatchPort)
	binary.BigEndian.PutUint32(data[8:12], b.WatchGroup)
	copy(data[bucketHeaderLen:], actionBytes)
	return data, nil
}

func (b *Bucket) UnmarshalBinary(data []byte) error {
	if len(data) < bucketHeaderLen {
		return &CouldNotReadLengthError{Position: 0, Kind: "Bucket"}
	}
	length := binary.BigEndian.Uint16(data[0:2])
	if int(length) < bucketHeaderLen || int(length) > len(data) {
		return &InvalidSliceLengthError{Expected: int(length), Actual: len(data), Kind: "Bucket"}
	}
	b.Weight = binary.BigEndian.Uint16(data[2:4])

	watchPort, err := decodePortNumberAt(data[4:8])
	if err != nil {
		return err
	}
	b.WatchPort = watchPort
	b.WatchGroup = binary.BigEndian.Uint32(data[8:12])

	actions, err := DecodeActions(data[bucketHeaderLen:length])
	if err != nil {
		return err
	}
	b.Actions = actions
	return nil
}

func encodeBuckets(buckets []Bucket) ([]byte, error) {
	var total uint16
	for _, b := range buckets {
		total += b.Len()
	}
	data := make([]byte, total)
	n := 0
	for _, b := range buckets {
		bb, err := b.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], bb)
		n += len(bb)
	}
	return data, nil
}

func decodeBuckets(data []byte) ([]Bucket, error) {
	var buckets []Bucket
	n := 0
	for n < len(data) {
		var b Bucket
		if err := b.UnmarshalBinary(data[n:]); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
		n += int(b.Len())
	}
	return buckets, nil
}
