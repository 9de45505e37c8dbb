package ofp13

import "encoding/binary"

// QueueProp enumerates ofp_queue_properties.
type QueueProp uint16

const (
	QueuePropMinRate     QueueProp = 1
	QueuePropMaxRate     QueueProp = 2
	QueuePropExperimenter QueueProp = 0xFFFF
)

const queuePropHeaderLen = 8

// QueueProperty is a single property attached to a PacketQueue.
type QueueProperty struct {
	Property QueueProp
	Rate     uint16 // MinRate/MaxRate, 0..1000, >1000 means disabled
	Experimenter uint32
	Data         []byte
}

func (p QueueProperty) Len() uint16 {
	switch p.Property {
	case QueuePropMinRate, QueuePropMaxRate:
		return queuePropHeaderLen + 8
	case QueuePropExperimenter:
		return queuePropHeaderLen + 4 + uint16(len(p.Data))
	default:
		return queuePropHeaderLen
	}
}

func (p QueueProperty) MarshalBinary() ([]byte, error) {
	length := p.Len()
	data := make([]byte, length)
	binary.BigEndian.PutUint16(data[0:2], uint16(p.Property))
	binary.BigEndian.PutUint16(data[2:4], length)

	switch p.Property {
	case QueuePropMinRate, QueuePropMaxRate:
		binary.BigEndian.PutUint16(data[8:10], p.Rate)
	case QueuePropExperimenter:
		binary.BigEndian.PutUint32(data[8:12], p.Experimenter)
		copy(data[12:], p.Data)
	}
	return data, nil
}

func (p *QueueProperty) UnmarshalBinary(data []byte) error {
	if len(data) < queuePropHeaderLen {
		return &CouldNotReadLengthError{Position: 0, Kind: "QueueProperty"}
	}
	prop := QueueProp(binary.BigEndian.Uint16(data[0:2]))
	length := binary.BigEndian.Uint16(data[2:4])
	if int(length) < queuePropHeaderLen || int(length) > len(data) {
		return &InvalidSliceLengthError{Expected: int(length), Actual: len(data), Kind: "QueueProperty"}
	}

	p.Property = prop
	body := data[queuePropHeaderLen:length]

	switch prop {
	case QueuePropMinRate, QueuePropMaxRate:
		if len(body) < 2 {
			return &InvalidSliceLengthError{Expected: 2, Actual: len(body), Kind: "QueuePropertyRate"}
		}
		p.Rate = binary.BigEndian.Uint16(body[0:2])
	case QueuePropExperimenter:
		if len(body) < 4 {
			return &InvalidSliceLengthError{Expected: 4, Actual: len(body), Kind: "QueuePropertyExperimenter"}
		}
		p.Experimenter = binary.BigEndian.Uint32(body[0:4])
		p.Data = append([]byte(nil), body[4:]...)
	default:
		return &UnknownEnumError{Value: uint64(prop), Kind: "QueueProperty.Property"}
	}
	return nil
}

func decodeQueueProperties(data []byte) ([]QueueProperty, error) {
	var props []QueueProperty
	n := 0
	for n < len(data) {
		var prop QueueProperty
		if err := prop.UnmarshalBinary(data[n:]); err != nil {
			return nil, err
		}
		props = append(props, prop)
		n += int(binary.BigEndian.Uint16(data[n+2 : n+4]))
	}
	return props, nil
}

func encodeQueueProperties(props []QueueProperty) ([]byte, error) {
	var total uint16
	for _, p := range props {
		total += p.Len()
	}
	data := make([]byte, total)
	n := 0
	for _, p := range props {
		pb, err := p.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], pb)
		n += len(pb)
	}
	return data, nil
}

const packetQueueHeaderLen = 16

// PacketQueue describes a single queue attached to a port.
type PacketQueue struct {
	QueueID    uint32
	Port       uint32
	Properties []QueueProperty
}

func (q PacketQueue) Len() uint16 {
	var propsLen uint16
	for _, p := range q.Properties {
		propsLen += p.Len()
	}
	return packetQueueHeaderLen + propsLen
}

func (q PacketQueue) MarshalBinary() ([]byte, error) {
	propBytes, err := encodeQueueProperties(q.Properties)
	if err != nil {
		return nil, err
	}
	length := packetQueueHeaderLen + len(propBytes)
	data := make([]byte, length)
	binary.BigEndian.PutUint32(data[0:4], q.QueueID)
	binary.BigEndian.PutUint32(data[4:8], q.Port)
	binary.BigEndian.PutUint16(data[8:10], uint16(length))
	copy(data[packetQueueHeaderLen:], propBytes)
	return data, nil
}

func (q *PacketQueue) UnmarshalBinary(data []byte) error {
	if len(data) < packetQueueHeaderLen {
		return &CouldNotReadLengthError{Position: 0, Kind: "PacketQueue"}
	}
	length := binary.BigEndian.Uint16(data[8:10])
	if int(length) < packetQueueHeaderLen || int(length) > len(data) {
		return &InvalidSliceLengthError{Expected: int(length), Actual: len(data), Kind: "PacketQueue"}
	}
	q.QueueID = binary.BigEndian.Uint32(data[0:4])
	q.Port = binary.BigEndian.Uint32(data[4:8])

	props, err := decodeQueueProperties(data[packetQueueHeaderLen:length])
	if err != nil {
		return err
	}
	q.Properties = props
	return nil
}

func decodePacketQueues(data []byte) ([]PacketQueue, error) {
	var queues []PacketQueue
	n := 0
	for n < len(data) {
		var q PacketQueue
		if err := q.UnmarshalBinary(data[n:]); err != nil {
			return nil, err
		}
		queues = append(queues, q)
		n += int(binary.BigEndian.Uint16(data[n+8 : n+10]))
	}
	return queues, nil
}

func encodePacketQueues(queues []PacketQueue) ([]byte, error) {
	var total uint16
	for _, q := range queues {
		total += q.Len()
	}
	data := make([]byte, total)
	n := 0
	for _, q := range queues {
		qb, err := q.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], qb)
		n += len(qb)
	}
	return data, nil
}

const queueGetConfigRequestLen = 8

// QueueGetConfigRequest asks a switch for the queues configured on a port.
type QueueGetConfigRequest struct {
	Port uint32
}

func (QueueGetConfigRequest) Len() uint16 { return queueGetConfigRequestLen }

func (r QueueGetConfigRequest) MarshalBinary() ([]byte, error) {
	data := make([]byte, queueGetConfigRequestLen)
	binary.BigEndian.PutUint32(data[0:4], r.Port)
	return data, nil
}

func (r *QueueGetConfigRequest) UnmarshalBinary(data []byte) error {
	if len(data) != queueGetConfigRequestLen {
		return &InvalidSliceLengthError{Expected: queueGetConfigRequestLen, Actual: len(data), Kind: "QueueGetConfigRequest"}
	}
	r.Port = binary.BigEndian.Uint32(data[0:4])
	return nil
}

const queueGetConfigReplyHeaderLen = 8

// QueueGetConfigReply answers a QueueGetConfigRequest with the port's queues.
type QueueGetConfigReply struct {
	Port   uint32
	Queues []PacketQueue
}

func (r QueueGetConfigReply) Len() uint16 {
	var queuesLen uint16
	for _, q := range r.Queues {
		queuesLen += q.Len()
	}
	return queueGetConfigReplyHeaderLen + queuesLen
}

func (r QueueGetConfigReply) MarshalBinary() ([]byte, error) {
	queueBytes, err := encodePacketQueues(r.Queues)
	if err != nil {
		return nil, err
	}
	data := make([]byte, queueGetConfigReplyHeaderLen+len(queueBytes))
	binary.BigEndian.PutUint32(data[0:4], r.Port)
	copy(data[queueGetConfigReplyHeaderLen:], queueBytes)
	return data, nil
}

func (r *QueueGetConfigReply) UnmarshalBinary(data []byte) error {
	if len(data) < queueGetConfigReplyHeaderLen {
		return &InvalidSliceLengthError{Expected: queueGetConfigReplyHeaderLen, Actual: len(data), Kind: "QueueGetConfigReply"}
	}
	r.Port = binary.BigEndian.Uint32(data[0:4])

	queues, err := decodePacketQueues(data[queueGetConfigReplyHeaderLen:])
	if err != nil {
		return err
	}
	r.Queues = queues
	return nil
}
