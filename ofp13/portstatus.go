package ofp13

import "encoding/binary"

// PortStatusReason enumerates ofp_port_reason.
type PortStatusReason uint8

const (
	PortStatusReasonAdd    PortStatusReason = 0
	PortStatusReasonDelete PortStatusReason = 1
	PortStatusReasonModify PortStatusReason = 2
)

const portStatusLen = 8 + PortLen

// PortStatus notifies the controller of a port configuration or state
// change.
type PortStatus struct {
	Reason PortStatusReason
	Port   Port
}

func (PortStatus) Len() uint16 { return portStatusLen }

func (s PortStatus) MarshalBinary() ([]byte, error) {
	portBytes, err := s.Port.MarshalBinary()
	if err != nil {
		return nil, err
	}
	data := make([]byte, portStatusLen)
	data[0] = uint8(s.Reason)
	copy(data[8:], portBytes)
	return data, nil
}

func (s *PortStatus) UnmarshalBinary(data []byte) error {
	if len(data) != portStatusLen {
		return &InvalidSliceLengthError{Expected: portStatusLen, Actual: len(data), Kind: "PortStatus"}
	}
	reason := PortStatusReason(data[0])
	switch reason {
	case PortStatusReasonAdd, PortStatusReasonDelete, PortStatusReasonModify:
	default:
		return &UnknownEnumError{Value: uint64(data[0]), Kind: "PortStatus.Reason"}
	}
	s.Reason = reason
	return s.Port.UnmarshalBinary(data[8:])
}

const portModLen = 32

// PortMod requests a change to a port's configuration.
type PortMod struct {
	PortNo    uint32
	HWAddr    [6]byte
	Config    PortConfig
	Mask      PortConfig
	Advertise PortFeature
}

func (PortMod) Len() uint16 { return portModLen }

func (m PortMod) MarshalBinary() ([]byte, error) {
	data := make([]byte, portModLen)
	binary.BigEndian.PutUint32(data[0:4], m.PortNo)
	copy(data[8:14], m.HWAddr[:])
	binary.BigEndian.PutUint32(data[16:20], uint32(m.Config))
	binary.BigEndian.PutUint32(data[20:24], uint32(m.Mask))
	binary.BigEndian.PutUint32(data[24:28], uint32(m.Advertise))
	return data, nil
}

func (m *PortMod) UnmarshalBinary(data []byte) error {
	if len(data) != portModLen {
		return &InvalidSliceLengthError{Expected: portModLen, Actual: len(data), Kind: "PortMod"}
	}
	m.PortNo = binary.BigEndian.Uint32(data[0:4])
	copy(m.HWAddr[:], data[8:14])

	config := PortConfig(binary.BigEndian.Uint32(data[16:20]))
	if config&^portConfigMask != 0 {
		return &UnknownBitsError{Value: uint64(config &^ portConfigMask), Kind: "PortMod.Config"}
	}
	m.Config = config

	mask := PortConfig(binary.BigEndian.Uint32(data[20:24]))
	if mask&^portConfigMask != 0 {
		return &UnknownBitsError{Value: uint64(mask &^ portConfigMask), Kind: "PortMod.Mask"}
	}
	m.Mask = mask

	advertise := PortFeature(binary.BigEndian.Uint32(data[24:28]))
	if advertise&^portFeatureMask != 0 {
		return &UnknownBitsError{Value: uint64(advertise &^ portFeatureMask), Kind: "PortMod.Advertise"}
	}
	m.Advertise = advertise
	return nil
}
