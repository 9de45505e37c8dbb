package ofp13

import "encoding/binary"

// Capability bitflags reported in SwitchFeatures.
type Capability uint32

const (
	CapabilityFlowStats  Capability = 1
	CapabilityTableStats Capability = 2
	CapabilityPortStats  Capability = 4
	CapabilityGroupStats Capability = 8
	CapabilityIPReasm    Capability = 32
	CapabilityQueueStats Capability = 64
	CapabilityPortBlocked Capability = 256

	capabilityMask = CapabilityFlowStats | CapabilityTableStats |
		CapabilityPortStats | CapabilityGroupStats | CapabilityIPReasm |
		CapabilityQueueStats | CapabilityPortBlocked
)

// SwitchFeatures is the FeaturesReply payload.
type SwitchFeatures struct {
	DatapathID   uint64
	NBuffers     uint32
	NTables      uint8
	AuxID        uint8
	Capabilities Capability
}

// Len always returns 24.
func (SwitchFeatures) Len() uint16 { return 24 }

func (f SwitchFeatures) MarshalBinary() ([]byte, error) {
	data := make([]byte, 24)
	binary.BigEndian.PutUint64(data[0:8], f.DatapathID)
	binary.BigEndian.PutUint32(data[8:12], f.NBuffers)
	data[12] = f.NTables
	data[13] = f.AuxID
	binary.BigEndian.PutUint32(data[16:20], uint32(f.Capabilities))
	return data, nil
}

func (f *SwitchFeatures) UnmarshalBinary(data []byte) error {
	if len(data) != 24 {
		return &InvalidSliceLengthError{Expected: 24, Actual: len(data), Kind: "SwitchFeatures"}
	}
	f.DatapathID = binary.BigEndian.Uint64(data[0:8])
	f.NBuffers = binary.BigEndian.Uint32(data[8:12])
	f.NTables = data[12]
	f.AuxID = data[13]

	caps := binary.BigEndian.Uint32(data[16:20])
	if caps&^uint32(capabilityMask) != 0 {
		return &UnknownBitsError{Value: uint64(caps &^ uint32(capabilityMask)), Kind: "SwitchFeatures.Capabilities"}
	}
	f.Capabilities = Capability(caps)
	return nil
}

// FragHandling bitflags reported in SwitchConfig.Flags.
type FragHandling uint16

const (
	FragNormal FragHandling = 0
	FragDrop   FragHandling = 1
	FragReasm  FragHandling = 2
	fragMask   FragHandling = 3
)

// SwitchConfig is the GetConfigReply/SetConfig payload.
type SwitchConfig struct {
	Flags       FragHandling
	MissSendLen uint16
}

func (SwitchConfig) Len() uint16 { return 4 }

func (c SwitchConfig) MarshalBinary() ([]byte, error) {
	data := make([]byte, 4)
	binary.BigEndian.PutUint16(data[0:2], uint16(c.Flags))
	binary.BigEndian.PutUint16(data[2:4], c.MissSendLen)
	return data, nil
}

func (c *SwitchConfig) UnmarshalBinary(data []byte) error {
	if len(data) != 4 {
		return &InvalidSliceLengthError{Expected: 4, Actual: len(data), Kind: "SwitchConfig"}
	}
	flags := binary.BigEndian.Uint16(data[0:2])
	if FragHandling(flags)&^fragMask != 0 {
		return &UnknownBitsError{Value: uint64(FragHandling(flags) &^ fragMask), Kind: "SwitchConfig.Flags"}
	}
	c.Flags = FragHandling(flags)
	c.MissSendLen = binary.BigEndian.Uint16(data[2:4])
	return nil
}
