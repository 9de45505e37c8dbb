package ofp13

import "encoding/binary"

// PortConfig bitflags (ofp_port_config).
type PortConfig uint32

const (
	PortConfigDown       PortConfig = 1 << 0
	PortConfigNoRecv     PortConfig = 1 << 2
	PortConfigNoFwd      PortConfig = 1 << 5
	PortConfigNoPacketIn PortConfig = 1 << 6

	portConfigMask = PortConfigDown | PortConfigNoRecv | PortConfigNoFwd | PortConfigNoPacketIn
)

// PortState bitflags (ofp_port_state).
type PortState uint32

const (
	PortStateLinkDown PortState = 1 << 0
	PortStateBlocked  PortState = 1 << 1
	PortStateLive     PortState = 1 << 2

	portStateMask = PortStateLinkDown | PortStateBlocked | PortStateLive
)

// PortFeature bitflags, used for Curr/Advertised/Supported/Peer.
type PortFeature uint32

const (
	PortFeature10MBHD    PortFeature = 1 << 0
	PortFeature10MBFD    PortFeature = 1 << 1
	PortFeature100MBHD   PortFeature = 1 << 2
	PortFeature100MBFD   PortFeature = 1 << 3
	PortFeature1GBHD     PortFeature = 1 << 4
	PortFeature1GBFD     PortFeature = 1 << 5
	PortFeature10GBFD    PortFeature = 1 << 6
	PortFeature40GBFD    PortFeature = 1 << 7
	PortFeature100GBFD   PortFeature = 1 << 8
	PortFeature1TBFD     PortFeature = 1 << 9
	PortFeatureOther     PortFeature = 1 << 10
	PortFeatureCopper    PortFeature = 1 << 11
	PortFeatureFiber     PortFeature = 1 << 12
	PortFeatureAutoneg   PortFeature = 1 << 13
	PortFeaturePause     PortFeature = 1 << 14
	PortFeaturePauseAsym PortFeature = 1 << 15

	portFeatureMask = PortFeature10MBHD | PortFeature10MBFD | PortFeature100MBHD |
		PortFeature100MBFD | PortFeature1GBHD | PortFeature1GBFD | PortFeature10GBFD |
		PortFeature40GBFD | PortFeature100GBFD | PortFeature1TBFD | PortFeatureOther |
		PortFeatureCopper | PortFeatureFiber | PortFeatureAutoneg | PortFeaturePause |
		PortFeaturePauseAsym
)

// PortLen is the fixed encoded size of a Port record.
const PortLen = 64

// Port describes a switch port, reported in FeaturesReply (indirectly,
// via port enumeration performed by the embedder) and PortStatus.
type Port struct {
	PortNo     uint32
	HWAddr     [6]byte
	Name       string
	Config     PortConfig
	State      PortState
	Curr       PortFeature
	Advertised PortFeature
	Supported  PortFeature
	Peer       PortFeature
	CurrSpeed  uint32
	MaxSpeed   uint32
}

// Len always returns PortLen.
func (p Port) Len() uint16 { return PortLen }

// MarshalBinary encodes the port to exactly PortLen bytes.
func (p Port) MarshalBinary() ([]byte, error) {
	data := make([]byte, PortLen)
	binary.BigEndian.PutUint32(data[0:4], p.PortNo)
	copy(data[8:14], p.HWAddr[:])

	nameBytes := []byte(p.Name)
	if len(nameBytes) > 15 {
		nameBytes = nameBytes[:15]
	}
	copy(data[16:32], nameBytes)

	binary.BigEndian.PutUint32(data[32:36], uint32(p.Config))
	binary.BigEndian.PutUint32(data[36:40], uint32(p.State))
	binary.BigEndian.PutUint32(data[40:44], uint32(p.Curr))
	binary.BigEndian.PutUint32(data[44:48], uint32(p.Advertised))
	binary.BigEndian.PutUint32(data[48:52], uint32(p.Supported))
	binary.BigEndian.PutUint32(data[52:56], uint32(p.Peer))
	binary.BigEndian.PutUint32(data[56:60], p.CurrSpeed)
	binary.BigEndian.PutUint32(data[60:64], p.MaxSpeed)
	return data, nil
}

// UnmarshalBinary decodes a Port from exactly PortLen bytes.
func (p *Port) UnmarshalBinary(data []byte) error {
	if len(data) != PortLen {
		return &InvalidSliceLengthError{Expected: PortLen, Actual: len(data), Kind: "Port"}
	}
	p.PortNo = binary.BigEndian.Uint32(data[0:4])
	copy(p.HWAddr[:], data[8:14])

	nameEnd := 16
	for nameEnd < 32 && data[nameEnd] != 0 {
		nameEnd++
	}
	p.Name = string(data[16:nameEnd])

	config := PortConfig(binary.BigEndian.Uint32(data[32:36]))
	if config&^portConfigMask != 0 {
		return &UnknownBitsError{Value: uint64(config &^ portConfigMask), Kind: "Port.Config"}
	}
	p.Config = config

	state := PortState(binary.BigEndian.Uint32(data[36:40]))
	if state&^portStateMask != 0 {
		return &UnknownBitsError{Value: uint64(state &^ portStateMask), Kind: "Port.State"}
	}
	p.State = state

	curr := PortFeature(binary.BigEndian.Uint32(data[40:44]))
	if curr&^portFeatureMask != 0 {
		return &UnknownBitsError{Value: uint64(curr &^ portFeatureMask), Kind: "Port.Curr"}
	}
	p.Curr = curr

	advertised := PortFeature(binary.BigEndian.Uint32(data[44:48]))
	if advertised&^portFeatureMask != 0 {
		return &UnknownBitsError{Value: uint64(advertised &^ portFeatureMask), Kind: "Port.Advertised"}
	}
	p.Advertised = advertised

	supported := PortFeature(binary.BigEndian.Uint32(data[48:52]))
	if supported&^portFeatureMask != 0 {
		return &UnknownBitsError{Value: uint64(supported &^ portFeatureMask), Kind: "Port.Supported"}
	}
	p.Supported = supported

	peer := PortFeature(binary.BigEndian.Uint32(data[52:56]))
	if peer&^portFeatureMask != 0 {
		return &UnknownBitsError{Value: uint64(peer &^ portFeatureMask), Kind: "Port.Peer"}
	}
	p.Peer = peer

	p.CurrSpeed = binary.BigEndian.Uint32(data[56:60])
	p.MaxSpeed = binary.BigEndian.Uint32(data[60:64])
	return nil
}
