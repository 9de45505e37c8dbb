package ofp13

import "encoding/binary"

// MeterModCommand enumerates ofp_meter_mod_command.
type MeterModCommand uint16

const (
	MeterModCommandAdd    MeterModCommand = 1
	MeterModCommandModify MeterModCommand = 2
	MeterModCommandDelete MeterModCommand = 3
)

// MeterModFlags bitflags (ofp_meter_flags).
type MeterModFlags uint16

const (
	MeterModFlagKbps  MeterModFlags = 1
	MeterModFlagPktps MeterModFlags = 2
	MeterModFlagBurst MeterModFlags = 4
	MeterModFlagStats MeterModFlags = 8

	meterModFlagsMask = MeterModFlagKbps | MeterModFlagPktps | MeterModFlagBurst | MeterModFlagStats
)

// MeterBandType enumerates ofp_meter_band_type.
type MeterBandType uint16

const (
	MeterBandTypeDrop         MeterBandType = 1
	MeterBandTypeDscpRemark   MeterBandType = 2
	MeterBandTypeExperimenter MeterBandType = 0xFFFF
)

const meterModFixedLen = 8
const meterBandHeaderLen = 12

// MeterBand is a single rate-limit band within a MeterMod.
type MeterBand struct {
	Type  MeterBandType
	Rate  uint32
	Burst uint32

	PrecLevel  uint8  // DscpRemark
	Experiment uint32 // Experimenter
	Data       []byte // Experimenter
}

func (b MeterBand) Len() uint16 {
	switch b.Type {
	case MeterBandTypeExperimenter:
		return meterBandHeaderLen + 4 + uint16(len(b.Data))
	default:
		return meterBandHeaderLen + 4
	}
}

func (b MeterBand) MarshalBinary() ([]byte, error) {
	length := b.Len()
	data := make([]byte, length)
	binary.BigEndian.PutUint16(data[0:2], uint16(b.Type))
	binary.BigEndian.PutUint16(data[2:4], length)
	binary.BigEndian.PutUint32(data[4:8], b.Rate)
	binary.BigEndian.PutUint32(data[8:12], b.Burst)

	switch b.Type {
	case MeterBandTypeDscpRemark:
		data[12] = b.PrecLevel
	case MeterBandTypeExperimenter:
		binary.BigEndian.PutUint32(data[12:16], b.Experiment)
		copy(data[16:], b.Data)
	}
	return data, nil
}

func (b *MeterBand) UnmarshalBinary(data []byte) error {
	if len(data) < meterBandHeaderLen {
		return &CouldNotReadLengthError{Position: 0, Kind: "MeterBand"}
	}
	typ := MeterBandType(binary.BigEndian.Uint16(data[0:2]))
	length := binary.BigEndian.Uint16(data[2:4])
	if int(length) < meterBandHeaderLen || int(length) > len(data) {
		return &InvalidSliceLengthError{Expected: int(length), Actual: len(data), Kind: "MeterBand"}
	}

	b.Type = typ
	b.Rate = binary.BigEndian.Uint32(data[4:8])
	b.Burst = binary.BigEndian.Uint32(data[8:12])
	body := data[meterBandHeaderLen:length]

	switch typ {
	case MeterBandTypeDrop:
		// body is padding only.
	case MeterBandTypeDscpRemark:
		if len(body) < 1 {
			return &InvalidSliceLengthError{Expected: 1, Actual: len(body), Kind: "MeterBandDscpRemark"}
		}
		b.PrecLevel = body[0]
	case MeterBandTypeExperimenter:
		if len(body) < 4 {
			return &InvalidSliceLengthError{Expected: 4, Actual: len(body), Kind: "MeterBandExperimenter"}
		}
		b.Experiment = binary.BigEndian.Uint32(body[0:4])
		b.Data = append([]byte(nil), body[4:]...)
	default:
		return &UnknownEnumError{Value: uint64(typ), Kind: "MeterBand.Type"}
	}
	return nil
}

func decodeMeterBands(data []byte) ([]MeterBand, error) {
	var bands []MeterBand
	n := 0
	for n < len(data) {
		var band MeterBand
		if err := band.UnmarshalBinary(data[n:]); err != nil {
			return nil, err
		}
		bands = append(bands, band)
		n += int(binary.BigEndian.Uint16(data[n+2 : n+4]))
	}
	return bands, nil
}

func encodeMeterBands(bands []MeterBand) ([]byte, error) {
	var total uint16
	for _, b := range bands {
		total += b.Len()
	}
	data := make([]byte, total)
	n := 0
	for _, b := range bands {
		bb, err := b.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], bb)
		n += len(bb)
	}
	return data, nil
}

// MeterMod creates, modifies or deletes a meter.
type MeterMod struct {
	Command MeterModCommand
	Flags   MeterModFlags
	MeterID uint32
	Bands   []MeterBand
}

func (m MeterMod) Len() uint16 {
	var bandsLen uint16
	for _, b := range m.Bands {
		bandsLen += b.Len()
	}
	return meterModFixedLen + bandsLen
}

func (m MeterMod) MarshalBinary() ([]byte, error) {
	bandBytes, err := encodeMeterBands(m.Bands)
	if err != nil {
		return nil, err
	}

	data := make([]byte, meterModFixedLen+len(bandBytes))
	binary.BigEndian.PutUint16(data[0:2], uint16(m.Command))
	binary.BigEndian.PutUint16(data[2:4], uint16(m.Flags))
	binary.BigEndian.PutUint32(data[4:8], m.MeterID)
	copy(data[meterModFixedLen:], bandBytes)
	return data, nil
}

func (m *MeterMod) UnmarshalBinary(data []byte) error {
	if len(data) < meterModFixedLen {
		return &InvalidSliceLengthError{Expected: meterModFixedLen, Actual: len(data), Kind: "MeterMod"}
	}
	m.Command = MeterModCommand(binary.BigEndian.Uint16(data[0:2]))

	flags := binary.BigEndian.Uint16(data[2:4])
	if MeterModFlags(flags)&^meterModFlagsMask != 0 {
		return &UnknownBitsError{Value: uint64(MeterModFlags(flags) &^ meterModFlagsMask), Kind: "MeterMod.Flags"}
	}
	m.Flags = MeterModFlags(flags)
	m.MeterID = binary.BigEndian.Uint32(data[4:8])

	bands, err := decodeMeterBands(data[meterModFixedLen:])
	if err != nil {
		return err
	}
	m.Bands = bands
	return nil
}
