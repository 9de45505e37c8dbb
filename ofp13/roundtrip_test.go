package ofp13

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SwitchFeatures_RoundTrip(t *testing.T) {
	f := SwitchFeatures{
		DatapathID:   0x0102030405060708,
		NBuffers:     256,
		NTables:      254,
		AuxID:        0,
		Capabilities: CapabilityFlowStats | CapabilityPortStats,
	}
	data, err := f.MarshalBinary()
	assert.Nil(t, err)
	assert.Equal(t, 24, len(data))

	var decoded SwitchFeatures
	assert.Nil(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, f, decoded)
}

func Test_SwitchFeatures_UnknownCapabilityBitRejected(t *testing.T) {
	data := make([]byte, 24)
	data[17] = 1 // bit 16 of Capabilities, outside the defined mask

	var f SwitchFeatures
	err := f.UnmarshalBinary(data)
	assert.NotNil(t, err)
	_, ok := err.(*UnknownBitsError)
	assert.True(t, ok)
}

func Test_Role_RoundTrip(t *testing.T) {
	r := Role{Role: ControllerRoleMaster, GenerationID: 7}
	data, err := r.MarshalBinary()
	assert.Nil(t, err)

	var decoded Role
	assert.Nil(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, r, decoded)
}

func Test_Async_RoundTrip(t *testing.T) {
	a := Async{
		PacketInMask:    [2]uint32{1, 2},
		PortStatusMask:  [2]uint32{3, 4},
		FlowRemovedMask: [2]uint32{5, 6},
	}
	data, err := a.MarshalBinary()
	assert.Nil(t, err)

	var decoded Async
	assert.Nil(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, a, decoded)
}

func Test_MeterMod_RoundTrip(t *testing.T) {
	m := MeterMod{
		Command: MeterModCommandAdd,
		Flags:   MeterModFlagKbps | MeterModFlagBurst,
		MeterID: 1,
		Bands: []MeterBand{
			{Type: MeterBandTypeDrop, Rate: 100, Burst: 10},
		},
	}
	data, err := m.MarshalBinary()
	assert.Nil(t, err)

	var decoded MeterMod
	assert.Nil(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, m, decoded)
}

func Test_GroupMod_RoundTrip(t *testing.T) {
	g := GroupMod{
		Command: GroupModCommandAdd,
		Type:    GroupTypeAll,
		GroupID: 1,
		Buckets: []Bucket{
			{
				Weight:     0,
				WatchPort:  ReservedPortNumber(PortNoAny),
				WatchGroup: 0xFFFFFFFF,
				Actions:    []Action{NewOutputAction(NormalPortNumber(3), 0)},
			},
		},
	}
	data, err := g.MarshalBinary()
	assert.Nil(t, err)

	var decoded GroupMod
	assert.Nil(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, g.Command, decoded.Command)
	assert.Equal(t, g.Type, decoded.Type)
	assert.Equal(t, g.GroupID, decoded.GroupID)
	assert.Equal(t, 1, len(decoded.Buckets))
	assert.Equal(t, 1, len(decoded.Buckets[0].Actions))
}

func Test_QueueGetConfig_RoundTrip(t *testing.T) {
	reply := QueueGetConfigReply{
		Port: 1,
		Queues: []PacketQueue{
			{
				QueueID: 1,
				Port:    1,
				Properties: []QueueProperty{
					{Property: QueuePropMinRate, Rate: 100},
				},
			},
		},
	}
	data, err := reply.MarshalBinary()
	assert.Nil(t, err)

	var decoded QueueGetConfigReply
	assert.Nil(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, reply.Port, decoded.Port)
	assert.Equal(t, 1, len(decoded.Queues))
	assert.Equal(t, 1, len(decoded.Queues[0].Properties))
	assert.Equal(t, uint16(100), decoded.Queues[0].Properties[0].Rate)
}

func Test_TableMod_RoundTrip(t *testing.T) {
	tm := TableMod{TableID: 3, Config: 0}
	data, err := tm.MarshalBinary()
	assert.Nil(t, err)

	var decoded TableMod
	assert.Nil(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, tm, decoded)
}

func Test_Port_RoundTrip(t *testing.T) {
	p := Port{
		PortNo:     1,
		HWAddr:     [6]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
		Name:       "eth0",
		Config:     PortConfigDown,
		State:      PortStateLive,
		Curr:       PortFeature1GBFD,
		Advertised: PortFeature1GBFD | PortFeatureAutoneg,
		Supported:  PortFeature1GBFD,
		Peer:       PortFeature1GBFD,
		CurrSpeed:  1000000,
		MaxSpeed:   1000000,
	}
	data, err := p.MarshalBinary()
	assert.Nil(t, err)
	assert.Equal(t, PortLen, len(data))

	var decoded Port
	assert.Nil(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, p, decoded)
}

func Test_Port_UnknownConfigBitRejected(t *testing.T) {
	data := make([]byte, PortLen)
	data[35] = 1 << 1 // set a bit outside portConfigMask in Config

	var p Port
	err := p.UnmarshalBinary(data)
	assert.NotNil(t, err)
	_, ok := err.(*UnknownBitsError)
	assert.True(t, ok)
}

func Test_Port_UnknownStateBitRejected(t *testing.T) {
	data := make([]byte, PortLen)
	data[39] = 1 << 3 // set a bit outside portStateMask in State

	var p Port
	err := p.UnmarshalBinary(data)
	assert.NotNil(t, err)
	_, ok := err.(*UnknownBitsError)
	assert.True(t, ok)
}

func Test_Port_UnknownFeatureBitRejected(t *testing.T) {
	data := make([]byte, PortLen)
	data[41] = 1 // bit 16 of Curr, outside the 16 defined PortFeature bits

	var p Port
	err := p.UnmarshalBinary(data)
	assert.NotNil(t, err)
	_, ok := err.(*UnknownBitsError)
	assert.True(t, ok)
}

func Test_PortMod_UnknownBitsRejected(t *testing.T) {
	base := PortMod{PortNo: 1, Config: PortConfigDown, Mask: PortConfigDown, Advertise: PortFeature1GBFD}
	data, err := base.MarshalBinary()
	assert.Nil(t, err)

	data[19] = 1 << 1 // set a bit outside portConfigMask in Config
	var decoded PortMod
	err = decoded.UnmarshalBinary(data)
	assert.NotNil(t, err)
	_, ok := err.(*UnknownBitsError)
	assert.True(t, ok)
}

func Test_IPv6ExtHdrFlags_UnknownBitRejected(t *testing.T) {
	data := []byte{0x02, 0x00} // bit 9 is outside the nine defined flags

	var v IPv6ExtHdrFlags
	err := v.UnmarshalBinary(data)
	assert.NotNil(t, err)
	_, ok := err.(*UnknownBitsError)
	assert.True(t, ok)
}

func Test_FlowRemoved_RejectsTrailingGarbageAfterMatch(t *testing.T) {
	fr := FlowRemoved{
		Cookie:   0x1,
		Priority: 1,
		Reason:   FlowRemovedReasonDelete,
		TableID:  0,
		Match:    Match{Type: MatchTypeStandard},
	}
	data, err := fr.MarshalBinary()
	assert.Nil(t, err)

	// Append a stray byte after the (padded) match, which nothing in
	// FlowRemoved's layout accounts for.
	data = append(data, 0x00)

	var decoded FlowRemoved
	err = decoded.UnmarshalBinary(data)
	assert.NotNil(t, err)
	_, ok := err.(*InvalidSliceLengthError)
	assert.True(t, ok)
}
