package ofp13

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_HelloHandshake(t *testing.T) {
	data, err := hex.DecodeString("04000008" + "0000002a")
	assert.Nil(t, err)

	h, p, err := Decode(data)
	assert.Nil(t, err)
	assert.Equal(t, TypeHello, h.Type)
	assert.Equal(t, uint32(42), h.Xid)
	assert.Nil(t, p)

	encoded, err := Encode(h, p)
	assert.Nil(t, err)
	assert.Equal(t, data, encoded)
}

func Test_EchoKeepalive(t *testing.T) {
	data, err := hex.DecodeString("04020008" + "00000007")
	assert.Nil(t, err)

	h, p, err := Decode(data)
	assert.Nil(t, err)
	assert.Equal(t, TypeEchoRequest, h.Type)
	assert.Equal(t, uint32(7), h.Xid)

	reply := NewHeader(TypeEchoReply, h.Xid)
	out, err := Encode(reply, p)
	assert.Nil(t, err)

	want, err := hex.DecodeString("04030008" + "00000007")
	assert.Nil(t, err)
	assert.Equal(t, want, out)
}

func Test_DecodeHeader_UnknownType(t *testing.T) {
	data, err := hex.DecodeString("047f0008" + "00000001")
	assert.Nil(t, err)

	_, err = DecodeHeader(data[:HeaderLen])
	assert.NotNil(t, err)

	unknown, ok := err.(*UnknownEnumError)
	assert.True(t, ok)
	assert.Equal(t, "Header.Type", unknown.Kind)
}

func Test_DecodeHeader_InvalidLength(t *testing.T) {
	_, err := DecodeHeader(make([]byte, 7))
	assert.NotNil(t, err)
	_, ok := err.(*InvalidSliceLengthError)
	assert.True(t, ok)
}

func Test_PortNumber_ZeroIsIllegal(t *testing.T) {
	_, err := DecodePortNumber(0)
	assert.NotNil(t, err)
	illegal, ok := err.(*IllegalValueError)
	assert.True(t, ok)
	assert.Equal(t, "PortNumber", illegal.Kind)
	assert.Equal(t, uint64(0), illegal.Value)
}

func Test_PortNumber_NormalAndReserved(t *testing.T) {
	p, err := DecodePortNumber(2)
	assert.Nil(t, err)
	assert.Equal(t, NormalPortNumber(2), p)

	p, err = DecodePortNumber(uint32(PortNoFlood))
	assert.Nil(t, err)
	assert.Equal(t, ReservedPortNumber(PortNoFlood), p)
}

func Test_FlowMod_RoundTrip(t *testing.T) {
	inPort := Uint32Value(1)
	match := *NewMatch()
	match.Add(NewMatchField(OxmFieldInPort, &inPort))

	instr := Instruction{
		Type:    InstructionTypeApplyActions,
		Actions: []Action{NewOutputAction(NormalPortNumber(2), 0)},
	}

	fm := FlowMod{
		Cookie:       0xDEADBEEF,
		Command:      FlowModCommandAdd,
		TableID:      0,
		Priority:     100,
		OutPort:      NormalPortNumber(2),
		Match:        match,
		Instructions: []Instruction{instr},
	}

	data, err := fm.MarshalBinary()
	assert.Nil(t, err)
	assert.Equal(t, 0, len(data)%8)

	var decoded FlowMod
	err = decoded.UnmarshalBinary(data)
	assert.Nil(t, err)
	assert.Equal(t, fm.Cookie, decoded.Cookie)
	assert.Equal(t, fm.Command, decoded.Command)
	assert.Equal(t, fm.TableID, decoded.TableID)
	assert.Equal(t, fm.Priority, decoded.Priority)
	assert.Equal(t, fm.OutPort, decoded.OutPort)

	field, ok := decoded.Match.Get(OxmFieldInPort)
	assert.True(t, ok)
	assert.Equal(t, Uint32Value(1), *field.Value.(*Uint32Value))

	assert.Equal(t, 1, len(decoded.Instructions))
	assert.Equal(t, InstructionTypeApplyActions, decoded.Instructions[0].Type)
	assert.Equal(t, 1, len(decoded.Instructions[0].Actions))
	assert.Equal(t, NormalPortNumber(2), decoded.Instructions[0].Actions[0].Port)
}

func Test_PacketIn_PacketOut_Flood(t *testing.T) {
	packetIn := PacketIn{
		BufferID: 1,
		TotalLen: 60,
		Reason:   PacketInReasonNoMatch,
		TableID:  0,
		Cookie:   0,
		Match:    *NewMatch(),
		Data:     make([]byte, 60),
	}

	data, err := packetIn.MarshalBinary()
	assert.Nil(t, err)

	var decoded PacketIn
	err = decoded.UnmarshalBinary(data)
	assert.Nil(t, err)
	assert.Equal(t, uint32(1), decoded.BufferID)
	assert.Equal(t, 60, len(decoded.Data))

	out := PacketOut{
		BufferID: decoded.BufferID,
		InPort:   ReservedPortNumber(PortNoController),
		Actions:  []Action{NewOutputAction(ReservedPortNumber(PortNoFlood), 0)},
		Data:     decoded.Data,
	}

	outBytes, err := out.MarshalBinary()
	assert.Nil(t, err)

	var decodedOut PacketOut
	err = decodedOut.UnmarshalBinary(outBytes)
	assert.Nil(t, err)
	assert.Equal(t, uint16(16), actionsLen(decodedOut.Actions))
	assert.Equal(t, 60, len(decodedOut.Data))
	assert.Equal(t, ReservedPortNumber(PortNoController), decodedOut.InPort)
}

func Test_PacketOut_PortZeroRejected(t *testing.T) {
	// buffer_id 0, in_port 0, actions_len 0: only the port is invalid.
	var out PacketOut
	err := out.UnmarshalBinary(make([]byte, packetOutFixedLen))
	assert.NotNil(t, err)
	illegal, ok := err.(*IllegalValueError)
	assert.True(t, ok)
	assert.Equal(t, uint64(0), illegal.Value)
	assert.Equal(t, "PortNumber", illegal.Kind)
}

func Test_Match_PaddingMultipleOfEight(t *testing.T) {
	flabel := Uint32Value(123)
	m := *NewMatch()
	m.Add(NewMatchField(OxmFieldIPv6Flabel, &flabel))

	data, err := m.MarshalBinary()
	assert.Nil(t, err)
	assert.Equal(t, 0, len(data)%8)

	var decoded Match
	err = decoded.UnmarshalBinary(data)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(decoded.Fields))
}
