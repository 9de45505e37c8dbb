package session

import (
	"encoding/hex"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ofctl/ofcontroller/ofp13"
)

func Test_Session_DecodesHelloAndDeliversToInbox(t *testing.T) {
	switchSide, controllerSide := net.Pipe()
	defer switchSide.Close()

	inbox := make(chan IncomingMsg, 1)
	Start(controllerSide, inbox)

	hello, err := hex.DecodeString("04000008" + "0000002a")
	assert.Nil(t, err)

	go func() { _, _ = switchSide.Write(hello) }()

	select {
	case msg := <-inbox:
		assert.Equal(t, ofp13.TypeHello, msg.Header.Type)
		assert.Equal(t, uint32(42), msg.Header.Xid)
		assert.Nil(t, msg.Payload)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for inbox delivery")
	}
}

func Test_Session_UnknownTypeDroppedNotClosed(t *testing.T) {
	switchSide, controllerSide := net.Pipe()
	defer switchSide.Close()

	inbox := make(chan IncomingMsg, 2)
	Start(controllerSide, inbox)

	unknown, err := hex.DecodeString("047f0008" + "00000001")
	assert.Nil(t, err)
	hello, err := hex.DecodeString("04000008" + "0000002b")
	assert.Nil(t, err)

	go func() {
		_, _ = switchSide.Write(unknown)
		_, _ = switchSide.Write(hello)
	}()

	select {
	case msg := <-inbox:
		assert.Equal(t, ofp13.TypeHello, msg.Header.Type)
		assert.Equal(t, uint32(0x2b), msg.Header.Xid)
	case <-time.After(time.Second):
		t.Fatal("timed out: unknown message type should be dropped, not close the session")
	}
}

func Test_Session_ReplyAfterCloseDoesNotPanic(t *testing.T) {
	switchSide, controllerSide := net.Pipe()

	inbox := make(chan IncomingMsg, 1)
	s := Start(controllerSide, inbox)

	switchSide.Close()
	time.Sleep(50 * time.Millisecond)

	assert.NotPanics(t, func() {
		s.Send(ofp13.OutMessage{Header: ofp13.NewHeader(ofp13.TypeEchoReply, 1)})
	})
}
