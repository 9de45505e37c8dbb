package controller

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ofctl/ofcontroller/ofp13"
	"github.com/ofctl/ofcontroller/session"
)

func Test_Controller_AbsorbsHelloWithoutInvokingHandler(t *testing.T) {
	handlerCalled := make(chan Event, 1)
	c := New(func(e Event) { handlerCalled <- e })

	reply := make(chan ofp13.OutMessage, 1)
	msg := session.IncomingMsg{
		Header: ofp13.NewHeader(ofp13.TypeHello, 42),
		Reply:  func(m ofp13.OutMessage) { reply <- m },
	}

	c.handleOne(msg)

	select {
	case out := <-reply:
		assert.Equal(t, ofp13.TypeHello, out.Header.Type)
		assert.Equal(t, uint32(42), out.Header.Xid)
	case <-time.After(time.Second):
		t.Fatal("expected a synthesized Hello reply")
	}

	select {
	case <-handlerCalled:
		t.Fatal("Hello must never reach the user handler")
	default:
	}
}

func Test_Controller_AbsorbsEchoRequest(t *testing.T) {
	c := New(func(e Event) { t.Fatal("EchoRequest must never reach the user handler") })

	reply := make(chan ofp13.OutMessage, 1)
	msg := session.IncomingMsg{
		Header: ofp13.NewHeader(ofp13.TypeEchoRequest, 7),
		Reply:  func(m ofp13.OutMessage) { reply <- m },
	}

	c.handleOne(msg)

	out := <-reply
	assert.Equal(t, ofp13.TypeEchoReply, out.Header.Type)
	assert.Equal(t, uint32(7), out.Header.Xid)
}

func Test_Controller_DeliversOtherTypesToHandler(t *testing.T) {
	handlerCalled := make(chan Event, 1)
	c := New(func(e Event) { handlerCalled <- e })

	msg := session.IncomingMsg{
		Header: ofp13.NewHeader(ofp13.TypeFeaturesRequest, 1),
		Reply:  func(ofp13.OutMessage) {},
	}
	c.handleOne(msg)

	select {
	case e := <-handlerCalled:
		assert.Equal(t, ofp13.TypeFeaturesRequest, e.Header.Type)
	case <-time.After(time.Second):
		t.Fatal("expected FeaturesRequest to reach the handler")
	}
}

func Test_Controller_PanicInHandlerIsIsolated(t *testing.T) {
	c := New(func(e Event) { panic("boom") })

	msg := session.IncomingMsg{
		Header: ofp13.NewHeader(ofp13.TypeFeaturesRequest, 1),
		Reply:  func(ofp13.OutMessage) {},
	}

	assert.NotPanics(t, func() { c.handleOne(msg) })
}

func Test_Controller_StartReturnsOnBindFailure(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	assert.Nil(t, err)
	defer listener.Close()

	err = Start(listener.Addr().String(), func(Event) {})
	assert.NotNil(t, err)
}
