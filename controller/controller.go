// Package controller multiplexes events from many switch sessions to a
// single user-supplied handler, transparently absorbing the Hello and
// EchoRequest keepalive traffic every switch connection requires.
package controller

import (
	"fmt"
	"net"

	"k8s.io/klog/v2"

	"github.com/ofctl/ofcontroller/ofp13"
	"github.com/ofctl/ofcontroller/session"
)

// inboxSize bounds the shared dispatcher inbox. It is a soft cushion
// against bursts, not a substitute for a handler that keeps up; readers
// still block once it fills, propagating back-pressure to the sockets.
const inboxSize = 256

// Event is the value handed to a Handler: a decoded inbound message
// from one switch, plus the function to reply on that same session.
type Event struct {
	Header  ofp13.Header
	Payload ofp13.Payload
	Reply   session.ReplyFunc
}

// Handler processes one inbound event. It is invoked at most once per
// non-automatic message; events from the same session arrive in the
// order the switch sent them, but events from different sessions may be
// delivered concurrently with each other depending on the Controller's
// dispatch (this implementation dispatches serially from a single
// goroutine, but a Handler must not assume it is the only one ever
// invoked, since a future revision may parallelize across sessions).
type Handler func(Event)

// Controller accepts switch connections and dispatches their traffic to
// a Handler.
type Controller struct {
	handler Handler
	inbox   chan session.IncomingMsg
}

// New constructs a Controller bound to handler. Call Start to begin
// accepting connections.
func New(handler Handler) *Controller {
	return &Controller{
		handler: handler,
		inbox:   make(chan session.IncomingMsg, inboxSize),
	}
}

// Start binds a TCP listener at addr and runs the accept loop and the
// dispatcher. It returns only if binding fails; once listening begins,
// Start blocks forever (per-connection errors are logged, not fatal).
func Start(addr string, handler Handler) error {
	c := New(handler)
	return c.Start(addr)
}

// Start binds addr and serves forever, as the package-level Start does.
func (c *Controller) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("controller: failed to bind %s: %w", addr, err)
	}
	klog.InfoS("OpenFlow controller listening", "addr", listener.Addr())

	go c.dispatch()
	c.accept(listener)
	return nil
}

func (c *Controller) accept(listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			klog.ErrorS(err, "Accept failed, continuing")
			continue
		}
		klog.InfoS("Accepted switch connection", "remote", conn.RemoteAddr())
		session.Start(conn, c.inbox)
	}
}

func (c *Controller) dispatch() {
	for msg := range c.inbox {
		c.handleOne(msg)
	}
}

func (c *Controller) handleOne(msg session.IncomingMsg) {
	switch msg.Header.Type {
	case ofp13.TypeHello:
		msg.Reply(ofp13.OutMessage{Header: ofp13.NewHeader(ofp13.TypeHello, msg.Header.Xid)})
		return
	case ofp13.TypeEchoRequest:
		msg.Reply(ofp13.OutMessage{Header: ofp13.NewHeader(ofp13.TypeEchoReply, msg.Header.Xid)})
		return
	}

	defer func() {
		if r := recover(); r != nil {
			klog.ErrorS(fmt.Errorf("%v", r), "Recovered from panic in user handler", "type", msg.Header.Type, "xid", msg.Header.Xid)
		}
	}()
	c.handler(Event{Header: msg.Header, Payload: msg.Payload, Reply: msg.Reply})
}
