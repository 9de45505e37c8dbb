// Package session owns a single switch TCP connection: a reader
// goroutine that turns the byte stream into decoded messages, a writer
// goroutine that serializes outbound messages back onto the socket, and
// the reply channel that ties the two to the dispatcher's shared inbox.
package session

import (
	"encoding/binary"
	"errors"
	"io"
	"net"
	"strings"

	"k8s.io/klog/v2"

	"github.com/ofctl/ofcontroller/ofp13"
)

// defaultReadBufferSize bounds a single conn.Read call. Unlike the buggy
// reference implementation this package is adapted from, the fill loop
// below always requests min(remaining, readBufferSize) bytes, never
// `remaining % readBufferSize` (which is zero whenever remaining is an
// exact multiple of the buffer size and would spin forever). The
// original bug was reachable only because its buffer size was a
// hardcoded constant with no path to change it; this one is a Session
// field an Option can override.
const defaultReadBufferSize = 2048

// outboundQueueSize bounds the writer's outbound queue so a slow or
// stalled switch cannot make the session buffer unbounded memory.
const outboundQueueSize = 64

// Option customizes a Session before its goroutines start.
type Option func(*Session)

// WithReadBufferSize overrides the chunk size used to fill the reader's
// scratch buffer on each conn.Read call.
func WithReadBufferSize(n int) Option {
	return func(s *Session) { s.readBufSize = n }
}

// ReplyFunc sends a message back to the switch an IncomingMsg came
// from. It is safe to call after the session has ended: the send is
// then dropped rather than blocked or panicking on a closed channel.
type ReplyFunc func(ofp13.OutMessage)

// IncomingMsg bundles one decoded inbound message with the reply
// function the dispatcher (or, after routing, the user handler) uses to
// send messages back to the same switch.
type IncomingMsg struct {
	Reply   ReplyFunc
	Header  ofp13.Header
	Payload ofp13.Payload
}

// Session owns one accepted switch connection.
type Session struct {
	conn        net.Conn
	out         chan ofp13.OutMessage
	done        chan struct{}
	readBufSize int
}

// Start begins serving conn: it spawns the reader and writer goroutines
// and returns immediately. Decoded messages are pushed onto inbox as
// they arrive; inbox is shared across every session the controller is
// serving. Start never returns an error itself — connection-level
// failures are logged and end only this session, per the dispatcher's
// contract that per-connection failures are not fatal to the process.
func Start(conn net.Conn, inbox chan<- IncomingMsg, opts ...Option) *Session {
	s := &Session{
		conn:        conn,
		out:         make(chan ofp13.OutMessage, outboundQueueSize),
		done:        make(chan struct{}),
		readBufSize: defaultReadBufferSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	klog.InfoS("Switch session starting", "remote", conn.RemoteAddr())
	go s.writeLoop()
	go s.readLoop(inbox)
	return s
}

// Send enqueues an outbound message. It never blocks forever on a dead
// session: once the session has ended, sends are dropped rather than
// panicking on a closed channel.
func (s *Session) Send(msg ofp13.OutMessage) {
	select {
	case s.out <- msg:
	case <-s.done:
		klog.V(4).InfoS("Dropped outbound message on closed session", "remote", s.conn.RemoteAddr())
	}
}

func (s *Session) close() {
	select {
	case <-s.done:
		return
	default:
		close(s.done)
	}
	s.conn.Close()
}

func (s *Session) readLoop(inbox chan<- IncomingMsg) {
	defer s.close()

	remote := s.conn.RemoteAddr()
	buf := make([]byte, s.readBufSize)

	for {
		headerBytes, err := s.readExact(buf, ofp13.HeaderLen)
		if err != nil {
			if isCleanEOF(err) {
				klog.InfoS("Switch session closed by peer", "remote", remote)
			} else {
				klog.ErrorS(err, "Failed to read OpenFlow header", "remote", remote)
			}
			return
		}

		header, err := ofp13.DecodeHeader(headerBytes)
		if err != nil {
			var unknownType *ofp13.UnknownEnumError
			if errors.As(err, &unknownType) && unknownType.Kind == "Header.Type" {
				klog.V(2).InfoS("Dropping message of unknown type", "remote", remote, "error", err)
				if bodyLen := int(binary.BigEndian.Uint16(headerBytes[2:4])) - ofp13.HeaderLen; bodyLen > 0 {
					if _, err := s.readExact(buf, bodyLen); err != nil {
						klog.ErrorS(err, "Failed to read body of unknown-type message", "remote", remote)
						return
					}
				}
				continue
			}
			klog.ErrorS(err, "Fatal header decode error, closing session", "remote", remote)
			return
		}

		payloadBytes, err := s.readExact(buf, header.PayloadLen())
		if err != nil {
			klog.ErrorS(err, "Failed to read OpenFlow payload", "remote", remote, "type", header.Type)
			return
		}

		payload, err := ofp13.DecodePayload(header, payloadBytes)
		if err != nil {
			klog.ErrorS(err, "Fatal payload decode error, closing session", "remote", remote, "type", header.Type)
			return
		}

		if klogV := klog.V(7); klogV.Enabled() {
			klogV.InfoS("Received message", "remote", remote, "type", header.Type, "xid", header.Xid, "bytes", len(headerBytes)+len(payloadBytes))
		} else {
			klog.V(4).InfoS("Received message", "remote", remote, "type", header.Type, "xid", header.Xid)
		}

		select {
		case inbox <- IncomingMsg{Reply: s.Send, Header: header, Payload: payload}:
		case <-s.done:
			return
		}
	}
}

// readExact fills buf[:n] from the connection, looping over partial
// TCP reads, and returns a copy of exactly n bytes. n == 0 returns an
// empty slice without touching the socket.
func (s *Session) readExact(buf []byte, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	out := make([]byte, n)
	read := 0
	for read < n {
		remaining := n - read
		chunk := remaining
		if chunk > len(buf) {
			chunk = len(buf)
		}
		nn, err := io.ReadFull(s.conn, buf[:chunk])
		if nn > 0 {
			copy(out[read:read+nn], buf[:nn])
			read += nn
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func isCleanEOF(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	return strings.Contains(err.Error(), "use of closed network connection")
}

func (s *Session) writeLoop() {
	remote := s.conn.RemoteAddr()
	for {
		select {
		case msg := <-s.out:
			data, err := ofp13.Encode(msg.Header, msg.Payload)
			if err != nil {
				klog.ErrorS(err, "Failed to encode outbound message, closing session", "remote", remote)
				s.close()
				return
			}
			if _, err := s.conn.Write(data); err != nil {
				klog.ErrorS(err, "Failed to write outbound message, closing session", "remote", remote)
				s.close()
				return
			}
			if klogV := klog.V(7); klogV.Enabled() {
				klogV.InfoS("Sent outbound message", "remote", remote, "type", msg.Header.Type, "xid", msg.Header.Xid, "bytes", len(data))
			} else {
				klog.V(4).InfoS("Sent outbound message", "remote", remote, "type", msg.Header.Type, "bytes", len(data))
			}
		case <-s.done:
			return
		}
	}
}
