// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package p2p

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GeniusVentures/rlp-sub000/event"
	"github.com/GeniusVentures/rlp-sub000/log"
	"github.com/GeniusVentures/rlp-sub000/metrics"
	"github.com/GeniusVentures/rlp-sub000/p2p/rlpx"
)

// State is one point in the session's deterministic state machine:
//
//	Uninitialized -> Connecting -> Authenticating -> Handshaking -> Active
//	Active -> Disconnecting -> Closed
//
// and any state may transition directly to Error on an unrecoverable fault.
type State int32

const (
	StateUninitialized State = iota
	StateConnecting
	StateAuthenticating
	StateHandshaking
	StateActive
	StateDisconnecting
	StateClosed
	StateError
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConnecting:
		return "connecting"
	case StateAuthenticating:
		return "authenticating"
	case StateHandshaking:
		return "handshaking"
	case StateActive:
		return "active"
	case StateDisconnecting:
		return "disconnecting"
	case StateClosed:
		return "closed"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// SessionErrorKind names one of the session-level failure kinds a caller
// can observe through post_message or receive_message (§7).
type SessionErrorKind string

const (
	NetworkFailure     SessionErrorKind = "NetworkFailure"
	AuthenticationFailed SessionErrorKind = "AuthenticationFailed"
	HandshakeFailed    SessionErrorKind = "HandshakeFailed"
	PeerDisconnected   SessionErrorKind = "PeerDisconnected"
	SessionTimeout     SessionErrorKind = "Timeout"
	InvalidState       SessionErrorKind = "InvalidState"
	InvalidMessage     SessionErrorKind = "InvalidMessage"
	NotConnected       SessionErrorKind = "NotConnected"
	ConnectionFailed   SessionErrorKind = "ConnectionFailed"
)

// SessionError is the single error type the public API ever returns;
// lower-layer codec/crypto/framing errors are wrapped into one of these at
// the session boundary and never surface on their own.
type SessionError struct {
	Kind SessionErrorKind
	Err  error
}

func (e *SessionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("p2p: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("p2p: %s", e.Kind)
}

func (e *SessionError) Unwrap() error { return e.Err }

func sessionErr(kind SessionErrorKind, err error) *SessionError {
	return &SessionError{Kind: kind, Err: err}
}

// DefaultConnectTimeout is applied to the TCP dial and the handshake as a
// whole when Params.Timeout is zero.
const DefaultConnectTimeout = 10 * time.Second

// sendQueueSize bounds the post_message backlog; post_message blocks (not
// spins) once it is full, which is still "non-blocking" with respect to
// the network -- it never waits on a socket write.
const sendQueueSize = 256

const recvQueueSize = 256

// Params configures connect and accept.
type Params struct {
	Addr      string // dial target; ignored by accept
	LocalKey  *ecdsa.PrivateKey
	RemoteKey *ecdsa.PublicKey // required for connect, nil for accept
	Hello     Hello
	Timeout   time.Duration

	// Registry receives this session's frame/byte counters. A nil
	// Registry gets a private one, the way a Session with no caller
	// wiring still has something to report through Metrics().
	Registry metrics.Registry
}

// StateChangeEvent is sent on a Session's Feed whenever its state
// machine transitions, matching go-ethereum's use of event.Feed for
// peer-set notifications.
type StateChangeEvent struct {
	From State
	To   State
}

// sessionMetrics holds the frame/byte counters a Session keeps in its
// Registry, mirroring the accounting go-ethereum's metered peer
// connection does for each Peer.
type sessionMetrics struct {
	FramesSent metrics.Counter
	FramesRecv metrics.Counter
	BytesSent  metrics.Counter
	BytesRecv  metrics.Counter
}

func newSessionMetrics(r metrics.Registry) *sessionMetrics {
	return &sessionMetrics{
		FramesSent: metrics.GetOrRegisterCounter("p2p/session/frames/sent", r),
		FramesRecv: metrics.GetOrRegisterCounter("p2p/session/frames/recv", r),
		BytesSent:  metrics.GetOrRegisterCounter("p2p/session/bytes/sent", r),
		BytesRecv:  metrics.GetOrRegisterCounter("p2p/session/bytes/recv", r),
	}
}

// Handlers holds the optional, one-shot-per-kind caller callbacks
// described in §4.8. A nil field means "no handler registered".
type Handlers struct {
	OnHello      func(Hello)
	OnDisconnect func(DiscReason)
	OnPing       func()
	OnGeneric    func(Msg)
}

// Session is one established, encrypted devp2p connection: the frame
// cipher, the negotiated peer identity, the send/receive queues, and the
// state machine described in §4.8.
type Session struct {
	conn   net.Conn
	stream *MessageStream

	localHello  Hello
	remoteHello Hello
	remoteKey   *ecdsa.PublicKey

	state atomic.Int32

	sendCh chan Msg
	recvCh chan Msg
	done   chan struct{}

	closeOnce  sync.Once
	handlersMu sync.Mutex
	handlers   Handlers

	lastErr atomic.Pointer[SessionError]

	log      log.Logger
	metrics  *sessionMetrics
	registry metrics.Registry
	feed     event.Feed
}

// connect opens a TCP connection to params.Addr, runs the auth handshake
// as the initiator, exchanges Hello, and returns an Active session.
func Connect(params Params) (*Session, error) {
	timeout := params.Timeout
	if timeout == 0 {
		timeout = DefaultConnectTimeout
	}

	s := newSession(params.Registry)
	s.log.Debug("dialing peer", "addr", params.Addr)
	s.setState(StateConnecting)

	conn, err := net.DialTimeout("tcp", params.Addr, timeout)
	if err != nil {
		s.setState(StateError)
		s.log.Warn("dial failed", "addr", params.Addr, "err", err)
		return nil, sessionErr(ConnectionFailed, err)
	}
	conn.SetDeadline(time.Now().Add(timeout))

	s.setState(StateAuthenticating)
	secrets, err := rlpx.InitiatorHandshake(conn, params.LocalKey, params.RemoteKey)
	if err != nil {
		conn.Close()
		s.setState(StateError)
		s.log.Warn("auth handshake failed", "addr", params.Addr, "err", err)
		return nil, sessionErr(AuthenticationFailed, err)
	}

	cipher, err := rlpx.NewFrameCipher(secrets)
	if err != nil {
		conn.Close()
		s.setState(StateError)
		s.log.Warn("frame cipher setup failed", "addr", params.Addr, "err", err)
		return nil, sessionErr(HandshakeFailed, err)
	}
	s.conn = conn
	s.stream = NewMessageStream(cipher)
	s.remoteKey = secrets.Remote

	s.setState(StateHandshaking)
	if err := s.exchangeHello(params.Hello); err != nil {
		conn.Close()
		s.setState(StateError)
		s.log.Warn("hello exchange failed", "addr", params.Addr, "err", err)
		return nil, err
	}

	conn.SetDeadline(time.Time{})
	s.activate()
	s.log.Info("session active", "addr", params.Addr, "peer", s.remoteHello.ClientID)
	return s, nil
}

// Accept runs the auth handshake as the responder over an already-accepted
// socket and exchanges Hello, returning an Active session.
func Accept(params Params, conn net.Conn) (*Session, error) {
	timeout := params.Timeout
	if timeout == 0 {
		timeout = DefaultConnectTimeout
	}
	conn.SetDeadline(time.Now().Add(timeout))

	s := newSession(params.Registry)
	s.conn = conn
	s.setState(StateAuthenticating)

	secrets, err := rlpx.RecipientHandshake(conn, params.LocalKey)
	if err != nil {
		conn.Close()
		s.setState(StateError)
		s.log.Warn("auth handshake failed", "remote", conn.RemoteAddr(), "err", err)
		return nil, sessionErr(AuthenticationFailed, err)
	}

	cipher, err := rlpx.NewFrameCipher(secrets)
	if err != nil {
		conn.Close()
		s.setState(StateError)
		s.log.Warn("frame cipher setup failed", "remote", conn.RemoteAddr(), "err", err)
		return nil, sessionErr(HandshakeFailed, err)
	}
	s.stream = NewMessageStream(cipher)
	s.remoteKey = secrets.Remote

	s.setState(StateHandshaking)
	if err := s.exchangeHello(params.Hello); err != nil {
		conn.Close()
		s.setState(StateError)
		s.log.Warn("hello exchange failed", "remote", conn.RemoteAddr(), "err", err)
		return nil, err
	}

	conn.SetDeadline(time.Time{})
	s.activate()
	s.log.Info("session active", "remote", conn.RemoteAddr(), "peer", s.remoteHello.ClientID)
	return s, nil
}

func newSession(registry metrics.Registry) *Session {
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	s := &Session{
		sendCh:   make(chan Msg, sendQueueSize),
		recvCh:   make(chan Msg, recvQueueSize),
		done:     make(chan struct{}),
		log:      log.New("component", "p2p.session"),
		metrics:  newSessionMetrics(registry),
		registry: registry,
	}
	s.state.Store(int32(StateUninitialized))
	return s
}

// exchangeHello writes the local Hello and reads the remote one
// concurrently, so neither side blocks waiting for the other to read
// first, then negotiates Snappy compression per the DESIGN NOTES rule:
// enabled once both sides advertise protocol_version >= 5.
func (s *Session) exchangeHello(local Hello) error {
	s.localHello = local
	payload, err := EncodeHello(local)
	if err != nil {
		return sessionErr(HandshakeFailed, err)
	}

	writeErrCh := make(chan error, 1)
	go func() {
		writeErrCh <- s.stream.WriteMessage(s.conn, Msg{Code: HelloMsg, Payload: payload})
	}()

	msg, err := s.stream.ReadMessage(s.conn)
	if werr := <-writeErrCh; werr != nil {
		return sessionErr(HandshakeFailed, werr)
	}
	if err != nil {
		return sessionErr(HandshakeFailed, err)
	}
	if msg.Code != HelloMsg {
		return sessionErr(HandshakeFailed, errors.New("expected Hello as first message"))
	}
	remote, err := DecodeHello(msg.Payload)
	if err != nil {
		return sessionErr(HandshakeFailed, err)
	}
	s.remoteHello = remote

	if local.ProtocolVersion >= 5 && remote.ProtocolVersion >= 5 {
		s.stream.EnableSnappy()
	}

	s.handlersMu.Lock()
	h := s.handlers.OnHello
	s.handlersMu.Unlock()
	if h != nil {
		h(remote)
	}
	return nil
}

func (s *Session) activate() {
	s.setState(StateActive)
	go s.sendLoop()
	go s.receiveLoop()
}

// SetHandlers registers the optional caller callbacks. It is one-shot: a
// second call replaces any previously registered handlers.
func (s *Session) SetHandlers(h Handlers) {
	s.handlersMu.Lock()
	s.handlers = h
	s.handlersMu.Unlock()
}

// State returns the session's current state.
func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) setState(st State) {
	prev := State(s.state.Swap(int32(st)))
	if prev == st {
		return
	}
	s.log.Debug("state transition", "from", prev, "to", st)
	s.feed.Send(StateChangeEvent{From: prev, To: st})
}

// Feed returns the event.Feed a caller can subscribe to for
// StateChangeEvent notifications.
func (s *Session) Feed() *event.Feed { return &s.feed }

// Metrics returns the registry this session reports its frame/byte
// counters into.
func (s *Session) Metrics() metrics.Registry { return s.registry }

// compareAndSwapState performs the atomic transition used by disconnect
// and the loops' fault path so concurrent callers collapse to one actor.
func (s *Session) compareAndSwapState(from, to State) bool {
	return s.state.CompareAndSwap(int32(from), int32(to))
}

// RemoteHello returns the Hello the peer sent during the handshake.
func (s *Session) RemoteHello() Hello { return s.remoteHello }

// RemoteKey returns the peer's static public key, recovered during the
// auth handshake.
func (s *Session) RemoteKey() *ecdsa.PublicKey { return s.remoteKey }

// PostMessage enqueues msg for sending. It fails NotConnected immediately
// if the session is not Active.
func (s *Session) PostMessage(msg Msg) error {
	if s.State() != StateActive {
		return sessionErr(NotConnected, nil)
	}
	select {
	case s.sendCh <- msg:
		return nil
	case <-s.done:
		return sessionErr(NotConnected, nil)
	}
}

// ReceiveMessage blocks until a sub-protocol message is available or the
// session terminates, in which case it returns the terminal SessionError.
func (s *Session) ReceiveMessage() (Msg, error) {
	select {
	case msg, ok := <-s.recvCh:
		if !ok {
			return Msg{}, s.terminalError()
		}
		return msg, nil
	case <-s.done:
		return Msg{}, s.terminalError()
	}
}

func (s *Session) terminalError() error {
	if e := s.lastErr.Load(); e != nil {
		return e
	}
	return sessionErr(NotConnected, nil)
}

// Disconnect idempotently tears the session down: it transitions to
// Disconnecting, sends a Disconnect message best-effort, closes the
// transport, and transitions to Closed. Concurrent calls collapse to one.
func (s *Session) Disconnect(reason DiscReason) error {
	var result error
	s.closeOnce.Do(func() {
		prev := s.State()
		s.log.Info("disconnecting", "reason", reason, "state", prev)
		s.setState(StateDisconnecting)

		if prev == StateActive {
			if payload, err := EncodeDisconnect(reason); err == nil {
				s.stream.WriteMessage(s.conn, Msg{Code: DisconnectMsg, Payload: payload})
			}
		}
		if s.conn != nil {
			s.conn.Close()
		}
		s.stopLoops(sessionErr(PeerDisconnected, reason))
		s.setState(StateClosed)
	})
	return result
}

// stopLoops records the terminal error (if one is not already recorded)
// and signals both loops to unwind by closing done.
func (s *Session) stopLoops(err *SessionError) {
	s.lastErr.CompareAndSwap(nil, err)
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// fail forces the session into Error and unwinds both loops with cause.
// If the session has already left Active via another path (e.g.
// Disconnect moving it to Disconnecting/Closed), fail must not clobber
// that terminal state -- it only returns.
func (s *Session) fail(kind SessionErrorKind, cause error) {
	if !s.compareAndSwapState(StateActive, StateError) {
		return
	}
	s.log.Error("session fault", "kind", kind, "err", cause)
	s.stopLoops(sessionErr(kind, cause))
	if s.conn != nil {
		s.conn.Close()
	}
}

// sendLoop pops messages from the send queue and writes them to the wire
// while the session is Active, in FIFO order.
func (s *Session) sendLoop() {
	for {
		select {
		case msg := <-s.sendCh:
			if err := s.stream.WriteMessage(s.conn, msg); err != nil {
				s.fail(NetworkFailure, err)
				return
			}
			s.metrics.FramesSent.Inc(1)
			s.metrics.BytesSent.Inc(int64(len(msg.Payload)))
		case <-s.done:
			return
		}
	}
}

// receiveLoop pulls frames from the wire while the session is Active,
// dispatching base-protocol messages itself and enqueueing everything
// else for ReceiveMessage.
func (s *Session) receiveLoop() {
	for {
		select {
		case <-s.done:
			return
		default:
		}

		msg, err := s.stream.ReadMessage(s.conn)
		if err != nil {
			s.fail(NetworkFailure, err)
			return
		}
		s.metrics.FramesRecv.Inc(1)
		s.metrics.BytesRecv.Inc(int64(len(msg.Payload)))

		switch msg.Code {
		case HelloMsg:
			// Hello is only valid once, during the handshake; seeing it
			// again during Active is a protocol violation.
			s.protocolError(errors.New("unexpected Hello during active session"))
			return

		case DisconnectMsg:
			reason, derr := DecodeDisconnect(msg.Payload)
			if derr != nil {
				s.protocolError(derr)
				return
			}
			s.log.Info("peer disconnected", "reason", reason)
			s.handlersMu.Lock()
			h := s.handlers.OnDisconnect
			s.handlersMu.Unlock()
			if h != nil {
				h(reason)
			}
			s.compareAndSwapState(StateActive, StateDisconnecting)
			s.stopLoops(sessionErr(PeerDisconnected, reason))
			if s.conn != nil {
				s.conn.Close()
			}
			s.setState(StateClosed)
			return

		case PingMsg:
			// Open Question (1): a strict reading accepts only an absent
			// payload or the canonical empty list (0xc0) and rejects any
			// other Ping payload rather than tolerating it.
			if len(msg.Payload) != 0 && string(msg.Payload) != string(encodeEmptyList()) {
				s.protocolError(errors.New("non-empty Ping payload"))
				return
			}
			s.handlersMu.Lock()
			h := s.handlers.OnPing
			s.handlersMu.Unlock()
			if h != nil {
				h()
			}
			select {
			case s.sendCh <- Msg{Code: PongMsg, Payload: encodeEmptyList()}:
			case <-s.done:
				return
			}

		case PongMsg:
			// consumed silently

		default:
			s.handlersMu.Lock()
			h := s.handlers.OnGeneric
			s.handlersMu.Unlock()
			if h != nil {
				h(msg)
			}
			select {
			case s.recvCh <- msg:
			case <-s.done:
				return
			}
		}
	}
}

// protocolError disconnects with ProtocolError after a base-protocol
// dispatch violation, matching §4.8's "treat as protocol error and
// disconnect" rule.
func (s *Session) protocolError(cause error) {
	s.log.Warn("protocol error", "err", cause)
	s.lastErr.CompareAndSwap(nil, sessionErr(InvalidMessage, cause))
	s.Disconnect(DiscProtocolError)
}
