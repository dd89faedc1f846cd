package live

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/gorilla/websocket"

	"github.com/smallie-dev/smallie/internal/errors"
	"github.com/smallie-dev/smallie/pkg/dom"
)

// inbound is a decoded client message or the reason it was rejected.
type inbound struct {
	msg ClientMessage
	err error
}

// session owns one app instance. The document, its signals and effects are
// only touched by the goroutine running serve.
type session struct {
	id     string
	conn   *websocket.Conn
	server *Server
	logger *slog.Logger

	doc *dom.Document
	ids *idMap
	enc *encoder

	events chan inbound
	done   chan struct{}
}

func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

func newSession(conn *websocket.Conn, s *Server) *session {
	id := generateSessionID()
	return &session{
		id:     id,
		conn:   conn,
		server: s,
		logger: s.logger.With("session_id", id),
		ids:    newIDMap(),
		events: make(chan inbound, s.eventQueue),
		done:   make(chan struct{}),
	}
}

// serve mounts the app, sends the initial tree and dispatches client events
// until the connection or ctx ends.
func (ss *session) serve(ctx context.Context) error {
	if err := ss.mount(); err != nil {
		return err
	}

	go ss.readLoop()

	heartbeat := time.NewTicker(ss.server.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case in := <-ss.events:
			if in.err != nil {
				ss.logger.Warn("rejected client message", "error", in.err)
				ss.server.metrics.recordError("invalid")
				if err := ss.sendError(in.err); err != nil {
					return err
				}
				continue
			}
			if err := ss.dispatch(ctx, in.msg); err != nil {
				return err
			}

		case <-heartbeat.C:
			deadline := time.Now().Add(ss.server.writeTimeout)
			if err := ss.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return err
			}

		case <-ss.done:
			return nil

		case <-ctx.Done():
			deadline := time.Now().Add(ss.server.writeTimeout)
			_ = ss.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), deadline)
			return ctx.Err()
		}
	}
}

// mount builds the app and writes the init frame. Records are observed only
// after the body has ids, so building the app produces no patches.
func (ss *session) mount() (err error) {
	defer func() {
		if r := recover(); r != nil {
			ss.logger.Error("app mount panic", "panic", r, "stack", string(debug.Stack()))
			err = errors.New("E020").WithDetail(fmt.Sprintf("Mounting the app panicked: %v", r))
			_ = ss.write(errorFrame(err))
		}
	}()

	ss.doc = dom.NewDocument()
	ss.server.app(ss.doc)

	ss.enc = &encoder{ids: ss.ids}
	initial := &Frame{Type: FrameInit, Node: ss.ids.wire(ss.doc.Body())}
	ss.doc.Observe(ss.enc.record)
	return ss.write(initial)
}

// readLoop decodes client messages and hands them to serve. It closes done
// when the connection fails.
func (ss *session) readLoop() {
	defer close(ss.done)

	ss.conn.SetReadLimit(ss.server.maxMessageSize)
	ss.conn.SetReadDeadline(time.Now().Add(ss.server.readTimeout))
	ss.conn.SetPongHandler(func(string) error {
		return ss.conn.SetReadDeadline(time.Now().Add(ss.server.readTimeout))
	})

	for {
		_, data, err := ss.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				ss.logger.Error("read error", "error", err)
			}
			return
		}
		ss.conn.SetReadDeadline(time.Now().Add(ss.server.readTimeout))

		msg, err := DecodeClientMessage(data)
		select {
		case ss.events <- inbound{msg: msg, err: err}:
		default:
			ss.logger.Warn("event queue full, dropping event", "type", msg.EventType)
			ss.server.metrics.recordError("queue_full")
		}
	}
}

// dispatch delivers one client event to the document and sends the
// resulting patch frame. A panic in app code ends the session.
func (ss *session) dispatch(ctx context.Context, msg ClientMessage) error {
	start := time.Now()
	_, span := ss.server.startSpan(ctx, ss.id, msg)

	recovered, known := ss.deliver(msg)
	frame := ss.enc.flush()

	ops := 0
	if frame != nil {
		ops = len(frame.Ops)
	}
	endEventSpan(span, ops, recovered)
	ss.server.metrics.recordDispatch(msg.EventType, time.Since(start))

	if recovered != nil {
		ss.server.metrics.recordError("panic")
		err := errors.New("E020").WithDetail(fmt.Sprintf("Handler for %q panicked: %v", msg.EventType, recovered))
		_ = ss.write(errorFrame(err))
		return err
	}

	if !known {
		ss.server.metrics.recordError("unknown_node")
		if err := ss.sendError(errors.New("E021").WithDetail(fmt.Sprintf("Node %d is not part of this session.", msg.ID))); err != nil {
			return err
		}
	}

	if frame == nil {
		return nil
	}
	return ss.write(frame)
}

// deliver mirrors the reported form state into the node and runs its
// handlers.
func (ss *session) deliver(msg ClientMessage) (recovered any, known bool) {
	defer func() {
		if r := recover(); r != nil {
			ss.logger.Error("event handler panic",
				"type", msg.EventType,
				"node", msg.ID,
				"panic", r,
				"stack", string(debug.Stack()))
			recovered = r
		}
	}()

	node := ss.ids.lookup(msg.ID)
	if node == nil {
		return nil, false
	}

	ev := &dom.Event{Type: msg.EventType}
	if msg.Value != nil {
		node.SyncProp("value", *msg.Value)
		ev.Value = *msg.Value
	}
	if msg.Checked != nil {
		node.SyncProp("checked", *msg.Checked)
		ev.Checked = *msg.Checked
	}
	node.Dispatch(ev)
	return nil, true
}

func (ss *session) sendError(err error) error {
	return ss.write(errorFrame(err))
}

func (ss *session) write(f *Frame) error {
	ss.conn.SetWriteDeadline(time.Now().Add(ss.server.writeTimeout))
	if err := ss.conn.WriteJSON(f); err != nil {
		ss.logger.Debug("write failed", "error", err)
		return err
	}
	ss.server.metrics.recordFrame(f)
	return nil
}
