package server

import (
	"runtime/debug"
	"time"

	"github.com/gorilla/websocket"

	"github.com/marquee-dev/marquee/pkg/protocol"
)

// ReadLoop reads frames from the WebSocket until the connection drops.
// Runs as a goroutine per session.
func (s *Session) ReadLoop() {
	defer s.Close(protocol.CloseGoingAway, "read loop exited")

	for {
		if s.closed.Load() {
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived) && !s.closed.Load() {
				s.logger.Warn("unexpected connection close", "err", err)
			}
			return
		}
		s.bytesRecv.Add(uint64(len(data)))

		frame, err := protocol.DecodeFrame(data)
		if err != nil {
			s.logger.Warn("invalid frame", "err", err)
			s.sendError(protocol.ErrInvalidFrame, "invalid frame")
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(frame.Payload)
		case protocol.FrameControl:
			s.handleControlFrame(frame.Payload)
		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type.String())
		}
	}
}

// handleEventFrame decodes an event frame and queues it for the event
// loop. Events arriving while the queue is full are dropped.
func (s *Session) handleEventFrame(payload []byte) {
	pe, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.logger.Warn("invalid event", "err", err)
		s.sendError(protocol.ErrInvalidEvent, "invalid event")
		return
	}
	if err := s.QueueEvent(eventFromProtocol(pe, s)); err != nil {
		s.logger.Warn("dropping event", "seq", pe.Seq, "type", pe.Type.String(), "err", err)
	}
}

// handleControlFrame reacts to pings, pongs and close requests.
func (s *Session) handleControlFrame(payload []byte) {
	ct, msg, err := protocol.DecodeControl(payload)
	if err != nil {
		s.logger.Warn("invalid control message", "err", err)
		return
	}
	switch ct {
	case protocol.ControlPing:
		pp, _ := msg.(*protocol.PingPong)
		var ts uint64
		if pp != nil {
			ts = pp.Timestamp
		}
		if err := s.sendControl(protocol.NewPong(ts)); err != nil && !s.closed.Load() {
			s.logger.Debug("failed to send pong", "err", err)
		}
	case protocol.ControlPong:
		s.logger.Debug("pong received")
	case protocol.ControlClose:
		if cm, ok := msg.(*protocol.CloseMessage); ok {
			s.logger.Info("client requested close", "reason", cm.Reason.String(), "message", cm.Message)
		}
		s.Close(protocol.CloseNormal, "client requested close")
	default:
		s.logger.Warn("unknown control type", "type", ct.String())
	}
}

// WriteLoop sends heartbeat pings until the session closes. Runs as a
// goroutine per session.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.sendPing(); err != nil {
				if !s.closed.Load() {
					s.logger.Warn("heartbeat failed", "err", err)
				}
				return
			}
		case <-s.done:
			return
		}
	}
}

// EventLoop dispatches queued events and functions. All handlers run on
// this goroutine, so handlers never race each other within a session.
func (s *Session) EventLoop() {
	for {
		select {
		case event := <-s.events:
			s.handleEvent(event)
		case fn := <-s.dispatchCh:
			s.executeDispatch(fn)
		case <-s.done:
			return
		}
	}
}

// executeDispatch runs a dispatched function with panic containment.
func (s *Session) executeDispatch(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("dispatched function panic", "panic", r, "stack", string(debug.Stack()))
		}
	}()
	fn()
}
