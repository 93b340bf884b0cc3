package server

import (
	"errors"
	"fmt"
)

// Sentinel errors for session and handshake failures.
var (
	// ErrSessionClosed is returned when operating on a closed session.
	ErrSessionClosed = errors.New("server: session closed")

	// ErrSessionNotFound is returned when a session ID is not registered.
	ErrSessionNotFound = errors.New("server: session not found")

	// ErrHandlerNotFound is returned when no handler matches an event ref.
	ErrHandlerNotFound = errors.New("server: handler not found")

	// ErrEventQueueFull is returned when a session's event queue is full.
	ErrEventQueueFull = errors.New("server: event queue full")

	// ErrInvalidHandshake is returned for malformed handshake frames.
	ErrInvalidHandshake = errors.New("server: invalid handshake")

	// ErrMaxSessionsReached is returned when the session limit is hit.
	ErrMaxSessionsReached = errors.New("server: max sessions reached")

	// ErrInvalidCSRF is returned when CSRF token validation fails.
	ErrInvalidCSRF = errors.New("server: invalid CSRF token")

	// ErrNoConnection is returned when a session has no WebSocket connection.
	ErrNoConnection = errors.New("server: no connection")
)

// SessionError wraps an error with session context.
type SessionError struct {
	SessionID string
	Op        string
	Err       error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	return fmt.Sprintf("server: session %s: %s: %v", e.SessionID, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// HandlerError wraps an error from a handler execution.
type HandlerError struct {
	SessionID string
	Ref       string
	EventType string
	Err       error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("server: handler %s (%s) in session %s: %v", e.Ref, e.EventType, e.SessionID, e.Err)
}

// Unwrap returns the underlying error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}
