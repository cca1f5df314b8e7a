package lobby

import (
	"errors"
	"fmt"
)

// ErrorCode represents a categorized error type.
type ErrorCode int

const (
	ErrorUnknown ErrorCode = iota

	// Protocol errors
	ErrorProtocol // inbound frame could not be decoded

	// Client-side errors
	ErrorSend // outbound frame could not be enqueued
	ErrorConnection
	ErrorDisconnected
	ErrorTimeout
	ErrorInvalidConfig
	ErrorNotConnected
)

// String returns the string representation of an ErrorCode.
func (e ErrorCode) String() string {
	switch e {
	case ErrorUnknown:
		return "unknown"
	case ErrorProtocol:
		return "protocol_error"
	case ErrorSend:
		return "send_error"
	case ErrorConnection:
		return "connection_error"
	case ErrorDisconnected:
		return "disconnected"
	case ErrorTimeout:
		return "timeout"
	case ErrorInvalidConfig:
		return "invalid_config"
	case ErrorNotConnected:
		return "not_connected"
	default:
		return fmt.Sprintf("unknown_code_%d", e)
	}
}

// LobbyError is a structured error with code and context.
type LobbyError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface.
func (e *LobbyError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s (wrapped: %v)", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Unwrap support.
func (e *LobbyError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface for error comparison.
func (e *LobbyError) Is(target error) bool {
	t, ok := target.(*LobbyError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new LobbyError with the given code and message.
func NewError(code ErrorCode, message string) *LobbyError {
	return &LobbyError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with a LobbyError.
func WrapError(code ErrorCode, message string, err error) *LobbyError {
	return &LobbyError{
		Code:    code,
		Message: message,
		Wrapped: err,
	}
}

func hasCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	var le *LobbyError
	if !errors.As(err, &le) {
		return false
	}
	return le.Code == code
}

// IsProtocolError checks if an error came from decoding an inbound frame.
func IsProtocolError(err error) bool {
	return hasCode(err, ErrorProtocol)
}

// IsSendError checks if an error came from a failed outbound enqueue. A
// send on a closed transport is the same recoverable condition as a full
// queue, so both codes classify here.
func IsSendError(err error) bool {
	return hasCode(err, ErrorSend) || hasCode(err, ErrorNotConnected)
}

// IsConnectionError checks if an error is a connection-related error.
func IsConnectionError(err error) bool {
	return hasCode(err, ErrorConnection) || hasCode(err, ErrorDisconnected) || hasCode(err, ErrorTimeout)
}
