package el406

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected indicates the device answered a command header with NAK.
	ErrRejected = errors.New("el406: command rejected (NAK)")

	// ErrAckTimeout indicates no ACK or NAK arrived within the ACK timeout.
	ErrAckTimeout = errors.New("el406: timeout waiting for ACK")

	// ErrResponseTimeout indicates no response frame arrived within the
	// operation timeout.
	ErrResponseTimeout = errors.New("el406: timeout waiting for response frame")

	// ErrStepTimeout indicates a step operation did not reach a terminal
	// state within its timeout budget.
	ErrStepTimeout = errors.New("el406: step operation timeout")

	// ErrNotConnected indicates the device has not been set up, or was
	// stopped.
	ErrNotConnected = errors.New("el406: device not connected")

	// ErrOutOfRange indicates a caller-supplied parameter outside its
	// documented bounds. Raised before any bytes are sent.
	ErrOutOfRange = errors.New("el406: parameter out of range")

	// ErrUnknownValue indicates a device response byte outside the known
	// value set for that query.
	ErrUnknownValue = errors.New("el406: unknown value in device response")
)

// DeviceError is a fault reported by the device itself: a non-zero
// validity code returned by a status poll at the end of a step operation.
type DeviceError struct {
	Code uint16
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("el406: device error 0x%04X: %s", e.Code, ValidityMessage(e.Code))
}

// TransportError wraps a failure of the underlying byte transport,
// naming the operation that failed.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("el406: transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
