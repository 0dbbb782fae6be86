package smpp

import (
	"fmt"

	"github.com/iainh/smpp/pdu"
)

// ErrSessionClosed is returned to every outstanding waiter when the
// session transport is lost or UnbindAndClose completes (spec §5
// "Cancellation and timeouts").
var ErrSessionClosed = fmt.Errorf("smpp: session closed")

// ErrTimeout is returned to a SendRequest caller whose PendingRequest
// deadline elapsed before a matching response arrived.
var ErrTimeout = fmt.Errorf("smpp: request timed out")

// ErrBackpressure is returned when max_rate_per_second is configured as
// 0 (unlimited disabled, sending forbidden) or a non-blocking token
// acquisition cannot proceed (spec §7 item 7).
var ErrBackpressure = fmt.Errorf("smpp: flow control backpressure")

// StateError is returned to a local SendRequest/Respond caller when the
// PDU is not legal in the session's current state. Nothing is written to
// the peer and the state is left unchanged.
type StateError struct {
	State     State
	CommandID pdu.CommandID
}

func (e *StateError) Error() string {
	return fmt.Sprintf("smpp: %s not legal in state %s", e.CommandID, e.State)
}

// UnsupportedInVersion reports that a PDU requires a higher effective
// protocol version than the session negotiated (spec §4.7).
type UnsupportedInVersion struct {
	CommandID        pdu.CommandID
	EffectiveVersion uint8
}

func (e *UnsupportedInVersion) Error() string {
	return fmt.Sprintf("smpp: %s requires a higher interface_version than negotiated (0x%02x)", e.CommandID, e.EffectiveVersion)
}

// AppError wraps a nonzero command_status returned by the peer in
// response to a request — spec §7 item 5, "application errors", which
// are surfaced to the caller but do not affect session state.
type AppError struct {
	CommandID pdu.CommandID
	Status    pdu.CommandStatus
}

func (e *AppError) Error() string {
	return fmt.Sprintf("smpp: %s failed: %s", e.CommandID, e.Status)
}

func (e *AppError) Unwrap() error { return e.Status }

// BindFailure reports that the peer rejected a bind attempt.
type BindFailure struct {
	Status pdu.CommandStatus
}

func (e *BindFailure) Error() string {
	return fmt.Sprintf("smpp: bind rejected: %s", e.Status)
}

func (e *BindFailure) Unwrap() error { return e.Status }
