package sio

import (
	"errors"
	"fmt"
)

// ErrNotReady is returned by a Transport when the endpoint cannot send or
// receive right now without blocking. It is the only error the transfer
// loop retries; everything else is fatal.
var ErrNotReady = errors.New("endpoint not ready")

// ErrInProgress is returned by Transport.Connect when a non-blocking
// connect attempt has been issued but not yet resolved by the kernel.
var ErrInProgress = errors.New("connect in progress")

// ErrPeerClosed is returned when the remote endpoint closed the connection,
// observed as a zero-byte receive.
var ErrPeerClosed = errors.New("peer closed connection")

// ErrBudgetExceeded is returned when a transfer saw the configured maximum
// number of consecutive transient failures without any forward progress.
var ErrBudgetExceeded = errors.New("consecutive failure budget exceeded")

// ErrConnectTimeout is returned when an in-flight connect attempt did not
// resolve within the configured wait budget.
var ErrConnectTimeout = errors.New("connect attempt timed out")

// ErrClosed is returned for any operation on a handle that has been torn
// down. Hitting it indicates a bug in the caller, not a network condition.
var ErrClosed = errors.New("use of closed connection handle")

// AsyncConnectError reports that an asynchronous connect attempt resolved
// with a failure. Cause carries the status recorded by the transport.
type AsyncConnectError struct {
	Cause error
}

func (e *AsyncConnectError) Error() string {
	return fmt.Sprintf("asynchronous connect failed: %s", e.Cause)
}

func (e *AsyncConnectError) Unwrap() error {
	return e.Cause
}
