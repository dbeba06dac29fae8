package sio

import "time"

// Direction selects which way a transfer or readiness wait points.
type Direction int

const (
	// Send waits for or performs outbound transfers.
	Send Direction = iota
	// Receive waits for or performs inbound transfers.
	Receive
)

func (d Direction) String() string {
	if d == Send {
		return "send"
	}
	return "receive"
}

// Transport is the minimal capability set sio needs from an endpoint.
// Implementations exist for raw descriptors (pkg/sio/rawsock) and for
// net.Conn-backed endpoints (pkg/sio/netconn); the establish and transfer
// algorithms are written once against this interface.
type Transport interface {
	// Connect issues a connect attempt toward host:port. It returns nil
	// when the connection is fully established, ErrInProgress when a
	// non-blocking attempt is still being resolved, and any other error
	// on fatal failure.
	Connect(host string, port int) error

	// Send attempts one bounded write. It returns the number of bytes
	// moved, ErrNotReady when the endpoint would block, or a fatal error.
	Send(p []byte) (int, error)

	// Recv attempts one bounded read. A return of (0, nil) means the
	// remote endpoint closed the connection.
	Recv(p []byte) (int, error)

	// Wait blocks until the endpoint is ready for d or timeout elapses.
	// It reports whether the endpoint became ready. Readiness in the Send
	// direction after ErrInProgress only means the connect attempt has
	// been resolved; PendingError decides the outcome.
	Wait(d Direction, timeout time.Duration) (bool, error)

	// PendingError reads the completion status of an asynchronous connect
	// attempt. nil means the connection was established.
	PendingError() error

	// Close releases the endpoint. It must be safe to call more than once.
	Close() error
}
