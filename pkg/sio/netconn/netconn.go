// Package netconn implements sio.Transport on top of a net.Conn. It backs
// endpoints that do not expose a raw descriptor (WebSocket, KCP) and
// platforms without the rawsock transport.
//
// A net.Conn offers no readiness observation, so the readiness wait is
// folded into each I/O attempt as a deadline: in non-blocking mode every
// Send and Recv may block for up to the configured timeout before it
// reports sio.ErrNotReady, and Wait itself returns immediately. The
// caller-visible bound of budget x timeout per transfer is unchanged.
package netconn

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"siocat/pkg/format"
	"siocat/pkg/sio"
)

// DialFunc establishes the underlying net.Conn for an address.
type DialFunc func(addr string) (net.Conn, error)

// Transport adapts a net.Conn to the sio.Transport capability set.
type Transport struct {
	dial     DialFunc
	conn     net.Conn
	nonblock bool
	timeout  time.Duration
}

var _ sio.Transport = (*Transport)(nil)

// New creates a transport that dials its endpoint on Connect.
func New(dial DialFunc, nonblock bool, timeout time.Duration) *Transport {
	return &Transport{dial: dial, nonblock: nonblock, timeout: timeout}
}

// Wrap creates a transport around an already-established connection.
func Wrap(conn net.Conn, nonblock bool, timeout time.Duration) *Transport {
	return &Transport{conn: conn, nonblock: nonblock, timeout: timeout}
}

// Connect dials the endpoint. Dialing a net.Conn is synchronous, so
// Connect never reports sio.ErrInProgress.
func (t *Transport) Connect(host string, port int) error {
	if t.conn != nil {
		return nil
	}
	if t.dial == nil {
		return fmt.Errorf("no dial function configured")
	}

	addr := format.Addr(host, port)
	conn, err := t.dial(addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	t.conn = conn
	return nil
}

// Send attempts one write. In non-blocking mode the attempt carries a
// deadline of the configured timeout and reports sio.ErrNotReady when the
// deadline expires without any progress.
func (t *Transport) Send(p []byte) (int, error) {
	if err := t.armDeadline(sio.Send); err != nil {
		return 0, err
	}

	n, err := t.conn.Write(p)
	if n > 0 {
		// Forward progress outranks a deadline: the retry loop resets its
		// counter and the next attempt picks up where this one stopped.
		return n, nil
	}
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return 0, sio.ErrNotReady
		}
		return 0, fmt.Errorf("write: %w", err)
	}
	return 0, nil
}

// Recv attempts one read under the same deadline rules as Send. A closed
// peer is reported as (0, nil).
func (t *Transport) Recv(p []byte) (int, error) {
	if err := t.armDeadline(sio.Receive); err != nil {
		return 0, err
	}

	n, err := t.conn.Read(p)
	if n > 0 {
		return n, nil
	}
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return 0, sio.ErrNotReady
		}
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("read: %w", err)
	}
	return 0, nil
}

// Wait returns immediately: the wait budget is already spent inside each
// I/O attempt's deadline.
func (t *Transport) Wait(sio.Direction, time.Duration) (bool, error) {
	return true, nil
}

// PendingError always reports success; Connect resolves synchronously.
func (t *Transport) PendingError() error {
	return nil
}

// Close releases the connection. Safe to call more than once.
func (t *Transport) Close() error {
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

func (t *Transport) armDeadline(d sio.Direction) error {
	if !t.nonblock {
		return nil
	}

	deadline := time.Now().Add(t.timeout)
	var err error
	if d == sio.Send {
		err = t.conn.SetWriteDeadline(deadline)
	} else {
		err = t.conn.SetReadDeadline(deadline)
	}
	if err != nil {
		return fmt.Errorf("setting %s deadline: %w", d, err)
	}
	return nil
}
