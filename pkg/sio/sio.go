// Package sio implements reliable full-length I/O over a stream endpoint.
// It drives connection establishment, including completion of asynchronous
// connect attempts on non-blocking endpoints, and send/receive loops that
// retry transient not-ready conditions up to a configurable budget of
// consecutive failures.
//
// A Conn is owned by a single goroutine. None of its methods are safe for
// concurrent use, and closing the underlying endpoint from another
// goroutine while an operation is in flight is not supported.
package sio

import (
	"errors"
	"fmt"
	"io"
	"time"

	"siocat/pkg/format"
)

// Mode selects whether the underlying endpoint blocks on I/O or returns
// not-ready conditions that sio retries internally.
type Mode int

const (
	// NonBlocking endpoints report not-ready conditions; sio waits for
	// readiness between attempts.
	NonBlocking Mode = iota
	// Blocking endpoints complete or fail each operation on their own.
	Blocking
)

// State is the lifecycle of a connection handle.
type State int

const (
	StateUnconnected State = iota
	StateConnecting
	StateConnected
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "closed"
	}
}

// Options configures a connection handle.
type Options struct {
	Mode Mode

	// Timeout is the readiness wait budget spent on each retry of a
	// transfer, and on resolving an in-flight connect attempt.
	Timeout time.Duration

	// MaxFails is the number of back-to-back transient failures tolerated
	// before a transfer is abandoned. Any forward progress resets the
	// count. Must be at least 1.
	MaxFails int
}

// Conn is a connection handle: an endpoint plus the retry configuration
// threaded through establishment and transfers. Create one with Configure.
type Conn struct {
	transport Transport
	mode      Mode
	timeout   time.Duration
	maxFails  int

	state State
}

// Configure builds a connection handle around t. It rejects configurations
// that would make the retry loop degenerate: a failure budget below 1 would
// turn every transient condition fatal.
func Configure(t Transport, opts Options) (*Conn, error) {
	if t == nil {
		return nil, fmt.Errorf("transport must not be nil")
	}
	if opts.MaxFails < 1 {
		return nil, fmt.Errorf("failure budget must be at least 1, got %d", opts.MaxFails)
	}
	if opts.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative, got %s", opts.Timeout)
	}

	return &Conn{
		transport: t,
		mode:      opts.Mode,
		timeout:   opts.Timeout,
		maxFails:  opts.MaxFails,
		state:     StateUnconnected,
	}, nil
}

// State returns the handle's lifecycle state.
func (c *Conn) State() State {
	return c.state
}

// Establish connects the handle to host:port.
//
// On a blocking endpoint the underlying connect either succeeds outright or
// fails fatally. On a non-blocking endpoint the attempt commonly resolves
// asynchronously: Establish then waits up to the configured timeout for the
// endpoint to become writable and reads the pending completion status,
// since writability alone does not prove a connect succeeded. A non-zero
// status is surfaced as *AsyncConnectError.
//
// Establish does not retry a failed or timed-out attempt; that policy
// belongs to the caller, who should tear the handle down first.
func (c *Conn) Establish(host string, port int) error {
	switch c.state {
	case StateClosed:
		return ErrClosed
	case StateConnected:
		return fmt.Errorf("already connected")
	}

	addr := format.Addr(host, port)
	c.state = StateConnecting

	err := c.transport.Connect(host, port)
	if err == nil {
		c.state = StateConnected
		return nil
	}
	if !errors.Is(err, ErrInProgress) {
		return fmt.Errorf("connect %s: %w", addr, err)
	}
	if c.mode == Blocking {
		// A blocking endpoint has no business resolving asynchronously.
		return fmt.Errorf("connect %s: unexpected in-progress result on blocking endpoint", addr)
	}

	ready, err := c.transport.Wait(Send, c.timeout)
	if err != nil {
		return fmt.Errorf("waiting for connect %s: %w", addr, err)
	}
	if !ready {
		return fmt.Errorf("connect %s: %w", addr, ErrConnectTimeout)
	}

	if perr := c.transport.PendingError(); perr != nil {
		return &AsyncConnectError{Cause: perr}
	}

	c.state = StateConnected
	return nil
}

// SendAll transfers all of p, retrying transient not-ready conditions.
// It blocks for at most MaxFails * Timeout across consecutive failures,
// plus the time spent on successful partial writes; callers sizing their
// own timeouts should budget for that bound. A failed send reports no
// partial byte count.
func (c *Conn) SendAll(p []byte) error {
	if err := c.requireConnected(); err != nil {
		return err
	}
	return c.transfer(p, Send)
}

// ReceiveAll reads exactly n bytes, retrying transient not-ready conditions
// under the same MaxFails * Timeout bound as SendAll. A zero-byte read is
// treated as the peer having closed the connection and fails immediately
// with ErrPeerClosed.
func (c *Conn) ReceiveAll(n int) ([]byte, error) {
	if err := c.requireConnected(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("receive length must not be negative, got %d", n)
	}

	buf := make([]byte, n)
	if err := c.transfer(buf, Receive); err != nil {
		return nil, err
	}
	return buf, nil
}

// Teardown releases the endpoint and marks the handle closed. It is safe
// to call more than once. A closed handle can never be revived.
func (c *Conn) Teardown() {
	if c.state == StateClosed {
		return
	}
	_ = c.transport.Close()
	c.state = StateClosed
}

func (c *Conn) requireConnected() error {
	switch c.state {
	case StateClosed:
		return ErrClosed
	case StateConnected:
		return nil
	default:
		return fmt.Errorf("not connected (state %s)", c.state)
	}
}

// Stream returns an io.ReadWriteCloser view of the connection for code
// that pipes data rather than exchanging fixed-length messages. Write is
// SendAll; Read performs a single bounded-retry receive and returns as
// soon as any data arrives, with io.EOF once the peer closes. Close tears
// the handle down.
func (c *Conn) Stream() io.ReadWriteCloser {
	return &stream{c: c}
}

type stream struct {
	c *Conn
}

func (s *stream) Read(p []byte) (int, error) {
	if err := s.c.requireConnected(); err != nil {
		return 0, err
	}
	return s.c.receiveSome(p)
}

func (s *stream) Write(p []byte) (int, error) {
	if err := s.c.SendAll(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *stream) Close() error {
	s.c.Teardown()
	return nil
}
