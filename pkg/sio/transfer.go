package sio

import (
	"errors"
	"fmt"
	"io"
)

// transfer is the shared bounded-retry loop behind SendAll and ReceiveAll.
// It attempts the underlying operation for the remaining bytes, counts
// consecutive transient failures against the budget, and waits for
// readiness between retries. Any forward progress resets the counter: only
// back-to-back failures indicate a stalled connection. A timed-out wait is
// not an error on its own; the next attempt reports not-ready again and is
// counted like any other transient failure.
func (c *Conn) transfer(buf []byte, d Direction) error {
	total := 0
	fails := 0

	for total < len(buf) {
		n, err := c.attempt(buf[total:], d)
		switch {
		case err == nil && n > 0:
			total += n
			fails = 0

		case err == nil && d == Receive:
			// Zero-byte receive: the peer closed the connection. Never
			// retried, no matter how much budget is left.
			return fmt.Errorf("after %d of %d bytes: %w", total, len(buf), ErrPeerClosed)

		case err == nil || errors.Is(err, ErrNotReady):
			fails++
			if fails >= c.maxFails {
				return fmt.Errorf("%s stalled after %d consecutive failures: %w", d, fails, ErrBudgetExceeded)
			}
			if _, werr := c.transport.Wait(d, c.timeout); werr != nil {
				return fmt.Errorf("waiting for %s readiness: %w", d, werr)
			}

		default:
			return fmt.Errorf("%s: %w", d, err)
		}
	}

	return nil
}

func (c *Conn) attempt(p []byte, d Direction) (int, error) {
	if d == Send {
		return c.transport.Send(p)
	}
	return c.transport.Recv(p)
}

// receiveSome reads at least one byte under the usual retry rules and
// returns as soon as any data arrives. It backs the Stream adapter.
func (c *Conn) receiveSome(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	fails := 0
	for {
		n, err := c.transport.Recv(p)
		switch {
		case err == nil && n > 0:
			return n, nil

		case err == nil:
			return 0, io.EOF

		case errors.Is(err, ErrNotReady):
			fails++
			if fails >= c.maxFails {
				return 0, fmt.Errorf("receive stalled after %d consecutive failures: %w", fails, ErrBudgetExceeded)
			}
			if _, werr := c.transport.Wait(Receive, c.timeout); werr != nil {
				return 0, fmt.Errorf("waiting for receive readiness: %w", werr)
			}

		default:
			return 0, fmt.Errorf("receive: %w", err)
		}
	}
}
