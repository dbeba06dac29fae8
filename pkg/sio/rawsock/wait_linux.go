//go:build linux
// +build linux

package rawsock

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"siocat/pkg/sio"
)

// Wait blocks until the descriptor is ready for d or timeout elapses.
func (t *Transport) Wait(d sio.Direction, timeout time.Duration) (bool, error) {
	return WaitReady(t.fd, d, timeout)
}

// WaitReady polls a single descriptor for exactly one direction: POLLOUT
// for sends, POLLIN for receives. It reports whether the descriptor became
// ready before the timeout and never blocks longer than that. Interrupted
// polls are restarted against the remaining deadline, so signals do not
// shorten the wait.
//
// Readiness is all WaitReady reports. After an in-progress connect,
// writability only means the kernel has resolved the attempt; the outcome
// lives in SO_ERROR.
func WaitReady(fd int, d sio.Direction, timeout time.Duration) (bool, error) {
	events := int16(unix.POLLIN)
	if d == sio.Send {
		events = unix.POLLOUT
	}

	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining < 0 {
			remaining = 0
		}

		fds := []unix.PollFd{{Fd: int32(fd), Events: events}}
		n, err := unix.Poll(fds, int(remaining.Milliseconds()))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("poll: %w", err)
		}
		return n == 1, nil
	}
}
