//go:build !linux
// +build !linux

package tcp

import (
	"net"
	"time"

	"siocat/pkg/sio"
	"siocat/pkg/sio/netconn"
)

// NewTransport creates a TCP transport over a dialed net.Conn. The dial
// itself is bounded by the same timeout that bounds each retry.
func NewTransport(nonblock bool, timeout time.Duration) sio.Transport {
	dial := func(addr string) (net.Conn, error) {
		d := net.Dialer{Timeout: timeout}
		return d.Dial("tcp", addr)
	}
	return netconn.New(dial, nonblock, timeout)
}
