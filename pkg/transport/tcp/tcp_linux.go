//go:build linux
// +build linux

// Package tcp provides the TCP endpoint for sio connections. On Linux it
// hands out the raw socket transport; elsewhere it falls back to a dialed
// net.Conn wrapped in the netconn transport.
package tcp

import (
	"time"

	"siocat/pkg/sio"
	"siocat/pkg/sio/rawsock"
)

// NewTransport creates a raw socket transport. The timeout is unused here:
// rawsock waits for readiness via poll, driven by the connection handle.
func NewTransport(nonblock bool, _ time.Duration) sio.Transport {
	return rawsock.New(nonblock)
}
