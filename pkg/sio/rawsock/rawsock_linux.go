//go:build linux
// +build linux

// Package rawsock implements sio.Transport directly on a socket descriptor
// using golang.org/x/sys/unix. It is the transport of choice on Linux:
// non-blocking connects resolve through poll(2) plus SO_ERROR, and
// would-block conditions surface as sio.ErrNotReady for the retry loop.
package rawsock

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"

	"siocat/pkg/format"
	"siocat/pkg/sio"
)

// Transport is a raw stream-socket endpoint. The descriptor is owned
// exclusively by the transport and is never duplicated.
type Transport struct {
	fd       int
	nonblock bool
}

var _ sio.Transport = (*Transport)(nil)

// New creates an unconnected raw socket transport. The descriptor itself
// is created during Connect, once the address family is known.
func New(nonblock bool) *Transport {
	return &Transport{fd: -1, nonblock: nonblock}
}

// FD returns the underlying descriptor, or -1 before Connect and after
// Close.
func (t *Transport) FD() int {
	return t.fd
}

// Connect resolves host:port, creates the socket and issues the connect
// attempt. For a non-blocking socket an unresolved attempt is reported as
// sio.ErrInProgress; the descriptor stays open so the caller can wait for
// writability and read the completion status.
func (t *Transport) Connect(host string, port int) error {
	addr := format.Addr(host, port)

	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return fmt.Errorf("net.ResolveTCPAddr(tcp, %s): %w", addr, err)
	}

	sa, family, err := sockaddr(tcpAddr)
	if err != nil {
		return err
	}

	fd, err := unix.Socket(family, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("socket: %w", err)
	}

	if t.nonblock {
		if err := unix.SetNonblock(fd, true); err != nil {
			_ = unix.Close(fd)
			return fmt.Errorf("setting non-blocking mode: %w", err)
		}
	}

	if err := unix.Connect(fd, sa); err != nil {
		// EINTR on connect also means the attempt continues in the
		// background and resolves like EINPROGRESS.
		if err == unix.EINPROGRESS || err == unix.EINTR {
			t.fd = fd
			return sio.ErrInProgress
		}
		_ = unix.Close(fd)
		return fmt.Errorf("connect %s: %w", addr, err)
	}

	t.fd = fd
	return nil
}

// Send attempts one write of up to len(p) bytes.
func (t *Transport) Send(p []byte) (int, error) {
	n, err := unix.Write(t.fd, p)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, sio.ErrNotReady
		}
		return 0, fmt.Errorf("write: %w", err)
	}
	return n, nil
}

// Recv attempts one read of up to len(p) bytes. (0, nil) means the peer
// closed the connection.
func (t *Transport) Recv(p []byte) (int, error) {
	n, err := unix.Read(t.fd, p)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, sio.ErrNotReady
		}
		return 0, fmt.Errorf("read: %w", err)
	}
	return n, nil
}

// PendingError reads SO_ERROR, the completion status the kernel records
// for an asynchronous connect attempt.
func (t *Transport) PendingError() error {
	v, err := unix.GetsockoptInt(t.fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return fmt.Errorf("getsockopt(SO_ERROR): %w", err)
	}
	if v != 0 {
		return unix.Errno(v)
	}
	return nil
}

// Close releases the descriptor. Safe to call more than once.
func (t *Transport) Close() error {
	if t.fd < 0 {
		return nil
	}
	err := unix.Close(t.fd)
	t.fd = -1
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

func sockaddr(addr *net.TCPAddr) (unix.Sockaddr, int, error) {
	if ip4 := addr.IP.To4(); ip4 != nil {
		sa := &unix.SockaddrInet4{Port: addr.Port}
		copy(sa.Addr[:], ip4)
		return sa, unix.AF_INET, nil
	}
	if ip6 := addr.IP.To16(); ip6 != nil {
		sa := &unix.SockaddrInet6{Port: addr.Port}
		copy(sa.Addr[:], ip6)
		return sa, unix.AF_INET6, nil
	}
	return nil, 0, fmt.Errorf("unusable address: %s", addr)
}
