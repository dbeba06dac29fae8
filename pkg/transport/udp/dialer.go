// Package udp provides reliable UDP endpoints for sio connections using
// the KCP protocol. KCP turns lossy datagrams into an ordered stream, so
// the full-length transfer contract holds over UDP as well.
package udp

import (
	"fmt"
	"net"

	kcp "github.com/xtaci/kcp-go/v5"

	"siocat/pkg/sio/netconn"
)

// NewDialFunc returns a dial function establishing a KCP session over UDP
// to the given address.
func NewDialFunc() netconn.DialFunc {
	return func(addr string) (net.Conn, error) {
		raddr, err := net.ResolveUDPAddr("udp", addr)
		if err != nil {
			return nil, fmt.Errorf("net.ResolveUDPAddr(udp, %s): %w", addr, err)
		}

		// Local address ":0" lets the OS pick an ephemeral port.
		conn, err := net.ListenPacket("udp", ":0")
		if err != nil {
			return nil, fmt.Errorf("net.ListenPacket(udp, :0): %w", err)
		}

		kcpConn, err := kcp.NewConn(raddr.String(), nil, 0, 0, conn)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("kcp.NewConn(%s): %w", raddr.String(), err)
		}

		// Stream mode with fast retransmit and congestion control off;
		// latency matters more than fairness for an interactive probe.
		kcpConn.SetNoDelay(1, 10, 2, 1)
		kcpConn.SetStreamMode(true)
		kcpConn.SetWindowSize(1024, 1024)

		return kcpConn, nil
	}
}
