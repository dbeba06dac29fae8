// Package transport selects and constructs the endpoint implementation
// behind a sio connection handle.
//
// Each protocol lives in its own subpackage:
//   - tcp: raw stream sockets; on Linux this is the rawsock transport
//     with real non-blocking descriptors, elsewhere a dialed net.Conn
//   - ws: WebSocket endpoints (ws and wss) via coder/websocket
//   - udp: reliable delivery over UDP via the KCP protocol
//
// The ws and udp endpoints have no usable descriptor, so they always ride
// on the netconn transport, where the readiness wait is folded into I/O
// deadlines.
package transport

import (
	"context"

	"siocat/pkg/config"
	"siocat/pkg/sio"
	"siocat/pkg/sio/netconn"
	"siocat/pkg/transport/tcp"
	"siocat/pkg/transport/udp"
	"siocat/pkg/transport/ws"
)

// New builds the transport for the configured protocol. The context is
// used by dialers that support cancellation (WebSocket).
func New(ctx context.Context, cfg *config.Shared) sio.Transport {
	nonblock := !cfg.Blocking

	switch cfg.Protocol {
	case config.ProtoWS, config.ProtoWSS:
		return netconn.New(ws.NewDialFunc(ctx, cfg.Protocol), nonblock, cfg.Timeout())

	case config.ProtoUDP:
		return netconn.New(udp.NewDialFunc(), nonblock, cfg.Timeout())

	default:
		return tcp.NewTransport(nonblock, cfg.Timeout())
	}
}
