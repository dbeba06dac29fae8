// Package format provides small formatting helpers shared across siocat.
package format

import (
	"net"
	"strconv"
)

// Addr renders host and port as a dialable address, bracketing IPv6 hosts.
func Addr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
