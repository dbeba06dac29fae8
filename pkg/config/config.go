// Package config holds the shared configuration threaded through siocat's
// commands and transports.
package config

import (
	"fmt"
	"time"

	"siocat/pkg/log"
)

// Protocol identifies the endpoint implementation to dial with.
type Protocol int

const (
	ProtoTCP Protocol = iota
	ProtoWS
	ProtoWSS
	ProtoUDP
)

func (p Protocol) String() string {
	switch p {
	case ProtoWS:
		return "ws"
	case ProtoWSS:
		return "wss"
	case ProtoUDP:
		return "udp"
	default:
		return "tcp"
	}
}

// Shared is the configuration common to all siocat commands.
type Shared struct {
	Protocol Protocol
	Host     string
	Port     int

	// Blocking disables the not-ready retry machinery: each operation on
	// the endpoint completes or fails on its own.
	Blocking bool

	// TimeoutSec is the readiness wait budget, in seconds, spent per retry.
	TimeoutSec int

	// MaxFails is the number of consecutive transient failures tolerated
	// before a transfer is abandoned.
	MaxFails int

	LogFile string
	Raw     bool
	Verbose bool

	Logger *log.Logger
}

// Timeout returns the per-retry wait budget as a duration.
func (c *Shared) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// Validate checks the configuration and returns all problems found.
func (c *Shared) Validate() []error {
	var errors []error

	if c.Host == "" {
		errors = append(errors, fmt.Errorf("specify a host"))
	}

	if err := validatePort(c.Port); err != nil {
		errors = append(errors, err)
	}

	if c.TimeoutSec < 0 {
		errors = append(errors, fmt.Errorf("'--timeout' must not be negative"))
	}

	// A budget of 0 would make the first would-block condition fatal,
	// defeating the point of a non-blocking endpoint.
	if c.MaxFails < 1 {
		errors = append(errors, fmt.Errorf("'--max-fails' must be at least 1"))
	}

	return errors
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port %d not in [1, 65535]", port)
	}

	return nil
}
