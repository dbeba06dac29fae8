package shared

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"siocat/pkg/config"
	"siocat/pkg/log"
	"siocat/pkg/sio"
	"siocat/pkg/transport"
)

// ParseArgs parses the transport argument and flags into a validated
// configuration.
func ParseArgs(cmd *cli.Command) (*config.Shared, error) {
	args := cmd.Args()
	if args.Len() != 1 {
		return nil, fmt.Errorf("must provide exactly one argument, got %d (%s)", args.Len(), strings.Join(args.Slice(), ", "))
	}

	proto, host, port, err := ParseTransport(args.Get(0))
	if err != nil {
		return nil, fmt.Errorf("parsing transport: %w", err)
	}

	cfg := ConfigFromCommand(cmd, proto, host, port)

	if errors := config.Validate(cfg); len(errors) > 0 {
		log.ErrorMsg("Argument validation errors:\n")
		for _, err := range errors {
			log.ErrorMsg(" - %s\n", err)
		}
		return nil, fmt.Errorf("exiting")
	}

	return cfg, nil
}

// Establish builds the transport for cfg and connects a handle over it.
// On failure the handle is already torn down.
func Establish(ctx context.Context, cfg *config.Shared) (*sio.Conn, error) {
	mode := sio.NonBlocking
	if cfg.Blocking {
		mode = sio.Blocking
	}

	conn, err := sio.Configure(transport.New(ctx, cfg), sio.Options{
		Mode:     mode,
		Timeout:  cfg.Timeout(),
		MaxFails: cfg.MaxFails,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring connection: %w", err)
	}

	cfg.Logger.InfoMsg("Connecting to %s://%s:%d\n", cfg.Protocol, cfg.Host, cfg.Port)
	if err := conn.Establish(cfg.Host, cfg.Port); err != nil {
		conn.Teardown()
		return nil, fmt.Errorf("establishing connection: %w", err)
	}
	cfg.Logger.VerboseMsg("Connection established\n")

	return conn, nil
}
