// Package send implements the send command, which transfers the entire
// stdin payload to a remote endpoint.
package send

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"siocat/cmd/shared"
)

// GetCommand returns the CLI command for send mode.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:        "send",
		Usage:       "Send everything read from stdin, all of it or fail",
		ArgsUsage:   shared.GetArgsUsage(),
		Description: shared.GetBaseDescription(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := shared.ParseArgs(cmd)
			if err != nil {
				return err
			}

			payload, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}

			conn, err := shared.Establish(ctx, cfg)
			if err != nil {
				return err
			}
			defer conn.Teardown()

			if err := conn.SendAll(payload); err != nil {
				return fmt.Errorf("sending %d bytes: %w", len(payload), err)
			}

			cfg.Logger.InfoMsg("Sent %d bytes\n", len(payload))
			return nil
		},
		Flags: shared.GetCommonFlags(),
	}
}
