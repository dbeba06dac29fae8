// Package recv implements the recv command, which receives an exact
// number of bytes from a remote endpoint and writes them to stdout.
package recv

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"siocat/cmd/shared"
)

// LengthFlag is the name of the flag for the number of bytes to receive.
const LengthFlag = "length"

// GetCommand returns the CLI command for recv mode.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:        "recv",
		Usage:       "Receive an exact number of bytes and write them to stdout",
		ArgsUsage:   shared.GetArgsUsage(),
		Description: shared.GetBaseDescription(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := shared.ParseArgs(cmd)
			if err != nil {
				return err
			}

			length := int(cmd.Int(LengthFlag))
			if length < 0 {
				return fmt.Errorf("'--length' must not be negative, got %d", length)
			}

			conn, err := shared.Establish(ctx, cfg)
			if err != nil {
				return err
			}
			defer conn.Teardown()

			data, err := conn.ReceiveAll(length)
			if err != nil {
				return fmt.Errorf("receiving %d bytes: %w", length, err)
			}

			if _, err := os.Stdout.Write(data); err != nil {
				return fmt.Errorf("writing to stdout: %w", err)
			}

			cfg.Logger.InfoMsg("Received %d bytes\n", length)
			return nil
		},
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:     LengthFlag,
				Aliases:  []string{"n"},
				Usage:    "Number of bytes to receive",
				Required: true,
			},
		}, shared.GetCommonFlags()...),
	}
}
