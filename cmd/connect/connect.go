// Package connect implements the connect command, which establishes a
// connection and pipes the local terminal to it.
package connect

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"siocat/cmd/shared"
	"siocat/pkg/log"
	"siocat/pkg/terminal"
)

// RawFlag is the name of the flag enabling raw terminal mode.
const RawFlag = "raw"

// GetCommand returns the CLI command for connect mode.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:        "connect",
		Usage:       "Connect to a remote endpoint and pipe stdin/stdout to it",
		ArgsUsage:   shared.GetArgsUsage(),
		Description: shared.GetBaseDescription(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := shared.ParseArgs(cmd)
			if err != nil {
				return err
			}
			cfg.Raw = cmd.Bool(RawFlag)

			conn, err := shared.Establish(ctx, cfg)
			if err != nil {
				return err
			}
			defer conn.Teardown()

			stream := conn.Stream()
			if cfg.LogFile != "" {
				stream, err = log.NewLoggedStream(stream, cfg.LogFile)
				if err != nil {
					return fmt.Errorf("log.NewLoggedStream(%s): %w", cfg.LogFile, err)
				}
			}

			if cfg.Raw {
				return terminal.PipeRaw(stream, cfg.Logger)
			}
			terminal.Pipe(stream, cfg.Logger)
			return nil
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:     RawFlag,
				Aliases:  []string{"r"},
				Usage:    "Put the local terminal into raw mode while connected",
				Value:    false,
				Required: false,
			},
		}, shared.GetCommonFlags()...),
	}
}
