package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"siocat/cmd/connect"
	"siocat/cmd/recv"
	"siocat/cmd/send"
	"siocat/cmd/version"
	"siocat/pkg/log"
)

func main() {
	root := &cli.Command{
		Name:  "siocat",
		Usage: "reliable full-length socket I/O probe",
		Commands: []*cli.Command{
			connect.GetCommand(),
			send.GetCommand(),
			recv.GetCommand(),
			version.GetCommand(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.ErrorMsg("%s\n", err)
		os.Exit(1)
	}
}
