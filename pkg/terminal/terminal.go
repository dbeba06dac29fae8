// Package terminal connects the local terminal to an established
// connection.
package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"siocat/pkg/log"
	"siocat/pkg/pipeio"
)

// Pipe shuttles data between the local terminal and the connection until
// either side closes.
func Pipe(stream io.ReadWriteCloser, logger *log.Logger) {
	pipeio.Pipe(pipeio.NewStdio(), stream, func(err error) {
		logger.VerboseMsg("Pipe(stdio, stream): %s\n", err)
	})
}

// PipeRaw is Pipe with the local terminal switched to raw mode, so
// control characters travel to the remote side instead of being
// interpreted locally.
func PipeRaw(stream io.ReadWriteCloser, logger *log.Logger) error {
	logger.InfoMsg("Enabling raw mode\n")
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("setting terminal to raw mode: %w", err)
	}

	defer func() {
		logger.InfoMsg("Disabling raw mode\n")
		term.Restore(int(os.Stdin.Fd()), oldState)
		fmt.Printf("\033[2K\r") // clear line
	}()

	Pipe(stream, logger)

	return nil
}
