package pipeio

import (
	"os"

	"github.com/muesli/cancelreader"
)

// Stdio provides a ReadWriteCloser over standard I/O. Reads from stdin go
// through a cancelable reader when the platform supports one, so a Close
// from the other pipe direction can interrupt a pending read.
type Stdio struct {
	stdin            *os.File
	cancellableStdin cancelreader.CancelReader

	stdout *os.File
}

// NewStdio creates a new Stdio with cancelable stdin reading if supported
// by the platform.
func NewStdio() *Stdio {
	out := Stdio{
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}

	cancellableStdin, err := cancelreader.NewReader(os.Stdin)
	if err != nil {
		return &out
	}

	out.cancellableStdin = cancellableStdin
	return &out
}

// Read reads from stdin, using the cancelable reader if available.
func (s *Stdio) Read(p []byte) (n int, err error) {
	if s.cancellableStdin != nil {
		return s.cancellableStdin.Read(p)
	}

	return s.stdin.Read(p)
}

// Write writes to stdout.
func (s *Stdio) Write(p []byte) (n int, err error) {
	return s.stdout.Write(p)
}

// Close cancels any pending reads from stdin if using a cancelable reader.
func (s *Stdio) Close() error {
	if s.cancellableStdin != nil {
		s.cancellableStdin.Cancel()
	}
	return nil
}
