package log

import (
	"fmt"
	"io"
	"os"
)

// loggedStream wraps a stream and appends all data read from or written to
// it to a capture file.
type loggedStream struct {
	rwc     io.ReadWriteCloser
	logFile *os.File
}

func (ls *loggedStream) Read(b []byte) (int, error) {
	n, err := ls.rwc.Read(b)
	if n > 0 {
		if _, werr := ls.logFile.Write(b[:n]); werr != nil {
			return 0, fmt.Errorf("logging read data: %w", werr)
		}
	}
	return n, err
}

func (ls *loggedStream) Write(b []byte) (int, error) {
	n, err := ls.rwc.Write(b)
	if n > 0 {
		if _, werr := ls.logFile.Write(b[:n]); werr != nil {
			return 0, fmt.Errorf("logging written data: %w", werr)
		}
	}
	return n, err
}

func (ls *loggedStream) Close() error {
	err := ls.rwc.Close()
	if cerr := ls.logFile.Close(); err == nil {
		err = cerr
	}
	return err
}

// NewLoggedStream wraps a stream so that all traffic in both directions is
// also appended to the capture file at path, which is created if missing.
func NewLoggedStream(rwc io.ReadWriteCloser, path string) (io.ReadWriteCloser, error) {
	logFile, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &loggedStream{rwc: rwc, logFile: logFile}, nil
}
