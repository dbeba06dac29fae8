// Package log provides colored console logging and traffic capture for
// siocat.
package log

import (
	"os"

	"github.com/fatih/color"
)

var red = color.New(color.FgRed).FprintfFunc()
var blue = color.New(color.FgBlue).FprintfFunc()
var yellow = color.New(color.FgYellow).FprintfFunc()

// ErrorMsg prints an error message to stderr in red color.
func ErrorMsg(format string, a ...interface{}) {
	red(os.Stderr, "[!] Error: "+format, a...)
}

// InfoMsg prints an informational message to stderr in blue color.
func InfoMsg(format string, a ...interface{}) {
	blue(os.Stderr, "[+] "+format, a...)
}

// Logger adds verbose-gated output on top of the package-level helpers.
type Logger struct {
	Verbose bool
}

// New creates a Logger.
func New(verbose bool) *Logger {
	return &Logger{Verbose: verbose}
}

// ErrorMsg prints an error message to stderr in red color.
func (l *Logger) ErrorMsg(format string, a ...interface{}) {
	ErrorMsg(format, a...)
}

// InfoMsg prints an informational message to stderr in blue color.
func (l *Logger) InfoMsg(format string, a ...interface{}) {
	InfoMsg(format, a...)
}

// VerboseMsg prints a diagnostic message to stderr in yellow color, but
// only when verbose logging is enabled.
func (l *Logger) VerboseMsg(format string, a ...interface{}) {
	if !l.Verbose {
		return
	}
	yellow(os.Stderr, "[*] "+format, a...)
}
