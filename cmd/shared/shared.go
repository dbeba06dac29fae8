// Package shared provides common CLI flag definitions and parsing helpers
// used across siocat's commands.
package shared

import (
	"strings"

	"github.com/urfave/cli/v3"

	"siocat/pkg/config"
	"siocat/pkg/log"
)

const categoryCommon = "common"

// BlockingFlag is the name of the flag selecting blocking-mode endpoints.
const BlockingFlag = "blocking"

// TimeoutFlag is the name of the flag for the per-retry wait budget in seconds.
const TimeoutFlag = "timeout"

// MaxFailsFlag is the name of the flag for the consecutive-failure budget.
const MaxFailsFlag = "max-fails"

// LogFileFlag is the name of the flag to capture connection traffic to a file.
const LogFileFlag = "log"

// VerboseFlag is the name of the flag to enable verbose error logging.
const VerboseFlag = "verbose"

// GetBaseDescription returns the base description text for transport
// specifications used in CLI commands.
func GetBaseDescription() string {
	return strings.Join([]string{
		"Specify the remote endpoint like this: tcp://127.0.0.1:123 (supports tcp|ws|wss|udp)",
		"A transfer aborts once it sees max-fails not-ready conditions in a row,",
		"waiting up to the timeout before each retry.",
	}, "\n")
}

// GetArgsUsage returns the arguments usage string for CLI commands.
func GetArgsUsage() string {
	return "transport"
}

// GetCommonFlags returns the CLI flags shared by all siocat commands.
func GetCommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:     BlockingFlag,
			Aliases:  []string{"b"},
			Usage:    "Use a blocking endpoint instead of non-blocking with retries",
			Category: categoryCommon,
			Value:    false,
			Required: false,
		},
		&cli.IntFlag{
			Name:     TimeoutFlag,
			Aliases:  []string{"t"},
			Usage:    "Readiness wait budget per retry, in seconds",
			Category: categoryCommon,
			Value:    10,
			Required: false,
		},
		&cli.IntFlag{
			Name:     MaxFailsFlag,
			Aliases:  []string{"m"},
			Usage:    "Consecutive transient failures tolerated before a transfer is abandoned",
			Category: categoryCommon,
			Value:    5,
			Required: false,
		},
		&cli.StringFlag{
			Name:     LogFileFlag,
			Aliases:  []string{"l"},
			Usage:    "Append all connection traffic to this file",
			Category: categoryCommon,
			Value:    "",
			Required: false,
		},
		&cli.BoolFlag{
			Name:     VerboseFlag,
			Aliases:  []string{"v"},
			Usage:    "Verbose error logging",
			Category: categoryCommon,
			Value:    false,
			Required: false,
		},
	}
}

// ConfigFromCommand builds the shared configuration from parsed flags and
// the transport argument.
func ConfigFromCommand(cmd *cli.Command, proto config.Protocol, host string, port int) *config.Shared {
	return &config.Shared{
		Protocol:   proto,
		Host:       host,
		Port:       port,
		Blocking:   cmd.Bool(BlockingFlag),
		TimeoutSec: int(cmd.Int(TimeoutFlag)),
		MaxFails:   int(cmd.Int(MaxFailsFlag)),
		LogFile:    cmd.String(LogFileFlag),
		Verbose:    cmd.Bool(VerboseFlag),
		Logger:     log.New(cmd.Bool(VerboseFlag)),
	}
}
