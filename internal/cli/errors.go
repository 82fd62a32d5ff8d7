package cli

import (
	"errors"
	"fmt"
	"io"

	goflags "github.com/jessevdk/go-flags"

	"github.com/runnerr0/newsreports/internal/storage"
)

// Exit codes returned by ExitCode.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitCode describes err on w and returns the process exit status. Usage
// errors were already printed by the parser.
func ExitCode(w io.Writer, err error) int {
	if err == nil {
		return ExitOK
	}

	var flagsErr *goflags.Error
	if errors.As(err, &flagsErr) {
		if flagsErr.Type == goflags.ErrHelp {
			return ExitOK
		}
		return ExitUsage
	}

	var connErr *storage.ConnectError
	if errors.As(err, &connErr) {
		fmt.Fprintf(w, "Failed to connect to database named %s.\n", connErr.Database)
		fmt.Fprintln(w, connErr.Err)
		return ExitFailure
	}

	fmt.Fprintf(w, "reports: %v\n", err)
	return ExitFailure
}
