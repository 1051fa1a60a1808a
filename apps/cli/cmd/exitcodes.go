package cmd

import "os"

// Exit codes for the hit CLI
const (
	// ExitSuccess indicates the request completed and was rendered
	ExitSuccess = 0

	// ExitTransportError indicates the request could not be completed
	// (DNS, connection or TLS failure)
	ExitTransportError = 1

	// ExitConfigError indicates invalid flag values or an unreadable
	// data file, caught before any network work
	ExitConfigError = 2

	// ExitUsageError indicates invalid CLI usage, e.g. an unknown
	// subcommand
	ExitUsageError = 64
)

func defaultExit(code int) {
	os.Exit(code)
}
