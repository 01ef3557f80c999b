// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, blank text, out of range).
	UserError = 1

	// AuthError indicates a Google Tasks auth/config error.
	AuthError = 2

	// StorageError indicates the key-value store could not be read or written.
	StorageError = 3
)
