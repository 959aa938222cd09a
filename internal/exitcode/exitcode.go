// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty text, unknown task).
	UserError = 1

	// ConfigError indicates an unreadable or invalid settings file.
	ConfigError = 2

	// StorageError indicates durable storage could not be read or written.
	StorageError = 3
)
