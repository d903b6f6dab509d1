package cli

import "errors"

// ErrUsage marks command-line usage errors so main can exit distinctly.
var ErrUsage = errors.New("invalid usage")

// Exit codes for segtok.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitError indicates a processing or I/O failure.
	ExitError = 1

	// ExitUsage indicates invalid command-line usage.
	ExitUsage = 2
)

// ExitCode maps an Execute error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitUsage
	default:
		return ExitError
	}
}
