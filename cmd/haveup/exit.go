package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aither64/haveup"
)

// Process exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitAuth    = 2
	exitSkipped = 3
)

var (
	errMissingFiles  = errors.New("please specify file name")
	errInvalidConfig = errors.New("invalid configuration")
	errSkippedFiles  = errors.New("some files were skipped")
)

func invalidConfig(err error) error {
	return fmt.Errorf("%w: %w", errInvalidConfig, err)
}

// exitCode reports err on stderr and maps it to an exit code. Anything not
// listed here, such as an unknown profile or invalid configuration, is 1.
func exitCode(cmd *cobra.Command, stderr io.Writer, err error) int {
	if err == nil {
		return exitOK
	}

	switch {
	case errors.Is(err, errSkippedFiles):
		_, _ = fmt.Fprintln(stderr, err)
		return exitSkipped
	case errors.Is(err, haveup.ErrAuthentication):
		_, _ = fmt.Fprintln(stderr, "Authentication failed")
		return exitAuth
	case errors.Is(err, errMissingFiles):
		_, _ = fmt.Fprintln(stderr, err)
		_, _ = fmt.Fprint(stderr, cmd.UsageString())
		return exitFailure
	default:
		_ = (&haveup.HumanFormatter{}).FormatError(stderr, err)
		return exitFailure
	}
}
