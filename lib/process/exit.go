// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Tsseva31/warehouse-bot/lib/fault"
)

// ExitError relays the application's exit status from supervise mode.
// It is not a failure of the entrypoint, so Fatal exits with Code
// without printing anything.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("application exited with status %d", e.Code)
}

// ExitCode returns the application's status.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Fatal writes "error: err" to stderr and exits with the code carried
// by err (1 when it carries none). Use it in main() for errors from
// run() where the structured logger may not be initialized.
func Fatal(err error) {
	os.Exit(report(os.Stderr, err))
}

// report writes the diagnostic for err to writer and returns the exit
// code.
func report(writer io.Writer, err error) int {
	var exitError *ExitError
	if !errors.As(err, &exitError) {
		fmt.Fprintf(writer, "error: %v\n", err)
	}
	return fault.ExitCode(err)
}
