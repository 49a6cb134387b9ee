// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fault

import (
	"errors"
	"fmt"
)

// Kind classifies an entrypoint failure.
type Kind string

const (
	// KindConfiguration indicates a required input is missing, empty,
	// or malformed: an unset credential variable, an invalid config
	// file, a working directory name that escapes the root.
	KindConfiguration Kind = "configuration"

	// KindIO indicates a filesystem operation failed: permission
	// denied, read-only mount, disk full, or an entry of the wrong
	// type occupying a path the entrypoint needs.
	KindIO Kind = "io"

	// KindHandoff indicates the application process could not be
	// started. Failures of the application itself are not faults;
	// they are the application's exit status.
	KindHandoff Kind = "handoff"

	// KindCanceled indicates a termination signal arrived before the
	// handoff completed.
	KindCanceled Kind = "canceled"
)

// Exit codes. Configuration and I/O follow sysexits.h; the handoff
// codes follow the shell's conventions for "found but not executable"
// and "not found".
const (
	ExitUsage         = 2
	ExitConfiguration = 78
	ExitIO            = 74
	ExitNotExecutable = 126
	ExitNotFound      = 127
	ExitCanceled      = 130
)

// Error is a categorized failure from one step of the bootstrap
// sequence. It wraps the underlying error so errors.Is and errors.As
// see the full chain (fs.ErrPermission, context.Canceled, ...).
type Error struct {
	// Kind classifies the failure and selects the exit code.
	Kind Kind

	// Step names the bootstrap step that failed ("credential",
	// "workdir", "handoff", "config").
	Step string

	// Err is the underlying error with the human-readable message.
	Err error

	// Code overrides the default exit code for Kind when non-zero.
	// Handoff uses it to distinguish not-found from not-executable.
	Code int
}

// Error returns "step: message".
func (e *Error) Error() string {
	if e.Step == "" {
		return e.Err.Error()
	}
	return e.Step + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// ExitCode returns the process exit code for this failure.
func (e *Error) ExitCode() int {
	if e.Code != 0 {
		return e.Code
	}
	switch e.Kind {
	case KindConfiguration:
		return ExitConfiguration
	case KindIO:
		return ExitIO
	case KindHandoff:
		return ExitNotExecutable
	case KindCanceled:
		return ExitCanceled
	default:
		return 1
	}
}

// WithCode returns e with its exit code overridden.
func (e *Error) WithCode(code int) *Error {
	e.Code = code
	return e
}

// Usage creates a command-line usage error. It is a configuration
// fault that exits with ExitUsage.
func Usage(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Step: "usage", Err: fmt.Errorf(format, args...), Code: ExitUsage}
}

// Configuration creates a configuration error for step.
func Configuration(step, format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Step: step, Err: fmt.Errorf(format, args...)}
}

// IO creates a filesystem error for step.
func IO(step, format string, args ...any) *Error {
	return &Error{Kind: KindIO, Step: step, Err: fmt.Errorf(format, args...)}
}

// Handoff creates a process handoff error for step.
func Handoff(step, format string, args ...any) *Error {
	return &Error{Kind: KindHandoff, Step: step, Err: fmt.Errorf(format, args...)}
}

// Canceled wraps a context error observed by step.
func Canceled(step string, err error) *Error {
	return &Error{Kind: KindCanceled, Step: step, Err: fmt.Errorf("interrupted before handoff: %w", err)}
}

// Is reports whether err is a fault of the given kind anywhere in its
// chain.
func Is(err error, kind Kind) bool {
	var faultError *Error
	if errors.As(err, &faultError) {
		return faultError.Kind == kind
	}
	return false
}

// ExitCode returns the exit code carried by err. Any error in the
// chain implementing ExitCode() int is honored, which covers both
// *Error and the application's relayed exit status. A nil error is 0;
// an uncategorized error is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}
