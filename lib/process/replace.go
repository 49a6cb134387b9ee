// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"log/slog"

	"golang.org/x/sys/unix"

	"github.com/Tsseva31/warehouse-bot/lib/fault"
)

// ExecFunc has the signature of unix.Exec.
type ExecFunc func(argv0 string, argv []string, envv []string) error

// Replacer hands off by replacing the current process image. The
// application inherits the PID, stdio descriptors, and therefore the
// container's signal delivery and exit status. Signal handlers
// installed by the Go runtime revert to their defaults across execve.
type Replacer struct {
	// Exec performs the execve. Nil means unix.Exec. Tests substitute
	// a recorder that returns an error instead of replacing the
	// process.
	Exec ExecFunc

	Logger *slog.Logger
}

// Launch resolves argv[0] and execs it. It returns only on failure.
func (r *Replacer) Launch(argv, env []string) error {
	if len(argv) == 0 {
		return fault.Configuration(step, "no application command")
	}
	path, err := Resolve(argv[0])
	if err != nil {
		return err
	}

	execFunction := r.Exec
	if execFunction == nil {
		execFunction = unix.Exec
	}

	defaultLogger(r.Logger).Info("exec'ing application", "path", path, "argv", argv)

	err = execFunction(path, argv, env)

	// Reaching here means execve failed and this process was not
	// replaced.
	return startFailure(path, err)
}
