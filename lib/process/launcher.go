// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/Tsseva31/warehouse-bot/lib/fault"
)

const step = "handoff"

// Mode selects the handoff strategy.
type Mode string

const (
	// ModeExec replaces the entrypoint with the application.
	ModeExec Mode = "exec"

	// ModeSupervise runs the application as a child and relays signals
	// and exit status.
	ModeSupervise Mode = "supervise"
)

// ParseMode validates a mode name. The empty string means ModeExec.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case "", ModeExec:
		return ModeExec, nil
	case ModeSupervise:
		return ModeSupervise, nil
	default:
		return "", fmt.Errorf("unknown handoff mode %q (want %q or %q)", name, ModeExec, ModeSupervise)
	}
}

// Launcher transfers control to the application. argv[0] is the
// command; env is the complete environment.
type Launcher interface {
	Launch(argv, env []string) error
}

// NewLauncher returns the launcher for mode.
func NewLauncher(mode Mode, logger *slog.Logger) (Launcher, error) {
	switch mode {
	case "", ModeExec:
		return &Replacer{Logger: logger}, nil
	case ModeSupervise:
		return &Supervisor{Logger: logger}, nil
	default:
		return nil, fault.Configuration("config", "unknown handoff mode %q", mode)
	}
}

// lookPath is exec.LookPath, replaceable in tests.
var lookPath = exec.LookPath

// Resolve returns the path to execute for command. Names without a
// slash are searched in PATH; anything else is used as given. A
// missing command is a handoff fault with exit code 127; one that
// exists but cannot be executed is a handoff fault with exit code 126.
func Resolve(command string) (string, error) {
	if command == "" {
		return "", fault.Configuration(step, "no application command")
	}
	if strings.Contains(command, "/") {
		return command, nil
	}

	path, err := lookPath(command)
	if err == nil {
		return path, nil
	}
	if errors.Is(err, fs.ErrPermission) {
		return "", fault.Handoff(step, "%s: %w", command, err).WithCode(fault.ExitNotExecutable)
	}
	return "", fault.Handoff(step, "%s: command not found in PATH: %w", command, err).WithCode(fault.ExitNotFound)
}

// startFailure classifies an execve or fork failure.
func startFailure(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fault.Handoff(step, "exec %s: %w", path, err).WithCode(fault.ExitNotFound)
	}
	return fault.Handoff(step, "exec %s: %w", path, err).WithCode(fault.ExitNotExecutable)
}

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
