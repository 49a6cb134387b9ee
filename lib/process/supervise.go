// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/Tsseva31/warehouse-bot/lib/fault"
)

// ForwardedSignals are relayed from the supervisor to the application.
var ForwardedSignals = []os.Signal{
	unix.SIGINT,
	unix.SIGTERM,
	unix.SIGHUP,
	unix.SIGQUIT,
	unix.SIGUSR1,
	unix.SIGUSR2,
	unix.SIGWINCH,
}

// Supervisor hands off by running the application as a child process.
// Use it where execve is unavailable or a supervising PID 1 is wanted.
// Every signal in ForwardedSignals that reaches the supervisor is sent
// to the child; the supervisor exits only when the child does.
type Supervisor struct {
	// Stdin, Stdout, and Stderr default to the supervisor's own.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Logger *slog.Logger
}

// Launch runs argv and blocks until it exits. A zero exit returns nil;
// any other status returns an *ExitError with the exact code.
func (s *Supervisor) Launch(argv, env []string) error {
	if len(argv) == 0 {
		return fault.Configuration(step, "no application command")
	}
	path, err := Resolve(argv[0])
	if err != nil {
		return err
	}
	logger := defaultLogger(s.Logger)

	command := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Env:    env,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	if s.Stdin != nil {
		command.Stdin = s.Stdin
	}
	if s.Stdout != nil {
		command.Stdout = s.Stdout
	}
	if s.Stderr != nil {
		command.Stderr = s.Stderr
	}

	// Register before Start so a signal that arrives while the child
	// is starting is queued rather than killing the supervisor.
	signals := make(chan os.Signal, 8)
	signal.Notify(signals, ForwardedSignals...)
	defer signal.Stop(signals)

	if err := command.Start(); err != nil {
		return startFailure(path, err)
	}
	logger.Info("supervising application", "path", path, "argv", argv, "pid", command.Process.Pid)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case received := <-signals:
				logger.Debug("forwarding signal", "signal", received.String(), "pid", command.Process.Pid)
				if err := command.Process.Signal(received); err != nil && !errors.Is(err, os.ErrProcessDone) {
					logger.Warn("forwarding signal failed", "signal", received.String(), "error", err)
				}
			case <-done:
				return
			}
		}
	}()

	waitErr := command.Wait()
	close(done)

	code := exitStatus(command.ProcessState)
	logger.Info("application exited", "status", code)
	if code == 0 && waitErr == nil {
		return nil
	}
	return &ExitError{Code: code}
}

// exitStatus maps a finished process to a shell-style exit status:
// the exit code, or 128+N for death by signal N.
func exitStatus(state *os.ProcessState) int {
	if state == nil {
		return 1
	}
	if status, ok := state.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	return state.ExitCode()
}
