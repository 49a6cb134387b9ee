// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process hands control from the entrypoint to the application
// and owns the entrypoint's exit path.
//
// Two [Launcher] implementations share one contract: the application's
// stdio, signals, and exit status become the container's.
//
//   - [Replacer] replaces the entrypoint's process image with
//     execve(2). On success it never returns. This is the default.
//   - [Supervisor] starts the application as a child, forwards
//     termination and job-control signals to it, waits, and relays its
//     exact exit status as an [ExitError] (128+N when the child died
//     from signal N).
//
// Neither retries the application.
//
// [Fatal] is the only place that writes raw error text to stderr and
// exits. It honors any ExitCode() in the error chain, so categorized
// faults and relayed application statuses both exit with the right code.
package process
