// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package credential materializes a service-account credential from an
// environment variable into a file the application reads at startup.
//
// [Materialize] reads the variable through an injected lookup function
// (never the process environment directly), holds the value in a
// [secret.Buffer], and writes it atomically: temporary file in the
// destination directory, fsync, rename, fsync of the directory. A
// reader sees either the previous complete file or the new complete
// file, never a prefix. The file content is the variable's value
// followed by exactly one newline.
//
// Failures are [fault.Error] values: a missing or empty variable is a
// configuration fault and leaves the destination untouched; anything
// the filesystem refuses is an I/O fault. An existing destination that
// is not a regular file is refused rather than replaced.
//
// The credential is never logged. [Fingerprint] gives a short BLAKE3
// digest for correlating deployments in logs.
package credential
