// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for the entrypoint
// packages.
//
// [Lookup] builds an environment lookup function from a map, so tests
// exercise credential and config handling without mutating the real
// process environment.
//
// [ReadOnlyDir] creates a directory the test process cannot write to,
// skipping the test when running as root (where permission bits are
// not enforced). [FileInTheWay] and [DanglingSymlink] produce paths
// the filesystem refuses to create regardless of the caller's
// privileges.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with time.After fallback) so individual tests do not need
// direct time.After calls.
//
// All helpers call t.Fatalf or t.Skip on failure rather than returning
// errors, since test setup failures are not recoverable.
//
// Depends on lib/secret for the lookup function type. Tests inside
// lib/secret cannot import this package.
package testutil
