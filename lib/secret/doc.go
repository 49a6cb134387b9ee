// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds credential material in memory that lives
// outside the Go heap for the short window between reading it from
// the environment and writing it to disk.
//
// [Buffer] allocates via mmap(MAP_ANONYMOUS), tries to lock the pages
// into RAM with mlock, and marks them excluded from core dumps with
// madvise(MADV_DONTDUMP). Containers frequently run with a zero
// RLIMIT_MEMLOCK, so a failed mlock is reported through
// [Buffer.Locked] rather than returned as an error. On Close the
// memory is zeroed and unmapped.
//
// Constructors:
//
//   - [New] -- a zero-filled buffer of a given size
//   - [NewFromString] -- copies a string into protected memory
//   - [FromLookup] -- reads a named variable through a lookup function
//     and rejects unset and empty values
//
// [Buffer.WriteTo] streams the contents to a writer without an
// intermediate heap copy.
//
// Depends on golang.org/x/sys/unix.
package secret
