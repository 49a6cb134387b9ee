// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ReadOnlyDir returns a new empty directory with mode 0555. Write
// permission is restored during cleanup so t.TempDir can remove it.
// Skips the test when running as root.
func ReadOnlyDir(t *testing.T) string {
	t.Helper()

	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	directory := t.TempDir()
	if err := os.Chmod(directory, 0555); err != nil {
		t.Fatalf("chmod %s: %v", directory, err)
	}
	t.Cleanup(func() { os.Chmod(directory, 0755) })
	return directory
}

// FileInTheWay returns a path whose parent is a regular file, so any
// attempt to stat, create, or write beneath it fails with ENOTDIR.
// Unlike [ReadOnlyDir] this holds for every user, root included.
func FileInTheWay(t *testing.T) string {
	t.Helper()

	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0644); err != nil {
		t.Fatalf("writing %s: %v", blocker, err)
	}
	return filepath.Join(blocker, "beneath")
}

// DanglingSymlink returns the path of a symlink whose target does not
// exist. Lookups beneath it report ENOENT, but os.MkdirAll cannot
// create it because the link itself occupies the name.
func DanglingSymlink(t *testing.T) string {
	t.Helper()

	directory := t.TempDir()
	link := filepath.Join(directory, "dangling")
	if err := os.Symlink(filepath.Join(directory, "missing-target"), link); err != nil {
		t.Fatalf("symlink %s: %v", link, err)
	}
	return link
}
