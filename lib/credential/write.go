// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package credential

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Tsseva31/warehouse-bot/lib/fault"
	"github.com/Tsseva31/warehouse-bot/lib/secret"
)

// writeAtomic writes buffer plus a trailing newline to path via a
// temporary file in the same directory. On any failure the temporary
// file is removed and path is left as it was.
func writeAtomic(ctx context.Context, path string, buffer *secret.Buffer, mode fs.FileMode) (int64, error) {
	directory := filepath.Dir(path)

	file, err := os.CreateTemp(directory, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fault.IO(step, "creating temporary file in %s: %w", directory, err)
	}
	temporaryPath := file.Name()

	fail := func(err error) (int64, error) {
		file.Close()
		os.Remove(temporaryPath)
		return 0, err
	}

	// CreateTemp uses 0600; apply the requested mode before any
	// content lands in the file.
	if err := file.Chmod(mode); err != nil {
		return fail(fault.IO(step, "setting mode on %s: %w", temporaryPath, err))
	}

	written, err := buffer.WriteTo(file)
	if err != nil {
		return fail(fault.IO(step, "writing %s: %w", temporaryPath, err))
	}
	if _, err := file.Write([]byte{'\n'}); err != nil {
		return fail(fault.IO(step, "writing %s: %w", temporaryPath, err))
	}
	written++

	if err := file.Sync(); err != nil {
		return fail(fault.IO(step, "syncing %s: %w", temporaryPath, err))
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return 0, fault.IO(step, "closing %s: %w", temporaryPath, err)
	}

	if err := ctx.Err(); err != nil {
		os.Remove(temporaryPath)
		return 0, fault.Canceled(step, err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return 0, fault.IO(step, "renaming credential into place at %s: %w", path, err)
	}

	// Make the rename durable across power loss.
	if parent, err := os.Open(directory); err == nil {
		parent.Sync()
		parent.Close()
	}

	return written, nil
}
