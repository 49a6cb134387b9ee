// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package workdir ensures the application's working directories exist
// before it starts. Creation is idempotent: directories that already
// exist (directly or behind a symlink) are left alone. A path occupied
// by anything other than a directory is an I/O fault, so the
// application never starts against a filesystem it cannot use.
package workdir

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tsseva31/warehouse-bot/lib/fault"
)

const step = "workdir"

// Defaults are the directories the warehouse bot writes into: staging
// for photos awaiting upload, and generated documents.
var Defaults = []string{"temp_photos", "docs"}

// Ensure creates each named directory under root, including missing
// intermediate segments, and returns their absolute paths in input
// order. Absolute names are used as-is; relative names must stay
// inside root.
func Ensure(root string, names []string) ([]string, error) {
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fault.Configuration(step, "resolving root %q: %w", root, err)
	}

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path, err := resolve(absoluteRoot, name)
		if err != nil {
			return nil, err
		}
		if err := ensureDirectory(path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func resolve(root, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fault.Configuration(step, "empty directory name")
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name), nil
	}
	path := filepath.Join(root, name)
	relative, err := filepath.Rel(root, path)
	if err != nil || relative == ".." || strings.HasPrefix(relative, ".."+string(filepath.Separator)) {
		return "", fault.Configuration(step, "directory %q escapes root %s", name, root)
	}
	return path, nil
}

func ensureDirectory(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fault.IO(step, "%s exists and is not a directory (%s)", path, info.Mode().Type())
	case !errors.Is(err, fs.ErrNotExist):
		return fault.IO(step, "inspecting %s: %w", path, err)
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return fault.IO(step, "creating %s: %w", path, err)
	}
	return nil
}
