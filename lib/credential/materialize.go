// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package credential

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Tsseva31/warehouse-bot/lib/fault"
	"github.com/Tsseva31/warehouse-bot/lib/secret"
)

const (
	// DefaultVariable is the environment variable carrying the
	// service-account JSON.
	DefaultVariable = "GOOGLE_SERVICE_ACCOUNT_JSON"

	// DefaultFile is the file name the application reads credentials
	// from, relative to its working root.
	DefaultFile = "service-account.json"

	// DefaultMode is the permission set of the written credential file.
	DefaultMode fs.FileMode = 0600

	step = "credential"
)

// Request describes one credential to materialize.
type Request struct {
	// Variable is the name of the variable holding the credential.
	Variable string

	// Lookup resolves Variable. Production callers pass os.LookupEnv.
	Lookup secret.LookupFunc

	// Path is the destination file. Relative paths resolve against the
	// current directory.
	Path string

	// Mode is the destination's permission bits. Zero means DefaultMode.
	Mode fs.FileMode

	// Logger receives one line per materialized credential. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// Result describes a successfully written credential.
type Result struct {
	// Path is the absolute path of the written file.
	Path string

	// Bytes is the number of bytes written, including the trailing
	// newline.
	Bytes int64

	// Fingerprint identifies the credential value without revealing it.
	Fingerprint string

	// Locked reports whether the in-memory copy was mlock'd.
	Locked bool
}

// Materialize writes the credential named by request to request.Path.
func Materialize(ctx context.Context, request Request) (Result, error) {
	if request.Variable == "" {
		return Result{}, fault.Configuration(step, "no credential variable configured")
	}
	if request.Path == "" {
		return Result{}, fault.Configuration(step, "no credential file configured")
	}
	mode := request.Mode
	if mode == 0 {
		mode = DefaultMode
	}
	logger := request.Logger
	if logger == nil {
		logger = slog.Default()
	}

	buffer, err := secret.FromLookup(request.Lookup, request.Variable)
	if err != nil {
		return Result{}, fault.Configuration(step, "%w", err)
	}
	defer buffer.Close()

	if err := ctx.Err(); err != nil {
		return Result{}, fault.Canceled(step, err)
	}

	path, err := filepath.Abs(request.Path)
	if err != nil {
		return Result{}, fault.Configuration(step, "resolving %s: %w", request.Path, err)
	}

	if err := checkDestination(path); err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Result{}, fault.IO(step, "creating directory for %s: %w", path, err)
	}

	written, err := writeAtomic(ctx, path, buffer, mode)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Path:        path,
		Bytes:       written,
		Fingerprint: Fingerprint(buffer.Bytes()),
		Locked:      buffer.Locked(),
	}

	if !result.Locked {
		logger.Warn("credential buffer not locked into memory (RLIMIT_MEMLOCK too low)",
			"variable", request.Variable,
		)
	}
	logger.Info("credential materialized",
		"variable", request.Variable,
		"path", result.Path,
		"bytes", result.Bytes,
		"fingerprint", result.Fingerprint,
	)

	return result, nil
}

// checkDestination refuses to replace anything but a regular file.
func checkDestination(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fault.IO(step, "inspecting %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fault.IO(step, "%s exists and is not a regular file (%s)", path, info.Mode().Type())
	}
	return nil
}
