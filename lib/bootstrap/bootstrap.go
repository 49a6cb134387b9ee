// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import (
	"context"
	"log/slog"

	"github.com/Tsseva31/warehouse-bot/lib/config"
	"github.com/Tsseva31/warehouse-bot/lib/credential"
	"github.com/Tsseva31/warehouse-bot/lib/fault"
	"github.com/Tsseva31/warehouse-bot/lib/process"
	"github.com/Tsseva31/warehouse-bot/lib/secret"
	"github.com/Tsseva31/warehouse-bot/lib/workdir"
)

// Params holds everything Run needs.
type Params struct {
	// Config is the validated entrypoint configuration.
	Config *config.Config

	// Lookup resolves the credential variable. Production passes
	// os.LookupEnv.
	Lookup secret.LookupFunc

	// Environ is the application's complete environment.
	Environ []string

	// Launcher starts the application.
	Launcher process.Launcher

	// Logger receives one line per step. Nil means slog.Default().
	Logger *slog.Logger
}

// Run executes the bootstrap sequence. With an exec launcher a
// successful Run never returns. Any returned error is a [fault.Error]
// or, in supervise mode, a [process.ExitError] carrying the
// application's status.
func Run(ctx context.Context, params Params) error {
	cfg := params.Config
	if cfg == nil {
		return fault.Configuration("config", "no configuration")
	}
	if params.Launcher == nil {
		return fault.Configuration("config", "no launcher")
	}
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mode, err := cfg.FileMode()
	if err != nil {
		return fault.Configuration("config", "%w", err)
	}

	if _, err := credential.Materialize(ctx, credential.Request{
		Variable: cfg.Credential.Variable,
		Lookup:   params.Lookup,
		Path:     cfg.CredentialPath(),
		Mode:     mode,
		Logger:   logger,
	}); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return fault.Canceled("workdir", err)
	}

	directories, err := workdir.Ensure(cfg.Paths.Root, cfg.Paths.Directories)
	if err != nil {
		return err
	}
	logger.Info("working directories ready", "root", cfg.Paths.Root, "directories", directories)

	if err := ctx.Err(); err != nil {
		return fault.Canceled("handoff", err)
	}

	return params.Launcher.Launch(cfg.Handoff.Command, params.Environ)
}
