// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// warehouse-entrypoint is the container entrypoint for the warehouse
// bot. It writes the Google service-account credential from
// GOOGLE_SERVICE_ACCOUNT_JSON to service-account.json, creates the
// bot's working directories, and then execs the bot so the bot's
// signals, stdio, and exit status are the container's.
//
// Usage:
//
//	warehouse-entrypoint [flags] [--] [command [args...]]
//
// With no command, the configured one runs (default: python bot.py).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/Tsseva31/warehouse-bot/lib/bootstrap"
	"github.com/Tsseva31/warehouse-bot/lib/config"
	"github.com/Tsseva31/warehouse-bot/lib/fault"
	"github.com/Tsseva31/warehouse-bot/lib/process"
	"github.com/Tsseva31/warehouse-bot/lib/secret"
	"github.com/Tsseva31/warehouse-bot/lib/version"
)

const binaryName = "warehouse-entrypoint"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	err := run(ctx, invocation{
		args:        os.Args[1:],
		lookup:      os.LookupEnv,
		environ:     os.Environ(),
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		newLauncher: process.NewLauncher,
	})
	if err != nil {
		stop()
		process.Fatal(err)
	}
}

// invocation carries everything run reads from the outside world.
type invocation struct {
	args        []string
	lookup      secret.LookupFunc
	environ     []string
	stdout      io.Writer
	stderr      io.Writer
	newLauncher func(process.Mode, *slog.Logger) (process.Launcher, error)
}

type options struct {
	configPath     string
	root           string
	credentialEnv  string
	credentialFile string
	directories    []string
	mode           string
	logLevel       string
	showVersion    bool
	help           bool
}

func run(ctx context.Context, in invocation) error {
	var opts options
	flagSet := pflag.NewFlagSet(binaryName, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	// Stop at the first non-flag so the application's own flags are
	// never parsed here: "warehouse-entrypoint python bot.py --debug".
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&opts.configPath, "config", "", "path to a YAML or JSONC config file (default $"+config.PathVariable+")")
	flagSet.StringVar(&opts.root, "root", "", "application working root (default .)")
	flagSet.StringVar(&opts.credentialEnv, "credential-env", "", "environment variable holding the credential JSON (default GOOGLE_SERVICE_ACCOUNT_JSON)")
	flagSet.StringVar(&opts.credentialFile, "credential-file", "", "credential destination, relative to --root (default service-account.json)")
	flagSet.StringSliceVar(&opts.directories, "dir", nil, "working directory to ensure, relative to --root (repeatable; default temp_photos,docs)")
	flagSet.StringVar(&opts.mode, "mode", "", "handoff mode: exec or supervise (default exec)")
	flagSet.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flagSet.BoolVar(&opts.showVersion, "version", false, "print version information and exit")
	flagSet.BoolVarP(&opts.help, "help", "h", false, "show help")

	if err := flagSet.Parse(in.args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(in.stdout, flagSet)
			return nil
		}
		return fault.Usage("%w (see --help)", err)
	}
	if opts.help {
		printHelp(in.stdout, flagSet)
		return nil
	}
	if opts.showVersion {
		version.Print(in.stdout, binaryName)
		return nil
	}

	logger, err := newLogger(in.stderr, opts.logLevel)
	if err != nil {
		return fault.Usage("%w", err)
	}
	logger = logger.With("component", binaryName)

	cfg, err := loadConfig(flagSet, opts, in)
	if err != nil {
		return err
	}

	mode, err := cfg.HandoffMode()
	if err != nil {
		return fault.Configuration("config", "%w", err)
	}
	launcher, err := in.newLauncher(mode, logger)
	if err != nil {
		return err
	}

	logger.Info("starting",
		"version", version.Info(),
		"credential_variable", cfg.Credential.Variable,
		"credential_file", cfg.CredentialPath(),
		"mode", string(mode),
	)

	return bootstrap.Run(ctx, bootstrap.Params{
		Config:   cfg,
		Lookup:   in.lookup,
		Environ:  in.environ,
		Launcher: launcher,
		Logger:   logger,
	})
}

// loadConfig layers defaults, the config file, the environment, and
// explicitly set flags, then validates the result.
func loadConfig(flagSet *pflag.FlagSet, opts options, in invocation) (*config.Config, error) {
	configPath := opts.configPath
	if configPath == "" {
		configPath, _ = in.lookup(config.PathVariable)
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return nil, fault.Configuration("config", "loading %s: %w", configPath, err)
		}
		cfg = loaded
	}

	if flagSet.Changed("root") {
		cfg.Paths.Root = opts.root
	}
	if flagSet.Changed("credential-env") {
		cfg.Credential.Variable = opts.credentialEnv
	}
	if flagSet.Changed("dir") {
		cfg.Paths.Directories = opts.directories
	}
	if flagSet.Changed("mode") {
		cfg.Handoff.Mode = opts.mode
	}
	if command := flagSet.Args(); len(command) > 0 {
		cfg.Handoff.Command = command
	}

	cfg.ApplyEnvironment(in.lookup)

	// --credential-file outranks GOOGLE_SERVICE_ACCOUNT_FILE, so it is
	// applied after the environment.
	if flagSet.Changed("credential-file") {
		cfg.Credential.File = opts.credentialFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fault.Configuration("config", "%w", err)
	}
	return cfg, nil
}

// newLogger writes text records when writer is a terminal and JSON
// records otherwise (container log collectors).
func newLogger(writer io.Writer, level string) (*slog.Logger, error) {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", level)
	}

	options := &slog.HandlerOptions{Level: logLevel}
	if file, ok := writer.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return slog.New(slog.NewTextHandler(writer, options)), nil
	}
	return slog.New(slog.NewJSONHandler(writer, options)), nil
}

func printHelp(writer io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(writer, `%[1]s - materialize the service-account credential and start the warehouse bot

USAGE
    %[1]s [flags] [--] [command [args...]]

With no command, the configured command runs (default: python bot.py).

SEQUENCE
    1. Write $GOOGLE_SERVICE_ACCOUNT_JSON to service-account.json (atomic, mode 0600).
    2. Create the working directories (temp_photos, docs).
    3. Replace this process with the command (--mode=exec), or run it as a
       child that receives forwarded signals (--mode=supervise).

ENVIRONMENT
    GOOGLE_SERVICE_ACCOUNT_JSON   credential JSON (required)
    GOOGLE_SERVICE_ACCOUNT_FILE   credential destination override
    %[2]s   config file path when --config is not given

EXIT CODES
    2 usage, 78 configuration, 74 filesystem, 126 not executable,
    127 not found, 130 interrupted; otherwise the application's status.

FLAGS
%[3]s`, binaryName, config.PathVariable, flagSet.FlagUsages())
}
