// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bootstrap runs the entrypoint sequence: materialize the
// credential, ensure the working directories, hand off to the
// application. Each step runs only if the previous one succeeded, and
// the context is checked between steps so a termination signal that
// arrives before handoff stops the sequence without starting the
// application.
//
// All inputs are explicit in [Params]: the configuration, the lookup
// function for environment variables, the environment passed to the
// application, and the [process.Launcher]. Tests drive the whole
// sequence without touching the real process environment and without
// replacing the test binary.
package bootstrap
