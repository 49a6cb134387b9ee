// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fault classifies entrypoint failures so that main can turn
// any error from the bootstrap sequence into a stable exit code and a
// diagnostic naming the step that failed.
//
// Every [Error] carries a [Kind] and the name of the step that
// produced it. The kind decides the exit code:
//
//   - [KindConfiguration] -- a required input is missing or invalid (78)
//   - [KindIO] -- a filesystem write or directory creation failed (74)
//   - [KindHandoff] -- the application could not be started (126/127)
//   - [KindCanceled] -- a signal arrived before handoff (130)
//
// Use the kind-specific constructors rather than building Error
// directly. [ExitCode] extracts the code from any error chain.
//
// This package has no internal dependencies.
package fault
