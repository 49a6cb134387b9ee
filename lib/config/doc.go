// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration for the warehouse entrypoint.
//
// Every field has a default matching the warehouse bot's container
// layout, so the entrypoint runs with no config file at all. When a
// file is given (--config or WAREHOUSE_ENTRYPOINT_CONFIG) it is loaded
// over the defaults. YAML is the primary format; files ending in .json
// or .jsonc are read as JSON with comments and trailing commas
// stripped.
//
// Precedence, lowest to highest: [Default], the config file,
// GOOGLE_SERVICE_ACCOUNT_FILE (see [Config.ApplyEnvironment]), and
// flags the operator set explicitly on the command line.
//
// Path fields support ${VAR} and ${VAR:-default} expansion, with
// ${APP_ROOT} bound to the configured root.
//
// Key exports:
//
//   - [Config] -- credential, paths, and handoff settings
//   - [Default] and [LoadFile] -- the two ways to obtain a Config
//   - [Config.Validate] -- reports every invalid field at once
package config
