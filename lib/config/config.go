// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/Tsseva31/warehouse-bot/lib/credential"
	"github.com/Tsseva31/warehouse-bot/lib/process"
	"github.com/Tsseva31/warehouse-bot/lib/secret"
	"github.com/Tsseva31/warehouse-bot/lib/workdir"
)

const (
	// PathVariable names the config file when --config is not given.
	PathVariable = "WAREHOUSE_ENTRYPOINT_CONFIG"

	// FileVariable overrides Credential.File. The warehouse bot reads
	// the same variable to find its credentials, so honoring it keeps
	// writer and reader pointed at one path.
	FileVariable = "GOOGLE_SERVICE_ACCOUNT_FILE"
)

// Config is the entrypoint configuration.
type Config struct {
	// Credential configures the Secret Materializer.
	Credential CredentialConfig `yaml:"credential" json:"credential"`

	// Paths configures the application root and working directories.
	Paths PathsConfig `yaml:"paths" json:"paths"`

	// Handoff configures how the application is started.
	Handoff HandoffConfig `yaml:"handoff" json:"handoff"`
}

// CredentialConfig configures credential materialization.
type CredentialConfig struct {
	// Variable is the environment variable holding the credential.
	// Default: GOOGLE_SERVICE_ACCOUNT_JSON
	Variable string `yaml:"variable" json:"variable"`

	// File is the destination. Relative paths resolve against
	// Paths.Root.
	// Default: service-account.json
	File string `yaml:"file" json:"file"`

	// Mode is the destination's octal permission string.
	// Default: 0600
	Mode string `yaml:"mode" json:"mode"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the application's working root.
	// Default: . (the container's WORKDIR)
	Root string `yaml:"root" json:"root"`

	// Directories must exist before the application starts. Relative
	// entries resolve against Root.
	// Default: temp_photos, docs
	Directories []string `yaml:"directories" json:"directories"`
}

// HandoffConfig configures the application launch.
type HandoffConfig struct {
	// Mode is "exec" (replace the entrypoint) or "supervise" (run as a
	// child with signal forwarding).
	// Default: exec
	Mode string `yaml:"mode" json:"mode"`

	// Command is the application's argv. Arguments after "--" on the
	// entrypoint's command line replace it.
	// Default: python bot.py
	Command []string `yaml:"command" json:"command"`
}

// Default returns the configuration for the warehouse bot image.
func Default() *Config {
	return &Config{
		Credential: CredentialConfig{
			Variable: credential.DefaultVariable,
			File:     credential.DefaultFile,
			Mode:     "0600",
		},
		Paths: PathsConfig{
			Root:        ".",
			Directories: append([]string(nil), workdir.Defaults...),
		},
		Handoff: HandoffConfig{
			Mode:    string(process.ModeExec),
			Command: []string{"python", "bot.py"},
		},
	}
}

// LoadFile loads path over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	return cfg, nil
}

// ApplyEnvironment applies GOOGLE_SERVICE_ACCOUNT_FILE when set and
// non-empty, then expands variables in path fields.
func (c *Config) ApplyEnvironment(lookup secret.LookupFunc) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if file, ok := lookup(FileVariable); ok && strings.TrimSpace(file) != "" {
		c.Credential.File = file
	}
	c.expandVariables(lookup)
}

// expandVariables expands ${VAR} and ${VAR:-default} in path fields.
func (c *Config) expandVariables(lookup secret.LookupFunc) {
	vars := map[string]string{}

	c.Paths.Root = expandVars(c.Paths.Root, vars, lookup)
	vars["APP_ROOT"] = c.Paths.Root

	c.Credential.File = expandVars(c.Credential.File, vars, lookup)
	for index, directory := range c.Paths.Directories {
		c.Paths.Directories[index] = expandVars(directory, vars, lookup)
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string, lookup secret.LookupFunc) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, defaultValue := parts[1], parts[2]

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value, ok := lookup(name); ok && value != "" {
			return value
		}
		return defaultValue
	})
}

// CredentialPath returns the credential destination, resolved against
// Paths.Root when relative.
func (c *Config) CredentialPath() string {
	if filepath.IsAbs(c.Credential.File) {
		return c.Credential.File
	}
	return filepath.Join(c.Paths.Root, c.Credential.File)
}

// FileMode parses Credential.Mode. Accepts "0600", "600", and "0o600".
func (c *Config) FileMode() (fs.FileMode, error) {
	text := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(c.Credential.Mode), "0o"), "0O")
	if text == "" {
		return credential.DefaultMode, nil
	}
	mode, err := strconv.ParseUint(text, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("credential.mode %q is not an octal permission: %w", c.Credential.Mode, err)
	}
	if mode&^0777 != 0 {
		return 0, fmt.Errorf("credential.mode %q has bits outside 0777", c.Credential.Mode)
	}
	if mode&0400 == 0 {
		return 0, fmt.Errorf("credential.mode %q is not readable by the owner", c.Credential.Mode)
	}
	return fs.FileMode(mode), nil
}

// HandoffMode parses Handoff.Mode.
func (c *Config) HandoffMode() (process.Mode, error) {
	return process.ParseMode(c.Handoff.Mode)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Credential.Variable) == "" {
		errs = append(errs, fmt.Errorf("credential.variable is required"))
	}
	if strings.TrimSpace(c.Credential.File) == "" {
		errs = append(errs, fmt.Errorf("credential.file is required"))
	}
	if _, err := c.FileMode(); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.Paths.Root) == "" {
		errs = append(errs, fmt.Errorf("paths.root is required"))
	}
	for index, directory := range c.Paths.Directories {
		if strings.TrimSpace(directory) == "" {
			errs = append(errs, fmt.Errorf("paths.directories[%d] is empty", index))
		}
	}
	if _, err := c.HandoffMode(); err != nil {
		errs = append(errs, fmt.Errorf("handoff.mode: %w", err))
	}
	if len(c.Handoff.Command) == 0 || strings.TrimSpace(c.Handoff.Command[0]) == "" {
		errs = append(errs, fmt.Errorf("handoff.command is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
