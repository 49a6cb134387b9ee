// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"errors"
	"fmt"
)

// LookupFunc reports the value of a named variable and whether it is
// set. os.LookupEnv satisfies it.
type LookupFunc func(name string) (string, bool)

var (
	// ErrUnset is returned by FromLookup when the variable is not set.
	ErrUnset = errors.New("not set")

	// ErrEmpty is returned by FromLookup when the variable is set to
	// the empty string.
	ErrEmpty = errors.New("set but empty")
)

// FromLookup reads the variable name through lookup into a secret
// buffer. Any non-empty value is stored verbatim, including one that
// is only whitespace. The caller must Close the returned buffer.
func FromLookup(lookup LookupFunc, name string) (*Buffer, error) {
	if lookup == nil {
		return nil, fmt.Errorf("secret: no lookup function for %s", name)
	}

	value, ok := lookup(name)
	if !ok {
		return nil, fmt.Errorf("%s is %w", name, ErrUnset)
	}
	if value == "" {
		return nil, fmt.Errorf("%s is %w", name, ErrEmpty)
	}

	return NewFromString(value)
}
