// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import "github.com/Tsseva31/warehouse-bot/lib/secret"

// Lookup returns a [secret.LookupFunc] backed by values. A nil
// map behaves as an empty environment.
//
//	lookup := testutil.Lookup(map[string]string{"GOOGLE_SERVICE_ACCOUNT_JSON": "{}"})
func Lookup(values map[string]string) secret.LookupFunc {
	return func(name string) (string, bool) {
		value, ok := values[name]
		return value, ok
	}
}
