// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package credential

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the first 16 hex characters of the BLAKE3 digest
// of data. Two deployments with the same fingerprint carry the same
// credential.
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
