// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package digests provides the finalized output of a hash engine.
// A Digest pairs the display name of the algorithm that produced it with the
// raw digest bytes. Both are fixed at construction time.
package digests

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// Digest is a finalized digest value.
//
// Fields are unexported and the byte slice is copied on the way in and on
// the way out, so a Digest can be handed to formatters running on other
// goroutines without further synchronization.
type Digest struct {
	algorithm string
	value     []byte
}

// NewDigest creates a Digest for the named algorithm. value is copied.
func NewDigest(algorithm string, value []byte) Digest {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	return Digest{
		algorithm: algorithm,
		value:     valueCopy,
	}
}

// Algorithm returns the display name of the algorithm, e.g. "SHA256" or "RMD160".
func (d Digest) Algorithm() string {
	return d.algorithm
}

// Value returns a copy of the raw digest bytes.
func (d Digest) Value() []byte {
	valueCopy := make([]byte, len(d.value))
	copy(valueCopy, d.value)
	return valueCopy
}

// Hex returns the digest as lowercase hexadecimal, two characters per byte,
// most significant nibble first.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.value)
}

// Size returns the digest length in bytes.
func (d Digest) Size() int {
	return len(d.value)
}

// IsZero reports whether d is the zero Digest.
func (d Digest) IsZero() bool {
	return d.algorithm == "" && len(d.value) == 0
}

// String returns "ALGORITHM:hex".
func (d Digest) String() string {
	return fmt.Sprintf("%s:%s", d.algorithm, d.Hex())
}

// Equal reports whether both digests come from the same algorithm and hold
// identical bytes.
func (d Digest) Equal(other Digest) bool {
	return d.algorithm == other.algorithm && bytes.Equal(d.value, other.value)
}
