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

// Package hashengines defines the incremental hashing capability used by the
// digest session, the registry of selectable algorithms, and the ordered
// selection of algorithms activated for a run.
//
// An engine is a small state machine: it accepts any number of Update calls,
// is closed by exactly one Compute, and can be returned to its initial state
// with Reset. Adding an algorithm means adding one registry entry; the
// session and the formatters never switch on algorithm identity.
package hashengines

import (
	"errors"

	"github.com/sigstore/checksum/pkg/hashing/digests"
)

// ErrFinalized is returned when an engine is updated after Compute, or when
// Compute is called a second time without an intervening Reset.
var ErrFinalized = errors.New("hash engine already finalized")

// HashEngine is the finalizing half of an incremental hasher.
type HashEngine interface {
	// Compute finalizes the engine and returns its digest. It must succeed
	// at most once between resets; further calls return ErrFinalized.
	Compute() (digests.Digest, error)

	// DigestName returns the display name recorded in produced digests.
	DigestName() string

	// DigestSize returns the size in bytes of produced digests.
	// It must match Size() of the Digest returned by Compute.
	DigestSize() int
}

// Streaming is the feeding half of an incremental hasher.
type Streaming interface {
	// Update appends data to the hash state. It returns ErrFinalized if the
	// engine has already been finalized.
	Update(data []byte) error

	// Reset discards the hash state and optionally seeds it with data.
	Reset(data []byte)
}

// StreamingHashEngine combines HashEngine and Streaming.
type StreamingHashEngine interface {
	HashEngine
	Streaming
}
