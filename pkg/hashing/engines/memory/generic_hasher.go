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

// Package memory provides in-process hash engines for the supported digest
// algorithms and the registry that exposes them.
package memory

import (
	"fmt"
	"hash"

	"github.com/sigstore/checksum/pkg/hashing/digests"
	hashengines "github.com/sigstore/checksum/pkg/hashing/engines"
)

// Ensure GenericHashEngine implements StreamingHashEngine at compile time.
var _ hashengines.StreamingHashEngine = (*GenericHashEngine)(nil)

// HashFactoryFunc creates a new hash.Hash in its initial state.
type HashFactoryFunc func() hash.Hash

// GenericHashEngine adapts any hash.Hash to StreamingHashEngine and enforces
// the finalize-once contract that hash.Hash itself does not.
type GenericHashEngine struct {
	name      string
	size      int
	factory   HashFactoryFunc
	h         hash.Hash
	finalized bool
}

// NewGenericHashEngine creates an engine named name producing size-byte
// digests. If initialData is non-empty it is hashed immediately.
func NewGenericHashEngine(name string, size int, factory HashFactoryFunc, initialData []byte) (*GenericHashEngine, error) {
	if factory == nil {
		return nil, fmt.Errorf("hash factory for %q must not be nil", name)
	}

	engine := &GenericHashEngine{
		name:    name,
		size:    size,
		factory: factory,
		h:       factory(),
	}

	if len(initialData) > 0 {
		// hash.Hash.Write never returns an error
		_, _ = engine.h.Write(initialData)
	}

	return engine, nil
}

// Update appends data to the hash state.
func (e *GenericHashEngine) Update(data []byte) error {
	if e.finalized {
		return fmt.Errorf("update %s: %w", e.name, hashengines.ErrFinalized)
	}
	if len(data) > 0 {
		_, _ = e.h.Write(data)
	}
	return nil
}

// Reset returns the engine to its initial state, optionally seeded with data.
func (e *GenericHashEngine) Reset(data []byte) {
	e.h = e.factory()
	e.finalized = false

	if len(data) > 0 {
		_, _ = e.h.Write(data)
	}
}

// Compute finalizes the engine and returns its digest.
func (e *GenericHashEngine) Compute() (digests.Digest, error) {
	if e.finalized {
		return digests.Digest{}, fmt.Errorf("compute %s: %w", e.name, hashengines.ErrFinalized)
	}
	e.finalized = true

	sum := e.h.Sum(nil)
	if len(sum) != e.size {
		return digests.Digest{}, fmt.Errorf("compute %s: digest is %d bytes, want %d", e.name, len(sum), e.size)
	}
	return digests.NewDigest(e.name, sum), nil
}

// DigestName returns the display name of the algorithm.
func (e *GenericHashEngine) DigestName() string {
	return e.name
}

// DigestSize returns the size, in bytes, of digests produced by this engine.
func (e *GenericHashEngine) DigestSize() int {
	return e.size
}
