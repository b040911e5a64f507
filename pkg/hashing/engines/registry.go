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

package hashengines

import (
	"errors"
	"fmt"
)

// ErrUnknownAlgorithm is returned when an identifier is not registered.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

// HashEngineFactory creates a fresh engine in its initial state.
type HashEngineFactory func() (StreamingHashEngine, error)

// Algorithm describes one selectable digest algorithm.
type Algorithm struct {
	// ID is the selection identifier, e.g. "sha256". It doubles as the
	// command-line flag name.
	ID string
	// DisplayName is the exact name printed in results, e.g. "SHA256".
	DisplayName string
	// Size is the digest length in bytes.
	Size int
	// MultihashCode is the multicodec code of the algorithm.
	MultihashCode uint64
	// New creates an engine for the algorithm.
	New HashEngineFactory
}

// Registry is a read-only table of algorithms keyed by identifier.
//
// A Registry is immutable once built and safe for concurrent use.
type Registry struct {
	byID  map[string]Algorithm
	order []Algorithm
}

// NewRegistry builds a registry from algs, keeping their declaration order.
// Identifiers must be unique and every entry must be complete.
func NewRegistry(algs ...Algorithm) (*Registry, error) {
	r := &Registry{
		byID:  make(map[string]Algorithm, len(algs)),
		order: make([]Algorithm, 0, len(algs)),
	}

	for _, alg := range algs {
		if alg.ID == "" {
			return nil, fmt.Errorf("algorithm identifier cannot be empty")
		}
		if alg.DisplayName == "" {
			return nil, fmt.Errorf("algorithm %q: display name cannot be empty", alg.ID)
		}
		if alg.Size <= 0 {
			return nil, fmt.Errorf("algorithm %q: digest size must be positive, got %d", alg.ID, alg.Size)
		}
		if alg.New == nil {
			return nil, fmt.Errorf("algorithm %q: factory cannot be nil", alg.ID)
		}
		if _, exists := r.byID[alg.ID]; exists {
			return nil, fmt.Errorf("hash algorithm %q already registered", alg.ID)
		}

		r.byID[alg.ID] = alg
		r.order = append(r.order, alg)
	}

	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error. It is meant for
// package-level registries whose contents are fixed at compile time.
func MustNewRegistry(algs ...Algorithm) *Registry {
	r, err := NewRegistry(algs...)
	if err != nil {
		panic(fmt.Sprintf("failed to build hash algorithm registry: %v", err))
	}
	return r
}

// Lookup returns the algorithm registered under id.
func (r *Registry) Lookup(id string) (Algorithm, error) {
	alg, exists := r.byID[id]
	if !exists {
		return Algorithm{}, fmt.Errorf("%w: %q (supported: %v)", ErrUnknownAlgorithm, id, r.IDs())
	}
	return alg, nil
}

// Create returns a new engine for the algorithm registered under id.
func (r *Registry) Create(id string) (StreamingHashEngine, error) {
	alg, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}

	engine, err := alg.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create hash engine for %q: %w", id, err)
	}
	return engine, nil
}

// Algorithms returns every registered algorithm in declaration order.
func (r *Registry) Algorithms() []Algorithm {
	out := make([]Algorithm, len(r.order))
	copy(out, r.order)
	return out
}

// IDs returns the registered identifiers in declaration order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.order))
	for _, alg := range r.order {
		ids = append(ids, alg.ID)
	}
	return ids
}

// IsSupported reports whether id is registered.
func (r *Registry) IsSupported(id string) bool {
	_, exists := r.byID[id]
	return exists
}
