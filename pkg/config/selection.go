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

package config

import (
	"github.com/sigstore/checksum/pkg/checksum"
	hashengines "github.com/sigstore/checksum/pkg/hashing/engines"
	"github.com/sigstore/checksum/pkg/hashing/engines/memory"
)

// DefaultAlgorithms returns the identifiers computed when none are
// requested, in output order.
func DefaultAlgorithms() []string {
	return []string{memory.IDMD5, memory.IDSHA256, memory.IDSHA512, memory.IDRMD160}
}

// ResolveSelection maps requested identifiers to algorithms of reg.
//
// With no identifiers the result is DefaultAlgorithms. Otherwise it keeps
// the order in which identifiers were first mentioned and drops repeats.
// An unregistered identifier is a configuration error naming its option.
func ResolveSelection(reg *hashengines.Registry, ids []string) (hashengines.Selection, error) {
	if len(ids) == 0 {
		ids = DefaultAlgorithms()
	}

	seen := make(map[string]struct{}, len(ids))
	algs := make([]hashengines.Algorithm, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		alg, err := reg.Lookup(id)
		if err != nil {
			return hashengines.Selection{}, checksum.NewConfigurationError("--"+id, err)
		}
		algs = append(algs, alg)
	}

	return hashengines.NewSelection(algs...)
}
