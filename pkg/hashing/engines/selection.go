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

// ErrEmptySelection is returned when a selection would contain no algorithms.
var ErrEmptySelection = errors.New("selection must contain at least one algorithm")

// Selection is the ordered set of algorithms activated for a run.
// It is never empty and never changes after construction.
type Selection struct {
	algs []Algorithm
}

// NewSelection builds a selection in the given order. Identifiers must be
// unique; callers that accept repeated requests collapse them first.
func NewSelection(algs ...Algorithm) (Selection, error) {
	if len(algs) == 0 {
		return Selection{}, ErrEmptySelection
	}

	seen := make(map[string]struct{}, len(algs))
	out := make([]Algorithm, 0, len(algs))
	for _, alg := range algs {
		if _, dup := seen[alg.ID]; dup {
			return Selection{}, fmt.Errorf("algorithm %q selected more than once", alg.ID)
		}
		seen[alg.ID] = struct{}{}
		out = append(out, alg)
	}

	return Selection{algs: out}, nil
}

// Algorithms returns a copy of the selected algorithms in order.
func (s Selection) Algorithms() []Algorithm {
	out := make([]Algorithm, len(s.algs))
	copy(out, s.algs)
	return out
}

// Len returns the number of selected algorithms.
func (s Selection) Len() int {
	return len(s.algs)
}

// DisplayNames returns the display names of the selected algorithms in order.
func (s Selection) DisplayNames() []string {
	names := make([]string, 0, len(s.algs))
	for _, alg := range s.algs {
		names = append(names, alg.DisplayName)
	}
	return names
}
