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

// Package output renders finalized digests.
//
// A Formatter receives every result of one input at once and returns the
// complete block of lines for it, so callers can write an input's output
// with a single Write once all of its algorithms have finalized.
package output

import (
	"fmt"

	"github.com/sigstore/checksum/pkg/hashing/digests"
	hashengines "github.com/sigstore/checksum/pkg/hashing/engines"
	"github.com/sigstore/checksum/pkg/input"
)

// Supported output formats.
const (
	FormatText      = "text"
	FormatJSON      = "json"
	FormatMultihash = "multihash"
)

// Formats returns the names accepted by NewFormatter.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatMultihash}
}

// Result is one finalized digest of one input.
type Result struct {
	Source    input.Source
	Algorithm hashengines.Algorithm
	Digest    digests.Digest
}

// NewResults pairs the digests of a session with their algorithms.
func NewResults(src input.Source, algs []hashengines.Algorithm, ds []digests.Digest) ([]Result, error) {
	if len(algs) != len(ds) {
		return nil, fmt.Errorf("got %d digests for %d algorithms", len(ds), len(algs))
	}

	out := make([]Result, 0, len(ds))
	for i, d := range ds {
		out = append(out, Result{Source: src, Algorithm: algs[i], Digest: d})
	}
	return out, nil
}

// Formatter renders the results of one input as newline-terminated lines.
type Formatter interface {
	Format(results []Result) ([]byte, error)
}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string) (Formatter, error) {
	switch name {
	case FormatText, "":
		return NewTextFormatter(), nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatMultihash:
		return NewMultihashFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (supported: %v)", name, Formats())
	}
}
