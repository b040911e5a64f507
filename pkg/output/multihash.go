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

package output

import (
	"fmt"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
)

// MultihashDigest encodes the digest as a base58btc multibase string of its
// multihash.
func MultihashDigest(r Result) (string, error) {
	mh, err := multihash.Encode(r.Digest.Value(), r.Algorithm.MultihashCode)
	if err != nil {
		return "", fmt.Errorf("multihash %s: %w", r.Algorithm.DisplayName, err)
	}

	s, err := multibase.Encode(multibase.Base58BTC, mh)
	if err != nil {
		return "", fmt.Errorf("multibase %s: %w", r.Algorithm.DisplayName, err)
	}
	return s, nil
}

// NewMultihashFormatter returns a text formatter whose digests are
// multibase-encoded multihashes.
func NewMultihashFormatter() *TextFormatter {
	return newTextFormatter(MultihashDigest)
}
