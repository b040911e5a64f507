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

package memory

import (
	"reflect"
	"testing"
)

func TestRegistry_DeclarationOrder(t *testing.T) {
	want := []string{IDCRC32, IDMD5, IDSHA256, IDSHA512, IDRMD160}
	if got := Registry().IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
}

func TestRegistry_DisplayNamesAndSizes(t *testing.T) {
	tests := []struct {
		id          string
		displayName string
		size        int
	}{
		{IDCRC32, "CRC32", 4},
		{IDMD5, "MD5", 16},
		{IDSHA256, "SHA256", 32},
		{IDSHA512, "SHA512", 64},
		{IDRMD160, "RMD160", 20},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			alg, err := Registry().Lookup(tt.id)
			if err != nil {
				t.Fatalf("Lookup() error = %v", err)
			}
			if alg.DisplayName != tt.displayName {
				t.Errorf("DisplayName = %q, want %q", alg.DisplayName, tt.displayName)
			}
			if alg.Size != tt.size {
				t.Errorf("Size = %d, want %d", alg.Size, tt.size)
			}

			e, err := alg.New()
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if e.DigestName() != tt.displayName {
				t.Errorf("DigestName() = %q, want %q", e.DigestName(), tt.displayName)
			}
			if e.DigestSize() != tt.size {
				t.Errorf("DigestSize() = %d, want %d", e.DigestSize(), tt.size)
			}
		})
	}
}

func TestRegistry_MultihashCodesUnique(t *testing.T) {
	seen := map[uint64]string{}
	for _, alg := range Registry().Algorithms() {
		if alg.MultihashCode == 0 {
			t.Errorf("%s has no multihash code", alg.ID)
		}
		if other, dup := seen[alg.MultihashCode]; dup {
			t.Errorf("%s and %s share multihash code %#x", alg.ID, other, alg.MultihashCode)
		}
		seen[alg.MultihashCode] = alg.ID
	}
}
