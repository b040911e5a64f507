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
	"hash"
	"hash/crc32"
)

// CRC32 is a GenericHashEngine configured for IEEE CRC-32.
type CRC32 = GenericHashEngine

// NewCRC32 creates a CRC-32 (IEEE polynomial) engine. The checksum is
// rendered big-endian, so the empty input yields "00000000".
func NewCRC32(initialData []byte) (*CRC32, error) {
	return NewGenericHashEngine(
		"CRC32",
		crc32.Size,
		func() hash.Hash { return crc32.NewIEEE() },
		initialData,
	)
}
