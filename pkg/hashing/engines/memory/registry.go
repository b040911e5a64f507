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
	"crypto/md5" //nolint:gosec // integrity checksum, not a security boundary
	"crypto/sha512"
	"hash/crc32"

	sha256 "github.com/minio/sha256-simd"
	"github.com/multiformats/go-multihash"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD-160 output is required for compatibility

	hashengines "github.com/sigstore/checksum/pkg/hashing/engines"
)

// Multicodec codes without a named constant in go-multihash.
const (
	multihashCRC32     uint64 = 0x0132
	multihashRIPEMD160 uint64 = 0x1053
)

// Algorithm identifiers. Each one is also the name of its command-line flag.
const (
	IDCRC32  = "crc32"
	IDMD5    = "md5"
	IDSHA256 = "sha256"
	IDSHA512 = "sha512"
	IDRMD160 = "rmd160"
)

// Built-in algorithm descriptors.
var (
	CRC32Algorithm = hashengines.Algorithm{
		ID:            IDCRC32,
		DisplayName:   "CRC32",
		Size:          crc32.Size,
		MultihashCode: multihashCRC32,
		New: func() (hashengines.StreamingHashEngine, error) {
			return NewCRC32(nil)
		},
	}

	MD5Algorithm = hashengines.Algorithm{
		ID:            IDMD5,
		DisplayName:   "MD5",
		Size:          md5.Size,
		MultihashCode: multihash.MD5,
		New: func() (hashengines.StreamingHashEngine, error) {
			return NewMD5(nil)
		},
	}

	SHA256Algorithm = hashengines.Algorithm{
		ID:            IDSHA256,
		DisplayName:   "SHA256",
		Size:          sha256.Size,
		MultihashCode: multihash.SHA2_256,
		New: func() (hashengines.StreamingHashEngine, error) {
			return NewSHA256(nil)
		},
	}

	SHA512Algorithm = hashengines.Algorithm{
		ID:            IDSHA512,
		DisplayName:   "SHA512",
		Size:          sha512.Size,
		MultihashCode: multihash.SHA2_512,
		New: func() (hashengines.StreamingHashEngine, error) {
			return NewSHA512(nil)
		},
	}

	RMD160Algorithm = hashengines.Algorithm{
		ID:            IDRMD160,
		DisplayName:   "RMD160",
		Size:          ripemd160.Size,
		MultihashCode: multihashRIPEMD160,
		New: func() (hashengines.StreamingHashEngine, error) {
			return NewRMD160(nil)
		},
	}
)

var defaultRegistry = hashengines.MustNewRegistry(
	CRC32Algorithm,
	MD5Algorithm,
	SHA256Algorithm,
	SHA512Algorithm,
	RMD160Algorithm,
)

// Registry returns the process-wide registry of built-in algorithms, in the
// declaration order CRC32, MD5, SHA256, SHA512, RMD160.
func Registry() *hashengines.Registry {
	return defaultRegistry
}
