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
	"crypto/sha512"

	sha256 "github.com/minio/sha256-simd"
)

// SHA256 is a GenericHashEngine configured for SHA-256.
type SHA256 = GenericHashEngine

// NewSHA256 creates a SHA-256 engine backed by sha256-simd, which picks the
// fastest available instruction set at runtime.
func NewSHA256(initialData []byte) (*SHA256, error) {
	return NewGenericHashEngine("SHA256", sha256.Size, sha256.New, initialData)
}

// SHA512 is a GenericHashEngine configured for SHA-512.
type SHA512 = GenericHashEngine

// NewSHA512 creates a SHA-512 engine.
func NewSHA512(initialData []byte) (*SHA512, error) {
	return NewGenericHashEngine("SHA512", sha512.Size, sha512.New, initialData)
}
