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
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD-160 output is required for compatibility
)

// RMD160 is a GenericHashEngine configured for RIPEMD-160.
type RMD160 = GenericHashEngine

// NewRMD160 creates a RIPEMD-160 engine.
func NewRMD160(initialData []byte) (*RMD160, error) {
	return NewGenericHashEngine("RMD160", ripemd160.Size, ripemd160.New, initialData)
}
