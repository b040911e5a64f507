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
)

// MD5 is a GenericHashEngine configured for MD5.
type MD5 = GenericHashEngine

// NewMD5 creates an MD5 engine.
func NewMD5(initialData []byte) (*MD5, error) {
	return NewGenericHashEngine("MD5", md5.Size, md5.New, initialData)
}
