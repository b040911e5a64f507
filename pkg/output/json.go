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
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

type jsonLine struct {
	Algorithm string `json:"algorithm"`
	Name      string `json:"name,omitempty"`
	Digest    string `json:"digest"`
}

// JSONFormatter renders one JSON object per line. The name key is omitted
// for standard input.
type JSONFormatter struct{}

// Format implements Formatter.
func (f *JSONFormatter) Format(results []Result) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for _, r := range results {
		line := jsonLine{
			Algorithm: r.Algorithm.DisplayName,
			Digest:    r.Digest.Hex(),
		}
		if r.Source.Named() {
			line.Name = r.Source.Name
		}
		if err := enc.Encode(line); err != nil {
			return nil, fmt.Errorf("encode %s result: %w", r.Algorithm.DisplayName, err)
		}
	}
	return buf.Bytes(), nil
}
