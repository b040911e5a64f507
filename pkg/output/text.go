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

	"github.com/valyala/fasttemplate"
)

const (
	namedLineTemplate = "{algorithm} ({name}) = {digest}\n"
	stdinLineTemplate = "{algorithm} = {digest}\n"
)

// DigestEncoder turns a result into the digest field of a text line.
type DigestEncoder func(r Result) (string, error)

// HexDigest encodes the digest as lowercase hexadecimal.
func HexDigest(r Result) (string, error) {
	return r.Digest.Hex(), nil
}

// TextFormatter renders "ALG (name) = digest" for files and
// "ALG = digest" for standard input.
type TextFormatter struct {
	named  *fasttemplate.Template
	stdin  *fasttemplate.Template
	encode DigestEncoder
}

// NewTextFormatter returns a TextFormatter with hexadecimal digests.
func NewTextFormatter() *TextFormatter {
	return newTextFormatter(HexDigest)
}

func newTextFormatter(encode DigestEncoder) *TextFormatter {
	return &TextFormatter{
		named:  fasttemplate.New(namedLineTemplate, "{", "}"),
		stdin:  fasttemplate.New(stdinLineTemplate, "{", "}"),
		encode: encode,
	}
}

// Format implements Formatter.
func (f *TextFormatter) Format(results []Result) ([]byte, error) {
	var buf bytes.Buffer
	for _, r := range results {
		digest, err := f.encode(r)
		if err != nil {
			return nil, err
		}

		tpl := f.stdin
		if r.Source.Named() {
			tpl = f.named
		}
		if _, err := tpl.Execute(&buf, map[string]any{
			"algorithm": r.Algorithm.DisplayName,
			"name":      r.Source.Name,
			"digest":    digest,
		}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
