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

package config

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sigstore/checksum/pkg/checksum"
	hashengines "github.com/sigstore/checksum/pkg/hashing/engines"
	hashio "github.com/sigstore/checksum/pkg/hashing/engines/io"
	"github.com/sigstore/checksum/pkg/hashing/engines/memory"
	"github.com/sigstore/checksum/pkg/output"
)

func TestResolveSelection(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want []string
	}{
		{"default", nil, []string{"MD5", "SHA256", "SHA512", "RMD160"}},
		{"requested order", []string{"sha256", "crc32"}, []string{"SHA256", "CRC32"}},
		{"duplicates collapse", []string{"md5", "crc32", "md5", "crc32"}, []string{"MD5", "CRC32"}},
		{"single", []string{"rmd160"}, []string{"RMD160"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := ResolveSelection(memory.Registry(), tt.ids)
			if err != nil {
				t.Fatalf("ResolveSelection() error = %v", err)
			}
			if got := sel.DisplayNames(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveSelection() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveSelection_Unknown(t *testing.T) {
	_, err := ResolveSelection(memory.Registry(), []string{"md5", "sha1"})

	if !checksum.IsType(err, checksum.ErrTypeConfiguration) {
		t.Fatalf("ResolveSelection() error = %v, want ConfigurationError", err)
	}
	if !errors.Is(err, hashengines.ErrUnknownAlgorithm) {
		t.Errorf("error should wrap ErrUnknownAlgorithm")
	}

	var cerr *checksum.Error
	errors.As(err, &cerr)
	if cerr.Message != "invalid option '--sha1'" {
		t.Errorf("Message = %q", cerr.Message)
	}
}

func TestDefaultAlgorithms_IsFresh(t *testing.T) {
	d := DefaultAlgorithms()
	d[0] = "crc32"

	if DefaultAlgorithms()[0] != memory.IDMD5 {
		t.Error("DefaultAlgorithms() returned shared storage")
	}
}

func TestDigestConfig_Defaults(t *testing.T) {
	opts, err := NewDigestConfig().Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got := opts.Selection.DisplayNames(); !reflect.DeepEqual(got, []string{"MD5", "SHA256", "SHA512", "RMD160"}) {
		t.Errorf("Selection = %v", got)
	}
	if opts.ChunkSize != hashio.DefaultChunkSize {
		t.Errorf("ChunkSize = %d, want %d", opts.ChunkSize, hashio.DefaultChunkSize)
	}
	if opts.Jobs != 1 {
		t.Errorf("Jobs = %d, want 1", opts.Jobs)
	}
	if _, ok := opts.Formatter.(*output.TextFormatter); !ok {
		t.Errorf("Formatter = %T, want *output.TextFormatter", opts.Formatter)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to non-nil")
	}
}

func TestDigestConfig_Chaining(t *testing.T) {
	cfg := NewDigestConfig().
		SetAlgorithms("sha512").
		AddAlgorithm("crc32").
		SetJobs(3).
		SetChunkSize(1024).
		SetParallelUpdate(true).
		SetFormat(output.FormatJSON)

	opts, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got := opts.Selection.DisplayNames(); !reflect.DeepEqual(got, []string{"SHA512", "CRC32"}) {
		t.Errorf("Selection = %v", got)
	}
	if opts.Jobs != 3 || opts.ChunkSize != 1024 || !opts.ParallelUpdate {
		t.Errorf("opts = %+v", opts)
	}
	if _, ok := opts.Formatter.(*output.JSONFormatter); !ok {
		t.Errorf("Formatter = %T, want *output.JSONFormatter", opts.Formatter)
	}
	if !reflect.DeepEqual(cfg.Algorithms(), []string{"sha512", "crc32"}) {
		t.Errorf("Algorithms() = %v", cfg.Algorithms())
	}
}

func TestDigestConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *DigestConfig
		wantMsg string
	}{
		{"unknown algorithm", NewDigestConfig().SetAlgorithms("whirlpool"), "invalid option '--whirlpool'"},
		{"unknown format", NewDigestConfig().SetFormat("yaml"), "invalid option '--format=yaml'"},
		{"zero jobs", NewDigestConfig().SetJobs(0), "invalid option '--jobs=0'"},
		{"zero chunk size", NewDigestConfig().SetChunkSize(0), "invalid option '--chunk-size=0'"},
		{"no registry", NewDigestConfig().SetRegistry(nil), "invalid option 'registry'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Resolve()

			var cerr *checksum.Error
			if !errors.As(err, &cerr) {
				t.Fatalf("Resolve() error = %v, want *checksum.Error", err)
			}
			if cerr.Type != checksum.ErrTypeConfiguration {
				t.Errorf("Type = %v, want ConfigurationError", cerr.Type)
			}
			if cerr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", cerr.Message, tt.wantMsg)
			}
		})
	}
}
