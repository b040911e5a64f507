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

// Package input turns command-line operands into the byte streams that get
// digested. Files are opened lazily, one at a time, when the caller is ready
// to process them; with no operands the process's standard input is used.
package input

import (
	"fmt"
	"io"
	"os"
)

// Source identifies one input stream.
type Source struct {
	// Name is the path exactly as supplied. It is empty for standard input.
	Name  string
	named bool
}

// NamedSource returns a Source for the file at path.
func NamedSource(path string) Source {
	return Source{Name: path, named: true}
}

// StdinSource returns the unnamed standard input Source.
func StdinSource() Source {
	return Source{}
}

// Named reports whether the source is a file rather than standard input.
func (s Source) Named() bool {
	return s.named
}

// String returns the path, or "stdin" for standard input.
func (s Source) String() string {
	if !s.named {
		return "stdin"
	}
	return s.Name
}

// OpenFunc opens a named file for reading.
type OpenFunc func(path string) (io.ReadCloser, error)

func openFile(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Option configures a Multiplexer.
type Option func(*Multiplexer)

// WithOpener replaces the function used to open named sources.
func WithOpener(open OpenFunc) Option {
	return func(m *Multiplexer) {
		if open != nil {
			m.open = open
		}
	}
}

// Multiplexer yields the input sources of a run in order.
type Multiplexer struct {
	paths []string
	stdin io.Reader
	open  OpenFunc
}

// NewMultiplexer creates a Multiplexer over paths. If paths is empty the
// single source is stdin.
func NewMultiplexer(paths []string, stdin io.Reader, opts ...Option) *Multiplexer {
	p := make([]string, len(paths))
	copy(p, paths)

	m := &Multiplexer{
		paths: p,
		stdin: stdin,
		open:  openFile,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Sources returns every source in processing order.
func (m *Multiplexer) Sources() []Source {
	if len(m.paths) == 0 {
		return []Source{StdinSource()}
	}

	out := make([]Source, 0, len(m.paths))
	for _, p := range m.paths {
		out = append(out, NamedSource(p))
	}
	return out
}

// Open returns a reader for src. Closing the reader of the stdin source does
// not close the underlying stream.
func (m *Multiplexer) Open(src Source) (io.ReadCloser, error) {
	if !src.Named() {
		if m.stdin == nil {
			return nil, fmt.Errorf("no standard input available")
		}
		return io.NopCloser(m.stdin), nil
	}

	return m.open(src.Name)
}
