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

// Package io feeds byte streams into a set of hash engines.
//
// A Session owns one engine per selected algorithm and hands every chunk it
// receives to all of them before accepting the next one, so an input is read
// exactly once no matter how many algorithms are active.
package io

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sigstore/checksum/pkg/hashing/digests"
	hashengines "github.com/sigstore/checksum/pkg/hashing/engines"
)

// DefaultChunkSize is the read buffer used by ReadFrom.
const DefaultChunkSize = 256 * 1024

type sessionOptions struct {
	chunkSize int
	parallel  bool
}

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

// WithChunkSize sets the number of bytes ReadFrom requests per read.
func WithChunkSize(n int) SessionOption {
	return func(o *sessionOptions) {
		o.chunkSize = n
	}
}

// WithParallelUpdate makes Feed update every engine on its own goroutine.
// Feed still returns only after all engines have consumed the chunk.
func WithParallelUpdate() SessionOption {
	return func(o *sessionOptions) {
		o.parallel = true
	}
}

// Session streams one input through every algorithm of a selection.
//
// A Session is single-use and not safe for concurrent use.
type Session struct {
	algs      []hashengines.Algorithm
	engines   []hashengines.StreamingHashEngine
	chunkSize int
	parallel  bool
	finalized bool
}

// NewSession creates a fresh engine for every algorithm in sel.
func NewSession(sel hashengines.Selection, opts ...SessionOption) (*Session, error) {
	o := sessionOptions{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(&o)
	}

	if o.chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", o.chunkSize)
	}
	if sel.Len() == 0 {
		return nil, hashengines.ErrEmptySelection
	}

	algs := sel.Algorithms()
	engines := make([]hashengines.StreamingHashEngine, 0, len(algs))
	for _, alg := range algs {
		e, err := alg.New()
		if err != nil {
			return nil, fmt.Errorf("create engine for %q: %w", alg.ID, err)
		}
		engines = append(engines, e)
	}

	return &Session{
		algs:      algs,
		engines:   engines,
		chunkSize: o.chunkSize,
		parallel:  o.parallel,
	}, nil
}

// Algorithms returns the algorithms of the session in selection order.
func (s *Session) Algorithms() []hashengines.Algorithm {
	out := make([]hashengines.Algorithm, len(s.algs))
	copy(out, s.algs)
	return out
}

// Feed hands chunk to every engine.
func (s *Session) Feed(chunk []byte) error {
	if s.finalized {
		return fmt.Errorf("feed: %w", hashengines.ErrFinalized)
	}
	if len(chunk) == 0 {
		return nil
	}

	if !s.parallel || len(s.engines) == 1 {
		for i, e := range s.engines {
			if err := e.Update(chunk); err != nil {
				return fmt.Errorf("update %s: %w", s.algs[i].ID, err)
			}
		}
		return nil
	}

	errs := make([]error, len(s.engines))
	var wg sync.WaitGroup
	for i, e := range s.engines {
		wg.Add(1)
		go func(i int, e hashengines.StreamingHashEngine) {
			defer wg.Done()
			if err := e.Update(chunk); err != nil {
				errs[i] = fmt.Errorf("update %s: %w", s.algs[i].ID, err)
			}
		}(i, e)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// ReadFrom reads r to EOF in fixed-size chunks and feeds each one.
// It returns the number of bytes consumed. The context is checked between
// chunks; a blocked Read is not interrupted.
func (s *Session) ReadFrom(ctx context.Context, r io.Reader) (int64, error) {
	if s.finalized {
		return 0, fmt.Errorf("read: %w", hashengines.ErrFinalized)
	}

	buf := make([]byte, s.chunkSize)
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		n, err := r.Read(buf)
		if n > 0 {
			if ferr := s.Feed(buf[:n]); ferr != nil {
				return total, ferr
			}
			total += int64(n)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return total, nil
			}
			return total, &ReadError{Err: err}
		}
	}
}

// Finalize closes every engine and returns one digest per algorithm in
// selection order. It succeeds at most once.
func (s *Session) Finalize() ([]digests.Digest, error) {
	if s.finalized {
		return nil, fmt.Errorf("finalize: %w", hashengines.ErrFinalized)
	}
	s.finalized = true

	out := make([]digests.Digest, 0, len(s.engines))
	for i, e := range s.engines {
		d, err := e.Compute()
		if err != nil {
			return nil, fmt.Errorf("finalize %s: %w", s.algs[i].ID, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// Digest streams r through a new session over sel and finalizes it.
func Digest(ctx context.Context, r io.Reader, sel hashengines.Selection, opts ...SessionOption) ([]digests.Digest, error) {
	s, err := NewSession(sel, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadFrom(ctx, r); err != nil {
		return nil, err
	}
	return s.Finalize()
}

// ReadError reports a failure of the underlying reader, as opposed to a
// failure of the session itself.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read: %v", e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
