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

// Package checksum runs digest sessions over a sequence of inputs and
// reports their results in input order.
package checksum

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	hashengines "github.com/sigstore/checksum/pkg/hashing/engines"
	hashio "github.com/sigstore/checksum/pkg/hashing/engines/io"
	"github.com/sigstore/checksum/pkg/input"
	"github.com/sigstore/checksum/pkg/logging"
	"github.com/sigstore/checksum/pkg/output"
	"github.com/sigstore/checksum/pkg/tracing"
)

// Options configures a Runner.
type Options struct {
	// Selection is the ordered set of algorithms computed for every input.
	Selection hashengines.Selection
	// Formatter renders each input's results. Defaults to the text format.
	Formatter output.Formatter
	// ChunkSize is the read size per chunk. Zero means hashio.DefaultChunkSize.
	ChunkSize int
	// Jobs is the number of inputs digested concurrently. Zero means one.
	Jobs int
	// ParallelUpdate feeds each chunk to all engines concurrently.
	ParallelUpdate bool
	// Logger receives one error entry per failed input.
	Logger logging.Logger
}

// Runner digests inputs and writes their results.
type Runner struct {
	sel         hashengines.Selection
	formatter   output.Formatter
	sessionOpts []hashio.SessionOption
	jobs        int
	logger      logging.Logger
}

// NewRunner validates opts and returns a Runner.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Selection.Len() == 0 {
		return nil, hashengines.ErrEmptySelection
	}
	if opts.ChunkSize < 0 {
		return nil, fmt.Errorf("chunk size must be non-negative, got %d", opts.ChunkSize)
	}
	if opts.Jobs < 0 {
		return nil, fmt.Errorf("jobs must be non-negative, got %d", opts.Jobs)
	}

	formatter := opts.Formatter
	if formatter == nil {
		formatter = output.NewTextFormatter()
	}

	var sessionOpts []hashio.SessionOption
	if opts.ChunkSize > 0 {
		sessionOpts = append(sessionOpts, hashio.WithChunkSize(opts.ChunkSize))
	}
	if opts.ParallelUpdate {
		sessionOpts = append(sessionOpts, hashio.WithParallelUpdate())
	}

	jobs := opts.Jobs
	if jobs == 0 {
		jobs = 1
	}

	return &Runner{
		sel:         opts.Selection,
		formatter:   formatter,
		sessionOpts: sessionOpts,
		jobs:        jobs,
		logger:      logging.EnsureLogger(opts.Logger),
	}, nil
}

// outcome is the rendered output, or the failure, of one input.
type outcome struct {
	index int
	src   input.Source
	out   []byte
	err   error
}

// Run digests every source of mux and writes each input's lines to w with a
// single Write, in input order. Failed inputs are logged and skipped; if any
// failed, Run returns an *ExitError once all inputs are done. A cancelled
// context or a failed write to w stops the run and is returned as is.
func (r *Runner) Run(ctx context.Context, mux *input.Multiplexer, w io.Writer) error {
	srcs := mux.Sources()

	var (
		failed int
		err    error
	)
	if r.jobs <= 1 || len(srcs) <= 1 {
		failed, err = r.runSequential(ctx, mux, srcs, w)
	} else {
		failed, err = r.runPool(ctx, mux, srcs, w)
	}
	if err != nil {
		return err
	}

	if failed > 0 {
		return &ExitError{Failed: failed, Total: len(srcs)}
	}
	return nil
}

func (r *Runner) runSequential(ctx context.Context, mux *input.Multiplexer, srcs []input.Source, w io.Writer) (int, error) {
	failed := 0
	for i, src := range srcs {
		if err := ctx.Err(); err != nil {
			return failed, err
		}

		out, err := r.digest(ctx, mux, src)
		ok, err := r.emit(outcome{index: i, src: src, out: out, err: err}, w)
		if err != nil {
			return failed, err
		}
		if !ok {
			failed++
		}
	}
	return failed, nil
}

// runPool digests up to r.jobs inputs at a time. Outcomes arrive in
// completion order and are held back until every earlier input has been
// emitted.
func (r *Runner) runPool(ctx context.Context, mux *input.Multiplexer, srcs []input.Source, w io.Writer) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workerCount := r.jobs
	if workerCount > len(srcs) {
		workerCount = len(srcs)
	}

	type job struct {
		index int
		src   input.Source
	}

	jobs := make(chan job)
	results := make(chan outcome, len(srcs))

	var wg sync.WaitGroup
	wg.Add(workerCount)

	for i := 0; i < workerCount; i++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				out, err := r.digest(ctx, mux, j.src)
				results <- outcome{index: j.index, src: j.src, out: out, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, src := range srcs {
			select {
			case jobs <- job{index: i, src: src}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	pending := make(map[int]outcome)
	next := 0
	failed := 0

	for res := range results {
		pending[res.index] = res

		for {
			o, ready := pending[next]
			if !ready {
				break
			}
			delete(pending, next)
			next++

			ok, err := r.emit(o, w)
			if err != nil {
				return failed, err
			}
			if !ok {
				failed++
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return failed, err
	}
	return failed, nil
}

// emit writes a successful outcome or logs a failed one. It reports
// whether the input succeeded. The returned error aborts the run.
func (r *Runner) emit(o outcome, w io.Writer) (bool, error) {
	if o.err == nil {
		if _, err := w.Write(o.out); err != nil {
			return false, fmt.Errorf("write results for %s: %w", o.src, err)
		}
		return true, nil
	}

	if errors.Is(o.err, context.Canceled) || errors.Is(o.err, context.DeadlineExceeded) {
		return false, o.err
	}

	fields := map[string]any{"input": o.src.String()}
	var cerr *Error
	if errors.As(o.err, &cerr) {
		fields["type"] = cerr.Type.String()
	}
	r.logger.WithFields(fields).Error("%v", o.err)
	return false, nil
}

// digest runs one input through a fresh session and renders its results.
func (r *Runner) digest(ctx context.Context, mux *input.Multiplexer, src input.Source) ([]byte, error) {
	var out []byte

	attrs := map[string]any{
		"input":      src.String(),
		"algorithms": r.sel.DisplayNames(),
	}
	err := tracing.Run(ctx, "checksum.digest", attrs, func(ctx context.Context) error {
		rc, err := mux.Open(src)
		if err != nil {
			if !src.Named() {
				return NewReadError("", err)
			}
			return NewOpenError(src.Name, err)
		}
		defer rc.Close()

		session, err := hashio.NewSession(r.sel, r.sessionOpts...)
		if err != nil {
			return NewFatalError(src.Name, err)
		}

		n, err := session.ReadFrom(ctx, rc)
		if err != nil {
			return classifyReadFailure(src, err)
		}

		ds, err := session.Finalize()
		if err != nil {
			return NewFatalError(src.Name, err)
		}

		results, err := output.NewResults(src, session.Algorithms(), ds)
		if err != nil {
			return NewFatalError(src.Name, err)
		}

		out, err = r.formatter.Format(results)
		if err != nil {
			return NewFatalError(src.Name, err)
		}

		r.logger.WithField("input", src.String()).Debug("digested %d bytes with %d algorithms", n, len(ds))
		return nil
	})

	return out, err
}

func classifyReadFailure(src input.Source, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, hashengines.ErrFinalized):
		return NewFatalError(src.Name, err)
	default:
		var readErr *hashio.ReadError
		if errors.As(err, &readErr) {
			err = readErr.Err
		}
		return NewReadError(src.Name, err)
	}
}
