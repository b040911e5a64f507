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

package checksum

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigstore/checksum/pkg/hashing/digests"
	hashengines "github.com/sigstore/checksum/pkg/hashing/engines"
	"github.com/sigstore/checksum/pkg/hashing/engines/memory"
	"github.com/sigstore/checksum/pkg/input"
	"github.com/sigstore/checksum/pkg/logging"
	"github.com/sigstore/checksum/pkg/output"
)

const (
	md5ABC    = "900150983cd24fb0d6963f7d28e17f72"
	sha256ABC = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	sha512ABC = "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"
	rmd160ABC = "8eb208f7e05d987a9b044a8e98c6b087f15a0bfc"
	crc32ABC  = "352441c2"
)

func selection(t *testing.T, algs ...hashengines.Algorithm) hashengines.Selection {
	t.Helper()
	sel, err := hashengines.NewSelection(algs...)
	require.NoError(t, err)
	return sel
}

func defaultSelection(t *testing.T) hashengines.Selection {
	return selection(t, memory.MD5Algorithm, memory.SHA256Algorithm, memory.SHA512Algorithm, memory.RMD160Algorithm)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

type harness struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
	runner *Runner
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{}
	opts.Logger = logging.NewLogger(logging.LoggerOptions{Level: logging.LevelInfo, Output: &h.stderr})

	r, err := NewRunner(opts)
	require.NoError(t, err)
	h.runner = r
	return h
}

func (h *harness) run(t *testing.T, paths []string, stdin string) error {
	t.Helper()
	mux := input.NewMultiplexer(paths, strings.NewReader(stdin))
	return h.runner.Run(context.Background(), mux, &h.stdout)
}

func TestRun_StdinDefaultSelection(t *testing.T) {
	h := newHarness(t, Options{Selection: defaultSelection(t)})

	require.NoError(t, h.run(t, nil, "abc"))

	assert.Equal(t,
		"MD5 = "+md5ABC+"\n"+
			"SHA256 = "+sha256ABC+"\n"+
			"SHA512 = "+sha512ABC+"\n"+
			"RMD160 = "+rmd160ABC+"\n",
		h.stdout.String())
	assert.Empty(t, h.stderr.String())
}

func TestRun_SelectionOrder(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "f", "abc")

	h := newHarness(t, Options{Selection: selection(t, memory.SHA256Algorithm, memory.CRC32Algorithm)})
	require.NoError(t, h.run(t, []string{f}, ""))

	assert.Equal(t,
		fmt.Sprintf("SHA256 (%s) = %s\nCRC32 (%s) = %s\n", f, sha256ABC, f, crc32ABC),
		h.stdout.String())
}

func TestRun_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "empty", "")

	h := newHarness(t, Options{Selection: selection(t, memory.MD5Algorithm, memory.SHA256Algorithm)})
	require.NoError(t, h.run(t, []string{f}, ""))

	assert.Equal(t,
		"MD5 ("+f+") = d41d8cd98f00b204e9800998ecf8427e\n"+
			"SHA256 ("+f+") = e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855\n",
		h.stdout.String())
}

func TestRun_MissingAndPresentFiles(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")
	present := writeFile(t, dir, "present", "abc")

	h := newHarness(t, Options{Selection: selection(t, memory.MD5Algorithm)})
	err := h.run(t, []string{missing, present}, "")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Failed)
	assert.Equal(t, 2, exitErr.Total)
	assert.Equal(t, 1, exitErr.ExitCode())

	assert.Equal(t, "MD5 ("+present+") = "+md5ABC+"\n", h.stdout.String())

	lines := strings.Split(strings.TrimSuffix(h.stderr.String(), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "unable to open '"+missing+"'"), lines[0])
}

func TestRun_DirectoryIsUnreadable(t *testing.T) {
	dir := t.TempDir()

	h := newHarness(t, Options{Selection: selection(t, memory.MD5Algorithm)})
	err := h.run(t, []string{dir}, "")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Empty(t, h.stdout.String())
	assert.Contains(t, h.stderr.String(), "unable to read from '"+dir+"'")
}

func TestRun_DashIsAFilePath(t *testing.T) {
	h := newHarness(t, Options{Selection: selection(t, memory.MD5Algorithm)})
	mux := input.NewMultiplexer([]string{"-"}, strings.NewReader("abc"), input.WithOpener(func(path string) (io.ReadCloser, error) {
		return nil, os.ErrNotExist
	}))

	err := h.runner.Run(context.Background(), mux, &h.stdout)

	require.Error(t, err)
	assert.Empty(t, h.stdout.String())
	assert.Contains(t, h.stderr.String(), "unable to open '-'")
}

func TestRun_JobsPreserveInputOrder(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	for i := 0; i < 24; i++ {
		if i%5 == 3 {
			paths = append(paths, filepath.Join(dir, fmt.Sprintf("missing-%02d", i)))
			continue
		}
		paths = append(paths, writeFile(t, dir, fmt.Sprintf("f-%02d", i), strings.Repeat("x", i*1000)))
	}

	sequential := newHarness(t, Options{Selection: defaultSelection(t)})
	seqErr := sequential.run(t, paths, "")

	for _, jobs := range []int{2, 4, 32} {
		t.Run(fmt.Sprintf("jobs=%d", jobs), func(t *testing.T) {
			concurrent := newHarness(t, Options{Selection: defaultSelection(t), Jobs: jobs, ChunkSize: 512})
			err := concurrent.run(t, paths, "")

			assert.Equal(t, seqErr, err)
			assert.Equal(t, sequential.stdout.String(), concurrent.stdout.String())
			assert.Equal(t, sequential.stderr.String(), concurrent.stderr.String())
		})
	}
}

func TestRun_ParallelUpdateMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "big", strings.Repeat("0123456789", 70000))
	all := selection(t, memory.Registry().Algorithms()...)

	plain := newHarness(t, Options{Selection: all})
	require.NoError(t, plain.run(t, []string{f}, ""))

	parallel := newHarness(t, Options{Selection: all, ParallelUpdate: true, ChunkSize: 4096})
	require.NoError(t, parallel.run(t, []string{f}, ""))

	assert.Equal(t, plain.stdout.String(), parallel.stdout.String())
}

func TestRun_JSONFormat(t *testing.T) {
	h := newHarness(t, Options{Selection: selection(t, memory.CRC32Algorithm), Formatter: &output.JSONFormatter{}})
	require.NoError(t, h.run(t, nil, "abc"))

	assert.Equal(t, `{"algorithm":"CRC32","digest":"352441c2"}`+"\n", h.stdout.String())
}

func TestRun_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "f", "abc")

	for _, jobs := range []int{1, 4} {
		h := newHarness(t, Options{Selection: selection(t, memory.MD5Algorithm), Jobs: jobs})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := h.runner.Run(ctx, input.NewMultiplexer([]string{f, f}, nil), &h.stdout)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, h.stdout.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRun_WriteFailureStopsRun(t *testing.T) {
	h := newHarness(t, Options{Selection: selection(t, memory.MD5Algorithm)})

	err := h.runner.Run(context.Background(), input.NewMultiplexer(nil, strings.NewReader("abc")), failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")

	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
}

// brokenEngine finalizes into an error, standing in for a misbehaving engine.
type brokenEngine struct{}

func (brokenEngine) Update([]byte) error { return nil }
func (brokenEngine) Reset([]byte)        {}
func (brokenEngine) Compute() (digests.Digest, error) {
	return digests.Digest{}, hashengines.ErrFinalized
}
func (brokenEngine) DigestName() string { return "BROKEN" }
func (brokenEngine) DigestSize() int    { return 4 }

func TestRun_EngineFailureIsFatal(t *testing.T) {
	broken := hashengines.Algorithm{
		ID:          "broken",
		DisplayName: "BROKEN",
		Size:        4,
		New: func() (hashengines.StreamingHashEngine, error) {
			return brokenEngine{}, nil
		},
	}

	h := newHarness(t, Options{Selection: selection(t, memory.MD5Algorithm, broken)})
	err := h.run(t, nil, "abc")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Empty(t, h.stdout.String(), "no partial results for a failed input")
	assert.Contains(t, h.stderr.String(), "digest failure for 'stdin'")
}

func TestRun_JSONLogsCarryErrorType(t *testing.T) {
	var stderr bytes.Buffer
	r, err := NewRunner(Options{
		Selection: selection(t, memory.MD5Algorithm),
		Logger:    logging.NewLogger(logging.LoggerOptions{Level: logging.LevelInfo, Format: logging.FormatJSON, Output: &stderr}),
	})
	require.NoError(t, err)

	var stdout bytes.Buffer
	err = r.Run(context.Background(), input.NewMultiplexer([]string{filepath.Join(t.TempDir(), "nope")}, nil), &stdout)
	require.Error(t, err)

	assert.Contains(t, stderr.String(), `"type":"InputUnavailable"`)
	assert.Contains(t, stderr.String(), `"level":"error"`)
}

func TestNewRunner_Validation(t *testing.T) {
	_, err := NewRunner(Options{})
	assert.ErrorIs(t, err, hashengines.ErrEmptySelection)

	_, err = NewRunner(Options{Selection: defaultSelection(t), Jobs: -1})
	assert.Error(t, err)

	_, err = NewRunner(Options{Selection: defaultSelection(t), ChunkSize: -1})
	assert.Error(t, err)
}
