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

// Package config turns user-facing settings into the options of a run.
package config

import (
	"fmt"

	"github.com/sigstore/checksum/pkg/checksum"
	hashengines "github.com/sigstore/checksum/pkg/hashing/engines"
	hashio "github.com/sigstore/checksum/pkg/hashing/engines/io"
	"github.com/sigstore/checksum/pkg/hashing/engines/memory"
	"github.com/sigstore/checksum/pkg/logging"
	"github.com/sigstore/checksum/pkg/output"
)

// DigestConfig collects the settings of a run.
//
// Setters return the receiver for chaining:
//
//	opts, err := config.NewDigestConfig().
//	    SetAlgorithms("sha256", "crc32").
//	    SetJobs(4).
//	    Resolve()
type DigestConfig struct {
	registry       *hashengines.Registry
	algorithms     []string
	chunkSize      int
	jobs           int
	parallelUpdate bool
	format         string
	logger         logging.Logger
}

// NewDigestConfig returns a configuration with the default algorithms, one
// job, 256 KiB reads and text output.
func NewDigestConfig() *DigestConfig {
	return &DigestConfig{
		registry:  memory.Registry(),
		chunkSize: hashio.DefaultChunkSize,
		jobs:      1,
		format:    output.FormatText,
	}
}

// SetRegistry replaces the algorithm registry.
func (c *DigestConfig) SetRegistry(reg *hashengines.Registry) *DigestConfig {
	c.registry = reg
	return c
}

// SetAlgorithms replaces the requested identifiers. Order matters.
func (c *DigestConfig) SetAlgorithms(ids ...string) *DigestConfig {
	c.algorithms = append([]string(nil), ids...)
	return c
}

// AddAlgorithm appends one requested identifier.
func (c *DigestConfig) AddAlgorithm(id string) *DigestConfig {
	c.algorithms = append(c.algorithms, id)
	return c
}

// SetChunkSize sets the read size per chunk.
func (c *DigestConfig) SetChunkSize(n int) *DigestConfig {
	c.chunkSize = n
	return c
}

// SetJobs sets how many inputs are digested concurrently.
func (c *DigestConfig) SetJobs(n int) *DigestConfig {
	c.jobs = n
	return c
}

// SetParallelUpdate enables concurrent engine updates for each chunk.
func (c *DigestConfig) SetParallelUpdate(enabled bool) *DigestConfig {
	c.parallelUpdate = enabled
	return c
}

// SetFormat selects the output format by name.
func (c *DigestConfig) SetFormat(format string) *DigestConfig {
	c.format = format
	return c
}

// SetLogger sets the logger handed to the runner.
func (c *DigestConfig) SetLogger(l logging.Logger) *DigestConfig {
	c.logger = l
	return c
}

// Algorithms returns the requested identifiers.
func (c *DigestConfig) Algorithms() []string {
	return append([]string(nil), c.algorithms...)
}

// Resolve validates the configuration. Every failure is a
// *checksum.Error of type ErrTypeConfiguration.
func (c *DigestConfig) Resolve() (checksum.Options, error) {
	if c.registry == nil {
		return checksum.Options{}, checksum.NewConfigurationError("registry", fmt.Errorf("no algorithm registry configured"))
	}

	sel, err := ResolveSelection(c.registry, c.algorithms)
	if err != nil {
		return checksum.Options{}, err
	}

	formatter, err := output.NewFormatter(c.format)
	if err != nil {
		return checksum.Options{}, checksum.NewConfigurationError("--format="+c.format, err)
	}

	if c.jobs < 1 {
		return checksum.Options{}, checksum.NewConfigurationError(
			fmt.Sprintf("--jobs=%d", c.jobs), fmt.Errorf("must be at least 1"))
	}
	if c.chunkSize < 1 {
		return checksum.Options{}, checksum.NewConfigurationError(
			fmt.Sprintf("--chunk-size=%d", c.chunkSize), fmt.Errorf("must be positive"))
	}

	return checksum.Options{
		Selection:      sel,
		Formatter:      formatter,
		ChunkSize:      c.chunkSize,
		Jobs:           c.jobs,
		ParallelUpdate: c.parallelUpdate,
		Logger:         logging.EnsureLogger(c.logger),
	}, nil
}
