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

package options

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sigstore/checksum/pkg/config"
	hashengines "github.com/sigstore/checksum/pkg/hashing/engines"
	hashio "github.com/sigstore/checksum/pkg/hashing/engines/io"
	"github.com/sigstore/checksum/pkg/hashing/engines/memory"
	"github.com/sigstore/checksum/pkg/output"
)

// algorithmFlag is a boolean flag that records its algorithm in a shared
// slice each time it is set to true, so the slice follows command-line
// order across all algorithm flags.
type algorithmFlag struct {
	id       string
	selected *[]string
	set      bool
}

var _ pflag.Value = (*algorithmFlag)(nil)

func (f *algorithmFlag) String() string {
	return strconv.FormatBool(f.set)
}

func (f *algorithmFlag) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	f.set = v
	if v {
		*f.selected = append(*f.selected, f.id)
	}
	return nil
}

// Type reports "bool" so pflag accepts the flag without a value.
func (f *algorithmFlag) Type() string {
	return "bool"
}

// DigestOptions holds the algorithm selection and the run settings.
type DigestOptions struct {
	// Algorithms are the requested identifiers in command-line order.
	Algorithms []string
	// Format names the output format.
	Format string
	// Jobs is the number of inputs digested concurrently.
	Jobs int
	// ParallelDigests updates all engines of an input concurrently.
	ParallelDigests bool
	// ChunkSize is the read size in bytes.
	ChunkSize int

	registry *hashengines.Registry
}

var _ FlagAdder = (*DigestOptions)(nil)

// AddFlags registers one flag per registered algorithm plus the run flags.
func (o *DigestOptions) AddFlags(cmd *cobra.Command) {
	if o.registry == nil {
		o.registry = memory.Registry()
	}

	for _, alg := range o.registry.Algorithms() {
		f := cmd.Flags().VarPF(&algorithmFlag{id: alg.ID, selected: &o.Algorithms}, alg.ID, "",
			fmt.Sprintf("compute the %s digest", alg.DisplayName))
		f.NoOptDefVal = "true"
	}

	cmd.Flags().StringVar(&o.Format, "format", output.FormatText,
		fmt.Sprintf("output format (%s)", strings.Join(output.Formats(), ", ")))

	cmd.Flags().IntVarP(&o.Jobs, "jobs", "j", 1,
		"number of inputs to digest concurrently")

	cmd.Flags().BoolVar(&o.ParallelDigests, "parallel-digests", false,
		"update every selected algorithm concurrently for each chunk")

	cmd.Flags().IntVar(&o.ChunkSize, "chunk-size", hashio.DefaultChunkSize,
		"number of bytes read per chunk")
}

// DigestConfig converts the flags into a config.DigestConfig.
func (o *DigestOptions) DigestConfig() *config.DigestConfig {
	cfg := config.NewDigestConfig().
		SetFormat(o.Format).
		SetJobs(o.Jobs).
		SetParallelUpdate(o.ParallelDigests).
		SetChunkSize(o.ChunkSize)
	for _, id := range o.Algorithms {
		cfg.AddAlgorithm(id)
	}
	if o.registry != nil {
		cfg.SetRegistry(o.registry)
	}
	return cfg
}
