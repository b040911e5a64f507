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

// Package cli builds the checksum command.
package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/release-utils/version"

	"github.com/sigstore/checksum/cmd/checksum/cli/options"
	"github.com/sigstore/checksum/pkg/checksum"
	"github.com/sigstore/checksum/pkg/input"
)

const long = `Compute digests of files, or of standard input when no file is given.

Each selected algorithm produces one line per input:

  ALGORITHM (FILE) = HEXDIGEST
  ALGORITHM = HEXDIGEST          (standard input)

Algorithms are printed in the order their flags appear. Without any
algorithm flag, MD5, SHA256, SHA512 and RMD160 are computed.`

// New returns the root command.
func New() *cobra.Command {
	ro := &options.RootOptions{}
	do := &options.DigestOptions{}
	var showVersion bool

	cmd := &cobra.Command{
		Use:               "checksum [options] [file...]",
		Short:             "Compute CRC32, MD5, SHA256, SHA512 and RMD160 digests.",
		Long:              long,
		Args:              cobra.ArbitraryArgs,
		Version:           versionString(),
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE: func(cmd *cobra.Command, args []string) error {
			obs, err := ro.NewObservability(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			opts, err := do.DigestConfig().SetLogger(obs.Logger).Resolve()
			if err != nil {
				return err
			}

			runner, err := checksum.NewRunner(opts)
			if err != nil {
				return err
			}

			out, closeOut, err := ro.OpenOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			mux := input.NewMultiplexer(args, cmd.InOrStdin())
			runErr := runner.Run(cmd.Context(), mux, out)
			if err := closeOut(); err != nil && runErr == nil {
				runErr = err
			}
			return runErr
		},
	}

	cmd.Flags().BoolVarP(&showVersion, "version", "V", false, "print the version and exit")
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	// Use already spells out the synopsis.
	cmd.DisableFlagsInUseLine = true
	cmd.Flags().SortFlags = false

	options.AddAllFlags(cmd, do, ro)

	cmd.SetFlagErrorFunc(flagError)
	return cmd
}

// flagError turns a flag parsing failure into a configuration error naming
// the offending option as it was written.
func flagError(_ *cobra.Command, err error) error {
	var notExist *pflag.NotExistError
	if errors.As(err, &notExist) {
		return checksum.NewConfigurationError(optionName(notExist.GetSpecifiedName(), notExist.GetSpecifiedShortnames()), nil)
	}

	var required *pflag.ValueRequiredError
	if errors.As(err, &required) {
		return checksum.NewConfigurationError(optionName(required.GetSpecifiedName(), required.GetSpecifiedShortnames()), err)
	}

	var invalid *pflag.InvalidValueError
	if errors.As(err, &invalid) {
		return checksum.NewConfigurationError("--"+invalid.GetFlag().Name+"="+invalid.GetValue(), err)
	}

	return &checksum.Error{Type: checksum.ErrTypeConfiguration, Message: err.Error()}
}

func versionString() string {
	if v := version.GetVersionInfo().GitVersion; v != "" {
		return v
	}
	return "devel"
}

func optionName(name, shorthands string) string {
	if shorthands != "" {
		return "-" + name
	}
	return "--" + name
}
