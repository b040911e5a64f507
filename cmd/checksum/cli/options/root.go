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
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sigstore/checksum/pkg/checksum"
	"github.com/sigstore/checksum/pkg/logging"
)

// LogPrefix starts every text diagnostic.
const LogPrefix = "checksum: "

// ValidLogLevels lists the valid log level strings.
var ValidLogLevels = []string{"debug", "info", "warn", "error", "silent"}

// ValidLogFormats lists the valid log format strings.
var ValidLogFormats = []string{"text", "json"}

// RootOptions holds the ambient flags: where results go and how
// diagnostics are logged.
type RootOptions struct {
	// OutputFile receives results instead of stdout when set.
	OutputFile string
	// LogLevel sets the minimum log level (debug, info, warn, error, silent).
	LogLevel string
	// LogFormat sets the log output format (text, json).
	LogFormat string
}

var _ FlagAdder = (*RootOptions)(nil)

// AddFlags registers the root flags on cmd.
func (o *RootOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.OutputFile, "output-file", "",
		"write results to a file instead of stdout")
	_ = cmd.MarkFlagFilename("output-file")

	cmd.Flags().StringVar(&o.LogLevel, "log-level", "info",
		"set the minimum log level (debug, info, warn, error, silent)")

	cmd.Flags().StringVar(&o.LogFormat, "log-format", "text",
		"set the log output format (text, json)")
}

// GetLogLevel parses --log-level.
func (o *RootOptions) GetLogLevel() (logging.LogLevel, error) {
	level, err := logging.ParseLogLevel(o.LogLevel)
	if err != nil {
		return level, checksum.NewConfigurationError("--log-level="+o.LogLevel, err)
	}
	return level, nil
}

// GetLogFormat parses --log-format.
func (o *RootOptions) GetLogFormat() (logging.LogFormat, error) {
	format, err := logging.ParseLogFormat(o.LogFormat)
	if err != nil {
		return format, checksum.NewConfigurationError("--log-format="+o.LogFormat, err)
	}
	return format, nil
}

// NewLogger builds the diagnostic logger writing to w. Level tags and
// structured fields are only shown in text mode at debug level.
func (o *RootOptions) NewLogger(w io.Writer) (logging.Logger, error) {
	level, err := o.GetLogLevel()
	if err != nil {
		return nil, err
	}
	format, err := o.GetLogFormat()
	if err != nil {
		return nil, err
	}

	return logging.NewLogger(logging.LoggerOptions{
		Level:      level,
		Format:     format,
		Output:     w,
		Prefix:     LogPrefix,
		ShowFields: level == logging.LevelDebug,
		ShowLevel:  level == logging.LevelDebug,
	}), nil
}

// OpenOutput returns the writer for results: the --output-file if one was
// given, otherwise stdout. The returned close function is never nil.
func (o *RootOptions) OpenOutput(stdout io.Writer) (io.Writer, func() error, error) {
	if o.OutputFile == "" {
		return stdout, func() error { return nil }, nil
	}

	f, err := os.Create(o.OutputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating output file %s: %w", o.OutputFile, err)
	}
	return f, f.Close, nil
}
