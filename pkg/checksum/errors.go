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
	"errors"
	"fmt"
)

// ErrorType classifies a failure.
type ErrorType int

const (
	// ErrTypeUnknown indicates an unclassified error.
	ErrTypeUnknown ErrorType = iota

	// ErrTypeConfiguration indicates an invalid option or algorithm. Nothing
	// has been read when it is reported.
	ErrTypeConfiguration

	// ErrTypeInputUnavailable indicates an input that could not be opened or
	// read. Other inputs are still processed.
	ErrTypeInputUnavailable

	// ErrTypeFatal indicates misuse of a digest session or engine.
	ErrTypeFatal
)

// String returns the name used in diagnostics.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConfiguration:
		return "ConfigurationError"
	case ErrTypeInputUnavailable:
		return "InputUnavailable"
	case ErrTypeFatal:
		return "Fatal"
	default:
		return "UnknownError"
	}
}

// Error is a classified failure, optionally tied to one input.
//
//	var cerr *checksum.Error
//	if errors.As(err, &cerr) && cerr.Type == checksum.ErrTypeInputUnavailable {
//	    // skip cerr.Input
//	}
type Error struct {
	Type ErrorType
	// Input is the path of the failed input. It is empty for standard input
	// and for configuration errors.
	Input   string
	Message string
	Cause   error
}

// Error returns "message: cause", or just the message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewConfigurationError reports an invalid option.
func NewConfigurationError(option string, cause error) *Error {
	return &Error{
		Type:    ErrTypeConfiguration,
		Message: fmt.Sprintf("invalid option '%s'", option),
		Cause:   cause,
	}
}

// NewOpenError reports an input that could not be opened.
func NewOpenError(name string, cause error) *Error {
	return &Error{
		Type:    ErrTypeInputUnavailable,
		Input:   name,
		Message: fmt.Sprintf("unable to open '%s'", name),
		Cause:   cause,
	}
}

// NewReadError reports an input that failed while being read. An empty name
// means standard input.
func NewReadError(name string, cause error) *Error {
	msg := "unable to read from stdin"
	if name != "" {
		msg = fmt.Sprintf("unable to read from '%s'", name)
	}
	return &Error{
		Type:    ErrTypeInputUnavailable,
		Input:   name,
		Message: msg,
		Cause:   cause,
	}
}

// NewFatalError reports a digest session that could not produce results.
func NewFatalError(name string, cause error) *Error {
	display := name
	if display == "" {
		display = "stdin"
	}
	return &Error{
		Type:    ErrTypeFatal,
		Input:   name,
		Message: fmt.Sprintf("digest failure for '%s'", display),
		Cause:   cause,
	}
}

// IsType reports whether err wraps an *Error of type t.
func IsType(err error, t ErrorType) bool {
	var cerr *Error
	return errors.As(err, &cerr) && cerr.Type == t
}

// ExitError is returned by Runner.Run after every failed input has already
// been reported. Callers exit with ExitCode and print nothing further.
type ExitError struct {
	Failed int
	Total  int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%d of %d inputs failed", e.Failed, e.Total)
}

// ExitCode returns the process status for a run with failed inputs.
func (e *ExitError) ExitCode() int {
	return 1
}
