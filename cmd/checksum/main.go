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

package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sigstore/checksum/cmd/checksum/cli"
	"github.com/sigstore/checksum/cmd/checksum/cli/options"
	"github.com/sigstore/checksum/pkg/tracing"
)

// exitInterrupted is the conventional status for termination by SIGINT.
const exitInterrupted = 130

type ExitCoder interface {
	error
	ExitCode() int
}

func main() {
	log.SetFlags(0)
	log.SetPrefix(options.LogPrefix)

	if err := tracing.InitFromEnv(); err != nil {
		log.Printf("tracing disabled: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := tracing.Shutdown(shutdownCtx); err != nil {
		log.Printf("tracing shutdown: %v", err)
	}
	cancel()

	os.Exit(code)
}

// run executes the command and returns the process exit status. It returns
// as soon as ctx is done, without waiting for a blocked read to finish.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := cli.New()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	done := make(chan error, 1)
	go func() {
		done <- cmd.ExecuteContext(ctx)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		return exitInterrupted
	}

	// Both cases can be ready at once when a signal arrives.
	if ctx.Err() != nil {
		return exitInterrupted
	}
	if err == nil {
		return 0
	}

	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}

	log.New(stderr, options.LogPrefix, 0).Printf("%v", err)
	return 1
}
