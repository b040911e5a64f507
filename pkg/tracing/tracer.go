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

// Package tracing wraps per-input work in spans. The default build uses a
// no-op tracer; building with -tags=otel and configuring the usual OTEL_*
// environment variables exports spans over OTLP/HTTP instead.
package tracing

import "context"

// Span is one timed operation.
type Span interface {
	SetAttribute(key string, value any)
	// RecordError marks the span as failed.
	RecordError(err error)
	End()
}

// Tracer starts spans.
type Tracer interface {
	Start(ctx context.Context, name string) (context.Context, Span)
}

var globalTracer Tracer = NoopTracer{}

// SetTracer replaces the global tracer. nil restores the no-op tracer.
func SetTracer(t Tracer) {
	if t == nil {
		globalTracer = NoopTracer{}
		return
	}
	globalTracer = t
}

// GetTracer returns the global tracer. It is never nil.
func GetTracer() Tracer {
	return globalTracer
}

// Start starts a span on the global tracer.
func Start(ctx context.Context, name string) (context.Context, Span) {
	return globalTracer.Start(ctx, name)
}

// Enabled reports whether a tracer other than the no-op one is installed.
func Enabled() bool {
	_, noop := globalTracer.(NoopTracer)
	return !noop
}

// Run calls fn inside a span named name carrying attrs. A non-nil error
// from fn is recorded on the span and returned unchanged. With tracing
// disabled fn is called directly.
func Run(ctx context.Context, name string, attrs map[string]any, fn func(context.Context) error) error {
	if !Enabled() {
		return fn(ctx)
	}

	ctx, span := globalTracer.Start(ctx, name)
	defer span.End()

	for k, v := range attrs {
		span.SetAttribute(k, v)
	}

	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
	}
	return err
}
