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

package tracing

import (
	"context"
	"errors"
	"testing"
)

type recordedSpan struct {
	name  string
	attrs map[string]any
	err   error
	ended bool
}

func (s *recordedSpan) SetAttribute(key string, value any) {
	s.attrs[key] = value
}

func (s *recordedSpan) RecordError(err error) {
	s.err = err
}

func (s *recordedSpan) End() {
	s.ended = true
}

type recordingTracer struct {
	spans []*recordedSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string) (context.Context, Span) {
	s := &recordedSpan{name: name, attrs: map[string]any{}}
	t.spans = append(t.spans, s)
	return ctx, s
}

func TestRun_Disabled(t *testing.T) {
	SetTracer(nil)
	if Enabled() {
		t.Fatal("Enabled() with the no-op tracer should be false")
	}

	called := false
	err := Run(context.Background(), "op", map[string]any{"k": "v"}, func(context.Context) error {
		called = true
		return nil
	})
	if err != nil || !called {
		t.Errorf("Run() = %v, called = %v", err, called)
	}
}

func TestRun_RecordsSpan(t *testing.T) {
	rec := &recordingTracer{}
	SetTracer(rec)
	t.Cleanup(func() { SetTracer(nil) })

	boom := errors.New("boom")
	err := Run(context.Background(), "checksum.digest", map[string]any{"input": "f"}, func(context.Context) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want %v", err, boom)
	}

	if len(rec.spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(rec.spans))
	}
	s := rec.spans[0]
	if s.name != "checksum.digest" {
		t.Errorf("span name = %q", s.name)
	}
	if s.attrs["input"] != "f" {
		t.Errorf("span attrs = %v", s.attrs)
	}
	if !errors.Is(s.err, boom) {
		t.Errorf("span error = %v, want %v", s.err, boom)
	}
	if !s.ended {
		t.Error("span was not ended")
	}
}

func TestSetTracer_NilRestoresNoop(t *testing.T) {
	SetTracer(&recordingTracer{})
	SetTracer(nil)

	if _, ok := GetTracer().(NoopTracer); !ok {
		t.Errorf("GetTracer() = %T, want NoopTracer", GetTracer())
	}
}

func TestInitFromEnv_Default(t *testing.T) {
	t.Setenv("OTEL_TRACES_EXPORTER", "none")
	if err := InitFromEnv(); err != nil {
		t.Errorf("InitFromEnv() error = %v", err)
	}
	if err := Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
