// Copyright 2026 The Attrinfer Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package telemetry wires attrinfer's field/source evaluation into
// OpenTelemetry tracing.
package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var (
	once   sync.Once
	limits = sdktrace.SpanLimits{
		AttributeValueLengthLimit:   -1,
		AttributeCountLimit:         -1,
		EventCountLimit:             -1,
		LinkCountLimit:              -1,
		AttributePerEventCountLimit: -1,
		AttributePerLinkCountLimit:  -1,
	}
)

// Register installs a process-wide TracerProvider built from cfg, applying
// any span processors the caller supplied. When WithTracerProvider is given,
// that provider is installed as is and the span processors and resource are
// not applied. Register is safe to call multiple times; only the first call
// takes effect.
func Register(opts ...Option) error {
	cfg := &config{}
	for _, o := range opts {
		if err := o.apply(cfg); err != nil {
			return err
		}
	}
	once.Do(func() {
		if cfg.tracerProvider != nil {
			otel.SetTracerProvider(cfg.tracerProvider)
			return
		}
		tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithRawSpanLimits(limits)}
		if cfg.resource != nil {
			tpOpts = append(tpOpts, sdktrace.WithResource(cfg.resource))
		}
		tp := sdktrace.NewTracerProvider(tpOpts...)
		for _, p := range cfg.spanProcessors {
			tp.RegisterSpanProcessor(p)
		}
		otel.SetTracerProvider(tp)
	})
	return nil
}

// GetTracer returns the attrinfer tracer registered by Register, or the
// no-op tracer if Register was never called.
func GetTracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer("attrinfer")
}

// FieldAttributes builds the span attributes recorded on an
// "attrinfer.field" span.
func FieldAttributes(entityType, field string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("attrinfer.entity_type", entityType),
		attribute.String("attrinfer.field", field),
	}
}

// SourceAttributes builds the span attributes recorded on an
// "attrinfer.source" span.
func SourceAttributes(entityType, field, source string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("attrinfer.entity_type", entityType),
		attribute.String("attrinfer.field", field),
		attribute.String("attrinfer.source", source),
	}
}
