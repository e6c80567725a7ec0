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

package telemetry

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestFieldAttributesCarriesEntityAndFieldName(t *testing.T) {
	attrs := FieldAttributes("property", "phone")
	want := map[string]string{
		"attrinfer.entity_type": "property",
		"attrinfer.field":       "phone",
	}
	if len(attrs) != len(want) {
		t.Fatalf("len(attrs) = %d, want %d", len(attrs), len(want))
	}
	for _, a := range attrs {
		if want[string(a.Key)] != a.Value.AsString() {
			t.Errorf("attr %s = %q, want %q", a.Key, a.Value.AsString(), want[string(a.Key)])
		}
	}
}

func TestSourceAttributesCarriesSourceName(t *testing.T) {
	attrs := SourceAttributes("property", "phone", "listings")
	found := false
	for _, a := range attrs {
		if string(a.Key) == "attrinfer.source" {
			found = true
			if a.Value.AsString() != "listings" {
				t.Errorf("attrinfer.source = %q, want listings", a.Value.AsString())
			}
		}
	}
	if !found {
		t.Fatal("SourceAttributes did not include attrinfer.source")
	}
}

func TestRegisterWithCustomTracerProviderTakesEffect(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	if err := Register(WithTracerProvider(tp)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tracer := GetTracer()
	_, span := tracer.Start(context.Background(), "attrinfer.field")
	defer span.End()
	if !span.SpanContext().IsValid() {
		t.Error("span from GetTracer() is not valid after Register")
	}
}
