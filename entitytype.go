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

package attrinfer

// EntityType is the declaration registry for one kind of entity: it holds
// named Datasets, Helpers, and Fields. Build one with New, declare it once
// at process startup (typically from a package-level constructor the host
// calls from an init function or a sync.OnceValue), then call Evaluator per
// entity instance to evaluate.
//
// EntityType is not safe for concurrent declaration; it is safe to call
// Evaluator concurrently once declaration has finished, since Evaluator only
// reads already-settled maps.
type EntityType[E any] struct {
	name       string
	datasets   map[string]DatasetProducer[E]
	helpers    map[string]Helper[E]
	fields     map[string]*Field[E]
	fieldOrder []string
}

// New creates an empty declaration registry for entity type E. name
// identifies the entity type in telemetry spans and error messages; it has
// no other semantic effect.
func New[E any](name string) *EntityType[E] {
	return &EntityType[E]{
		name:     name,
		datasets: map[string]DatasetProducer[E]{},
		helpers:  map[string]Helper[E]{},
		fields:   map[string]*Field[E]{},
	}
}

// Name returns the name this entity type was created with.
func (t *EntityType[E]) Name() string { return t.name }

// Dataset registers a named dataset producer. Registration is idempotent:
// the first call for a given name wins and later calls with the same name
// are ignored, matching spec.md 4.1's "idempotent (first declaration
// wins)".
func (t *EntityType[E]) Dataset(name string, producer DatasetProducer[E]) {
	if _, exists := t.datasets[name]; exists {
		return
	}
	t.datasets[name] = producer
}

// Helper (re)binds a named helper, injected into every user block's
// Context.
func (t *EntityType[E]) Helper(name string, fn Helper[E]) {
	t.helpers[name] = fn
}

// Share registers, for each attr, a helper of the same name that forwards
// to the entity instance's field or method of the same name.
func (t *EntityType[E]) Share(attrs ...string) {
	for _, attr := range attrs {
		t.Helper(attr, shareHelper[E](attr))
	}
}

// Field creates the named field on first call and invokes body to declare
// its canonicalizer, preferrer, and sources. On a later call with the same
// name, Field re-enters the existing field's declaration context: body runs
// again against the same *Field, so it can append sources or override the
// canonicalizer/preferrer while existing sources are preserved, matching
// spec.md 4.1's re-entry semantics.
func (t *EntityType[E]) Field(name string, body func(*Field[E])) *Field[E] {
	f, exists := t.fields[name]
	if !exists {
		f = newField[E](t, name)
		t.fields[name] = f
		t.fieldOrder = append(t.fieldOrder, name)
	}
	if body != nil {
		body(f)
	}
	return f
}

// Evaluator materializes an EntityEvaluator for one entity instance.
// Declarations must be complete before Evaluator is called; EntityType is
// treated as immutable from this point on.
func (t *EntityType[E]) Evaluator(entity E) *EntityEvaluator[E] {
	return &EntityEvaluator[E]{
		entityType:      t,
		entity:          entity,
		fieldEvaluators: map[string]*FieldEvaluator[E]{},
	}
}

// FieldByName returns the named field declaration, or nil if no such field
// was declared.
func (t *EntityType[E]) FieldByName(name string) *Field[E] {
	return t.fields[name]
}

// FieldNames returns every declared field name in declaration order.
func (t *EntityType[E]) FieldNames() []string {
	out := make([]string, len(t.fieldOrder))
	copy(out, t.fieldOrder)
	return out
}
