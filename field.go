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

// Field is a named inferred attribute: a field-level canonicalizer, a
// field-level preferrer, and an ordered set of Sources each contributing a
// weighted scorecard.
//
// The zero-value canonicalizer is identity (a raw value canonicalizes to
// itself) and the zero-value preferrer returns the canonical key unchanged,
// matching spec.md 3's stated defaults.
type Field[E any] struct {
	owner        *EntityType[E]
	name         string
	canonicalize Canonicalize[E]
	prefer       Prefer[E]
	sources      map[string]*Source[E]
	sourceOrder  []string
	weights      map[string]float64
}

func newField[E any](owner *EntityType[E], name string) *Field[E] {
	return &Field[E]{
		owner:   owner,
		name:    name,
		sources: map[string]*Source[E]{},
		weights: map[string]float64{},
	}
}

// Name returns the field's declared name.
func (f *Field[E]) Name() string { return f.name }

// Canonicalize sets the field-level canonicalizer, used to regroup
// ungrouped cross-source scores in FieldEvaluator.GroupedScores.
func (f *Field[E]) Canonicalize(fn Canonicalize[E]) { f.canonicalize = fn }

// Prefer sets the field-level preferrer, used to pick the final
// representative of each field-canonical group in FieldEvaluator.Scores.
func (f *Field[E]) Prefer(fn Prefer[E]) { f.prefer = fn }

// Source declares a source under this field, bound to the named dataset
// with the given weight, and invokes body to set its candidates producer,
// score function, and optional source-level canonicalizer/preferrer.
//
// Source panics with a *ConfigurationError if weight is not positive, if
// dsName was never registered via EntityType.Dataset, or if body leaves the
// source without a candidates producer or a score function — all
// declaration-time defects spec.md 6 assigns to ConfigurationError. A
// source is keyed by its dataset name; declaring a second source against
// the same dataset name on the same field replaces the first.
func (f *Field[E]) Source(dsName string, weight float64, body func(*Source[E])) *Source[E] {
	if weight <= 0 || weight != weight {
		panic(&ConfigurationError{Field: f.name, Source: dsName, Reason: "weight must be a positive number"})
	}
	if _, ok := f.owner.datasets[dsName]; !ok {
		panic(&ConfigurationError{Field: f.name, Source: dsName, Reason: "no dataset registered with this name"})
	}
	s := newSource[E](f, dsName)
	if body != nil {
		body(s)
	}
	if s.candidates == nil {
		panic(&ConfigurationError{Field: f.name, Source: dsName, Reason: "missing candidates producer"})
	}
	if s.score == nil {
		panic(&ConfigurationError{Field: f.name, Source: dsName, Reason: "missing score function"})
	}
	if _, exists := f.sources[dsName]; !exists {
		f.sourceOrder = append(f.sourceOrder, dsName)
	}
	f.sources[dsName] = s
	f.weights[dsName] = weight
	return s
}

// SetWeight overrides the weight of an already-declared source, e.g. to
// apply a host-supplied configuration overlay after declaration. It returns
// a *ConfigurationError if weight is not positive or sourceName was never
// declared on this field.
func (f *Field[E]) SetWeight(sourceName string, weight float64) error {
	if weight <= 0 || weight != weight {
		return &ConfigurationError{Field: f.name, Source: sourceName, Reason: "weight must be a positive number"}
	}
	if _, ok := f.sources[sourceName]; !ok {
		return &ConfigurationError{Field: f.name, Source: sourceName, Reason: "no source declared with this name"}
	}
	f.weights[sourceName] = weight
	return nil
}

// SourceNames returns every declared source name (dataset name) on this
// field, in declaration order.
func (f *Field[E]) SourceNames() []string {
	out := make([]string, len(f.sourceOrder))
	copy(out, f.sourceOrder)
	return out
}

func (f *Field[E]) canonicalizer() Canonicalize[E] {
	if f.canonicalize != nil {
		return f.canonicalize
	}
	return identityCanonicalize[E]
}

func (f *Field[E]) preferrer() Prefer[E] {
	if f.prefer != nil {
		return f.prefer
	}
	return identityPrefer[E]
}

func identityCanonicalize[E any](_ *Context[E], raw any) (any, error) {
	return raw, nil
}

func identityPrefer[E any](_ *Context[E], key any, _ []any) (any, error) {
	return key, nil
}
