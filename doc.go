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

// Package attrinfer implements a multi-source attribute inference engine.
//
// Given several heterogeneous, partially overlapping datasets about the same
// entity, the engine produces one best-guess value per declared field along
// with an auditable score trail.
//
// # Core Concepts
//
// EntityType: a declaration registry attached to a Go type, holding named
// Datasets, Helpers, and Fields.
//
// Field: a named inferred attribute. A field combines one or more Sources
// through a field-level canonicalizer, a field-level preferrer, and a weight
// per source.
//
// Source: a (dataset, candidates producer, score function) tuple
// contributing raw candidate values and confidence scores to a field.
//
// EntityEvaluator: the per-entity-instance handle. It lazily builds
// FieldEvaluators and SourceEvaluators on first access and memoizes every
// stage, so repeated introspection (scores, grouped_scores, ...) never
// recomputes work.
//
// # Pipeline
//
// For one source: raw candidates are grouped into equivalence classes by a
// canonicalizer, each class picks a preferred representative, and the
// representative is scored. For one field: every source's scorecard is
// weighted, summed by exact representative equality, regrouped under the
// field's own canonicalizer, and a final representative is chosen per group;
// the highest-scoring final representative is the field's best value.
//
// See the godoc on EntityType, Field, Source, and EntityEvaluator for the
// exact evaluation semantics of each stage.
package attrinfer
