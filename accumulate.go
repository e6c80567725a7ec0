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

import "reflect"

// comparableKey reports whether v can safely be used as a Go map key. Raw
// candidates and canonical keys may be arbitrary values the host supplies;
// a slice- or map-typed key would panic on insertion rather than returning
// an error, so every grouping/accumulation step checks first and surfaces a
// ConfigurationError instead, per spec: "if a canonical key is not
// hashable, raise ConfigurationError."
func comparableKey(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).Comparable()
}

// rawClass is one equivalence class of raw candidates sharing a canonical
// key, in first-seen order.
type rawClass struct {
	key  any
	raws []any
}

// groupByKey partitions raws into equivalence classes keyed by keys[i],
// preserving the first-seen order of each key and the producer order of
// raws within a class.
func groupByKey(keys, raws []any, fieldName string) ([]rawClass, error) {
	index := make(map[any]int, len(keys))
	var classes []rawClass
	for i, k := range keys {
		if !comparableKey(k) {
			return nil, &ConfigurationError{Field: fieldName, Reason: "canonical key is not comparable"}
		}
		if ci, ok := index[k]; ok {
			classes[ci].raws = append(classes[ci].raws, raws[i])
			continue
		}
		index[k] = len(classes)
		classes = append(classes, rawClass{key: k, raws: []any{raws[i]}})
	}
	return classes, nil
}

// scoreAccumulator sums float64 contributions keyed by an arbitrary
// comparable value, preserving the order in which each key was first added.
// Preserving first-insertion order is load-bearing: spec.md requires ties in
// best-value selection to break toward the first-inserted representative.
type scoreAccumulator struct {
	keys  []any
	index map[any]int
	vals  []float64
}

func newScoreAccumulator() *scoreAccumulator {
	return &scoreAccumulator{index: map[any]int{}}
}

func (a *scoreAccumulator) add(key any, delta float64, fieldName string) error {
	if !comparableKey(key) {
		return &ConfigurationError{Field: fieldName, Reason: "representative is not comparable"}
	}
	if i, ok := a.index[key]; ok {
		a.vals[i] += delta
		return nil
	}
	a.index[key] = len(a.keys)
	a.keys = append(a.keys, key)
	a.vals = append(a.vals, delta)
	return nil
}

// ScoreEntry pairs a candidate value with its accumulated score.
type ScoreEntry struct {
	Value any
	Score float64
}

func (a *scoreAccumulator) entries() []ScoreEntry {
	out := make([]ScoreEntry, len(a.keys))
	for i, k := range a.keys {
		out[i] = ScoreEntry{Value: k, Score: a.vals[i]}
	}
	return out
}

// clampForAggregation floors negative (including -Inf) and NaN scores to
// zero; +Inf is returned unchanged. Per
// spec.md 4.3: "if the score function returns None or a negative number,
// treat it as 0 for aggregation but preserve the original value in
// introspection." Go's static typing has no analog of None for float64, so
// only the negative/NaN case applies here.
func clampForAggregation(v float64) float64 {
	if v < 0 || v != v { // v != v is the idiomatic NaN check
		return 0
	}
	return v
}
