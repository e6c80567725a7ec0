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

import (
	"context"

	"github.com/attrinfer/attrinfer/telemetry"
)

// CandidateEntry pairs a source's preferred representative with the raw
// members of the equivalence class(es) it stands in for.
type CandidateEntry struct {
	Value any
	Raws  []any
}

// SourceEvaluator produces an equivalence-class-to-score mapping for one
// source, for one entity instance. Every stage is computed at most once and
// cached; introspecting RawCandidates, Candidates, or Scores never
// re-invokes the source's producer or score function.
//
// A SourceEvaluator is not safe for concurrent use; spec.md 5 states the
// engine is not reentrant within one entity evaluator.
type SourceEvaluator[E any] struct {
	fieldEval *FieldEvaluator[E]
	source    *Source[E]

	datasetComputed bool
	datasetVal      any
	datasetErr      error

	rawComputed bool
	rawClasses  []rawClass
	rawErr      error

	candComputed bool
	candEntries  []CandidateEntry
	candErr      error

	scoresComputed bool
	scoreEntries   []ScoreEntry
	scoresErr      error
}

func newSourceEvaluator[E any](fe *FieldEvaluator[E], s *Source[E]) *SourceEvaluator[E] {
	return &SourceEvaluator[E]{fieldEval: fe, source: s}
}

func (se *SourceEvaluator[E]) fieldName() string  { return se.fieldEval.field.name }
func (se *SourceEvaluator[E]) sourceName() string { return se.source.datasetName }

// dataset lazily invokes and memoizes this source's bound dataset producer.
// Two sources bound to the same dataset name each invoke the producer
// independently: memoization is per-SourceEvaluator, per spec.md 5.
func (se *SourceEvaluator[E]) dataset() (any, error) {
	if se.datasetComputed {
		return se.datasetVal, se.datasetErr
	}
	se.datasetComputed = true

	producer := se.fieldEval.entityEval.entityType.datasets[se.source.datasetName]
	ctx := &Context[E]{entity: se.fieldEval.entityEval.entity, helpers: se.fieldEval.entityEval.entityType.helpers}
	v, err := producer(ctx)
	if err != nil {
		se.datasetErr = &DatasetError{Dataset: se.source.datasetName, Field: se.fieldName(), Err: err}
		return nil, se.datasetErr
	}
	se.datasetVal = v
	return v, nil
}

func (se *SourceEvaluator[E]) context() (*Context[E], error) {
	ds, err := se.dataset()
	if err != nil {
		return nil, err
	}
	return &Context[E]{
		entity:  se.fieldEval.entityEval.entity,
		helpers: se.fieldEval.entityEval.entityType.helpers,
		dataset: ds,
	}, nil
}

// RawCandidates invokes the source's candidates producer, canonicalizes
// every raw value, and groups them into equivalence classes in first-seen
// order. An empty producer result yields an empty (not erroring) class
// list, per spec.md 4.3's edge case.
func (se *SourceEvaluator[E]) RawCandidates() ([]rawClass, error) {
	if se.rawComputed {
		return se.rawClasses, se.rawErr
	}
	se.rawComputed = true

	ctx, err := se.context()
	if err != nil {
		se.rawErr = err
		return nil, err
	}

	raws, err := se.source.candidates(ctx)
	if err != nil {
		se.rawErr = &UserBlockError{Field: se.fieldName(), Source: se.sourceName(), Stage: "candidates", Err: err}
		return nil, se.rawErr
	}

	canon := se.source.canonicalizer()
	keys := make([]any, len(raws))
	for i, r := range raws {
		k, err := canon(ctx, r)
		if err != nil {
			se.rawErr = &UserBlockError{Field: se.fieldName(), Source: se.sourceName(), Stage: "canonicalize", Err: err}
			return nil, se.rawErr
		}
		keys[i] = k
	}

	classes, err := groupByKey(keys, raws, se.fieldName())
	if err != nil {
		se.rawErr = err
		return nil, err
	}
	se.rawClasses = classes
	return se.rawClasses, nil
}

// Candidates applies the source preferrer to each equivalence class to
// obtain its preferred representative. Collisions between classes through
// the preferrer are unspecified by spec.md beyond "last-wins,
// deterministic"; this implementation concatenates the colliding classes'
// raw members under the position of the first class to produce that
// representative.
func (se *SourceEvaluator[E]) Candidates() ([]CandidateEntry, error) {
	if se.candComputed {
		return se.candEntries, se.candErr
	}
	se.candComputed = true

	classes, err := se.RawCandidates()
	if err != nil {
		se.candErr = err
		return nil, err
	}

	ctx, err := se.context()
	if err != nil {
		se.candErr = err
		return nil, err
	}

	prefer := se.source.preferrer()
	index := map[any]int{}
	var entries []CandidateEntry
	for _, class := range classes {
		rep, err := prefer(ctx, class.key, class.raws)
		if err != nil {
			se.candErr = &UserBlockError{Field: se.fieldName(), Source: se.sourceName(), Stage: "prefer", Err: err}
			return nil, se.candErr
		}
		if !comparableKey(rep) {
			se.candErr = &ConfigurationError{Field: se.fieldName(), Source: se.sourceName(), Reason: "preferred representative is not comparable"}
			return nil, se.candErr
		}
		if i, ok := index[rep]; ok {
			entries[i].Raws = append(entries[i].Raws, class.raws...)
			continue
		}
		index[rep] = len(entries)
		raws := make([]any, len(class.raws))
		copy(raws, class.raws)
		entries = append(entries, CandidateEntry{Value: rep, Raws: raws})
	}
	se.candEntries = entries
	return se.candEntries, nil
}

// Scores invokes the score function for every preferred representative.
// The returned scores are unclamped: a negative or NaN score is preserved
// here for introspection and only floored to zero when a FieldEvaluator
// aggregates it, per spec.md 4.3's edge case.
func (se *SourceEvaluator[E]) Scores() ([]ScoreEntry, error) {
	if se.scoresComputed {
		return se.scoreEntries, se.scoresErr
	}
	se.scoresComputed = true

	_, span := telemetry.GetTracer().Start(context.Background(), "attrinfer.source")
	defer span.End()
	span.SetAttributes(telemetry.SourceAttributes(se.fieldEval.entityEval.entityType.name, se.fieldName(), se.sourceName())...)

	cands, err := se.Candidates()
	if err != nil {
		se.scoresErr = err
		return nil, err
	}
	ctx, err := se.context()
	if err != nil {
		se.scoresErr = err
		return nil, err
	}

	entries := make([]ScoreEntry, len(cands))
	for i, c := range cands {
		v, err := se.source.score(ctx, c.Value, c.Raws)
		if err != nil {
			se.scoresErr = &UserBlockError{Field: se.fieldName(), Source: se.sourceName(), Stage: "score", Err: err}
			return nil, se.scoresErr
		}
		entries[i] = ScoreEntry{Value: c.Value, Score: v}
	}
	se.scoreEntries = entries
	return se.scoreEntries, nil
}
