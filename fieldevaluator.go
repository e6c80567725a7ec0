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
	"fmt"

	"github.com/attrinfer/attrinfer/telemetry"
)

// SourceScores names one source's scorecard, in the field's source
// declaration order.
type SourceScores struct {
	Source  string
	Entries []ScoreEntry
}

// GroupedEntry is one field-canonical equivalence class: the grouping key
// and the ungrouped entries that fell into it.
type GroupedEntry struct {
	Key     any
	Members []ScoreEntry
}

// FieldEvaluator combines a field's source scorecards into a final value.
// Every stage — SourcedUnweightedScores, SourcedWeightedScores,
// UngroupedScores, GroupedScores, Scores, BestValue — is computed at most
// once per FieldEvaluator and cached.
type FieldEvaluator[E any] struct {
	entityEval *EntityEvaluator[E]
	field      *Field[E]

	sourceEvaluators map[string]*SourceEvaluator[E]

	unweightedComputed bool
	unweighted         []SourceScores
	unweightedErr      error

	weightedComputed bool
	weighted         []SourceScores
	weightedErr      error

	ungroupedComputed bool
	ungrouped         []ScoreEntry
	ungroupedErr      error

	groupedComputed bool
	grouped         []GroupedEntry
	groupedErr      error

	scoresComputed bool
	scores         []ScoreEntry
	scoresErr      error

	bestComputed bool
	best         any
	bestErr      error
}

func newFieldEvaluator[E any](ee *EntityEvaluator[E], f *Field[E]) *FieldEvaluator[E] {
	return &FieldEvaluator[E]{
		entityEval:       ee,
		field:            f,
		sourceEvaluators: map[string]*SourceEvaluator[E]{},
	}
}

// Field returns the declaration this evaluator was built from.
func (fe *FieldEvaluator[E]) Field() *Field[E] { return fe.field }

// EvaluatorFor returns the memoized SourceEvaluator for the named source
// (the source's bound dataset name), creating it on first access.
func (fe *FieldEvaluator[E]) EvaluatorFor(sourceName string) (*SourceEvaluator[E], error) {
	if se, ok := fe.sourceEvaluators[sourceName]; ok {
		return se, nil
	}
	src, ok := fe.field.sources[sourceName]
	if !ok {
		return nil, fmt.Errorf("attrinfer: field %q source %q: %w", fe.field.name, sourceName, ErrUnknownSource)
	}
	se := newSourceEvaluator(fe, src)
	fe.sourceEvaluators[sourceName] = se
	return se, nil
}

// SourcedUnweightedScores returns each source's own scorecard unchanged, in
// source declaration order.
func (fe *FieldEvaluator[E]) SourcedUnweightedScores() ([]SourceScores, error) {
	if fe.unweightedComputed {
		return fe.unweighted, fe.unweightedErr
	}
	fe.unweightedComputed = true

	out := make([]SourceScores, 0, len(fe.field.sourceOrder))
	for _, name := range fe.field.sourceOrder {
		se, err := fe.EvaluatorFor(name)
		if err != nil {
			fe.unweightedErr = err
			return nil, err
		}
		entries, err := se.Scores()
		if err != nil {
			fe.unweightedErr = err
			return nil, err
		}
		out = append(out, SourceScores{Source: name, Entries: entries})
	}
	fe.unweighted = out
	return fe.unweighted, nil
}

// SourcedWeightedScores multiplies each source's scorecard by the field's
// weight for that source. Negative or NaN scores are floored to zero here
// (spec.md 4.3's aggregation-time clamp) before the weight is applied.
func (fe *FieldEvaluator[E]) SourcedWeightedScores() ([]SourceScores, error) {
	if fe.weightedComputed {
		return fe.weighted, fe.weightedErr
	}
	fe.weightedComputed = true

	unweighted, err := fe.SourcedUnweightedScores()
	if err != nil {
		fe.weightedErr = err
		return nil, err
	}

	out := make([]SourceScores, len(unweighted))
	for i, ss := range unweighted {
		weight := fe.field.weights[ss.Source]
		entries := make([]ScoreEntry, len(ss.Entries))
		for j, e := range ss.Entries {
			entries[j] = ScoreEntry{Value: e.Value, Score: weight * clampForAggregation(e.Score)}
		}
		out[i] = SourceScores{Source: ss.Source, Entries: entries}
	}
	fe.weighted = out
	return fe.weighted, nil
}

// UngroupedScores sums weighted scores across sources, keyed by exact
// representative equality, in first-insertion order across sources in
// declaration order.
func (fe *FieldEvaluator[E]) UngroupedScores() ([]ScoreEntry, error) {
	if fe.ungroupedComputed {
		return fe.ungrouped, fe.ungroupedErr
	}
	fe.ungroupedComputed = true

	weighted, err := fe.SourcedWeightedScores()
	if err != nil {
		fe.ungroupedErr = err
		return nil, err
	}

	acc := newScoreAccumulator()
	for _, ss := range weighted {
		for _, e := range ss.Entries {
			if err := acc.add(e.Value, e.Score, fe.field.name); err != nil {
				fe.ungroupedErr = err
				return nil, err
			}
		}
	}
	fe.ungrouped = acc.entries()
	return fe.ungrouped, nil
}

func (fe *FieldEvaluator[E]) fieldContext() *Context[E] {
	return &Context[E]{entity: fe.entityEval.entity, helpers: fe.entityEval.entityType.helpers}
}

// GroupedScores regroups UngroupedScores under the field-level
// canonicalizer.
func (fe *FieldEvaluator[E]) GroupedScores() ([]GroupedEntry, error) {
	if fe.groupedComputed {
		return fe.grouped, fe.groupedErr
	}
	fe.groupedComputed = true

	ungrouped, err := fe.UngroupedScores()
	if err != nil {
		fe.groupedErr = err
		return nil, err
	}

	ctx := fe.fieldContext()
	canon := fe.field.canonicalizer()

	index := map[any]int{}
	var groups []GroupedEntry
	for _, e := range ungrouped {
		key, err := canon(ctx, e.Value)
		if err != nil {
			fe.groupedErr = &UserBlockError{Field: fe.field.name, Stage: "canonicalize", Err: err}
			return nil, fe.groupedErr
		}
		if !comparableKey(key) {
			fe.groupedErr = &ConfigurationError{Field: fe.field.name, Reason: "field canonical key is not comparable"}
			return nil, fe.groupedErr
		}
		if gi, ok := index[key]; ok {
			groups[gi].Members = append(groups[gi].Members, e)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, GroupedEntry{Key: key, Members: []ScoreEntry{e}})
	}
	fe.grouped = groups
	return fe.grouped, nil
}

// Scores applies the field-level preferrer to each field-canonical group to
// obtain its final representative, summing the group's member scores as
// that representative's final score. Groups whose preferrer picks the same
// final representative accumulate into a single entry.
func (fe *FieldEvaluator[E]) Scores() ([]ScoreEntry, error) {
	if fe.scoresComputed {
		return fe.scores, fe.scoresErr
	}
	fe.scoresComputed = true

	_, span := telemetry.GetTracer().Start(context.Background(), "attrinfer.field")
	defer span.End()
	span.SetAttributes(telemetry.FieldAttributes(fe.entityEval.entityType.name, fe.field.name)...)

	grouped, err := fe.GroupedScores()
	if err != nil {
		fe.scoresErr = err
		return nil, err
	}

	ctx := fe.fieldContext()
	prefer := fe.field.preferrer()

	acc := newScoreAccumulator()
	for _, g := range grouped {
		raws := make([]any, len(g.Members))
		sum := 0.0
		for i, m := range g.Members {
			raws[i] = m.Value
			sum += m.Score
		}
		rep, err := prefer(ctx, g.Key, raws)
		if err != nil {
			fe.scoresErr = &UserBlockError{Field: fe.field.name, Stage: "prefer", Err: err}
			return nil, fe.scoresErr
		}
		if err := acc.add(rep, sum, fe.field.name); err != nil {
			fe.scoresErr = err
			return nil, err
		}
	}
	fe.scores = acc.entries()
	return fe.scores, nil
}

// BestValue returns the final representative with the maximum score. Ties
// break toward the first-inserted final representative; if there are no
// final representatives at all, BestValue returns nil.
func (fe *FieldEvaluator[E]) BestValue() (any, error) {
	if fe.bestComputed {
		return fe.best, fe.bestErr
	}
	fe.bestComputed = true

	scores, err := fe.Scores()
	if err != nil {
		fe.bestErr = err
		return nil, err
	}
	if len(scores) == 0 {
		return nil, nil
	}

	best := scores[0]
	for _, e := range scores[1:] {
		if e.Score > best.Score {
			best = e
		}
	}
	fe.best = best.Value
	return fe.best, nil
}
