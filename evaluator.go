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

import "fmt"

// EntityEvaluator is the entry point for evaluating one entity instance
// against an EntityType's declarations. Build one with
// EntityType.Evaluator. Every FieldEvaluator it hands out is memoized, so
// repeated calls to EvaluatorFor or BestValueFor for the same field never
// re-run that field's sources.
type EntityEvaluator[E any] struct {
	entityType *EntityType[E]
	entity     E

	fieldEvaluators map[string]*FieldEvaluator[E]
}

// Entity returns the entity instance this evaluator was built for.
func (ee *EntityEvaluator[E]) Entity() E { return ee.entity }

// EvaluatorFor returns the memoized FieldEvaluator for the named field,
// creating it on first access. It returns a wrapped ErrUnknownField if no
// such field was declared on the EntityType.
func (ee *EntityEvaluator[E]) EvaluatorFor(fieldName string) (*FieldEvaluator[E], error) {
	if fe, ok := ee.fieldEvaluators[fieldName]; ok {
		return fe, nil
	}
	f, ok := ee.entityType.fields[fieldName]
	if !ok {
		return nil, fmt.Errorf("attrinfer: field %q: %w", fieldName, ErrUnknownField)
	}
	fe := newFieldEvaluator(ee, f)
	ee.fieldEvaluators[fieldName] = fe
	return fe, nil
}

// BestValueFor evaluates the named field end to end and returns its best
// value, or nil if the field produced no candidates from any source.
func (ee *EntityEvaluator[E]) BestValueFor(fieldName string) (any, error) {
	fe, err := ee.EvaluatorFor(fieldName)
	if err != nil {
		return nil, err
	}
	return fe.BestValue()
}

// ScoresFor evaluates the named field end to end and returns its final
// scorecard, in first-insertion order.
func (ee *EntityEvaluator[E]) ScoresFor(fieldName string) ([]ScoreEntry, error) {
	fe, err := ee.EvaluatorFor(fieldName)
	if err != nil {
		return nil, err
	}
	return fe.Scores()
}

// FieldValues evaluates every declared field and returns a map of field
// name to best value, one entry per declared field. A field that produced
// no candidates from any source maps to a nil value rather than being
// omitted.
func (ee *EntityEvaluator[E]) FieldValues() (map[string]any, error) {
	out := make(map[string]any, len(ee.entityType.fieldOrder))
	for _, name := range ee.entityType.fieldOrder {
		v, err := ee.BestValueFor(name)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}
