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

// Source is one (dataset, candidates, score, weight) tuple contributing to
// a field. Its canonicalizer and preferrer default to the owning field's
// when left unset.
type Source[E any] struct {
	field        *Field[E]
	datasetName  string
	candidates   Candidates[E]
	canonicalize Canonicalize[E]
	prefer       Prefer[E]
	score        Score[E]
}

func newSource[E any](field *Field[E], dsName string) *Source[E] {
	return &Source[E]{field: field, datasetName: dsName}
}

// DatasetName returns the name of the dataset this source is bound to.
func (s *Source[E]) DatasetName() string { return s.datasetName }

// Candidates sets the raw-candidate producer.
func (s *Source[E]) Candidates(fn Candidates[E]) { s.candidates = fn }

// Canonicalize overrides the field-level canonicalizer for this source.
func (s *Source[E]) Canonicalize(fn Canonicalize[E]) { s.canonicalize = fn }

// Prefer overrides the field-level preferrer for this source.
func (s *Source[E]) Prefer(fn Prefer[E]) { s.prefer = fn }

// Score sets the score function.
func (s *Source[E]) Score(fn Score[E]) { s.score = fn }

func (s *Source[E]) canonicalizer() Canonicalize[E] {
	if s.canonicalize != nil {
		return s.canonicalize
	}
	return s.field.canonicalizer()
}

func (s *Source[E]) preferrer() Prefer[E] {
	if s.prefer != nil {
		return s.prefer
	}
	return s.field.preferrer()
}
