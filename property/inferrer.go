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

package property

import (
	"math"
	"sync"
	"time"

	"github.com/attrinfer/attrinfer"
	"github.com/attrinfer/attrinfer/config"
	"github.com/attrinfer/attrinfer/humanize"
	"github.com/attrinfer/attrinfer/propertydb"
)

// ApplyWeightOverrides retunes this EntityType's source weights from a
// loaded config.WeightOverrides document.
func ApplyWeightOverrides(overrides config.WeightOverrides) error {
	t := Inferrer()
	return config.Apply(overrides, func(field string) (config.Weighted, bool) {
		f := t.FieldByName(field)
		if f == nil {
			return nil, false
		}
		return f, true
	})
}

// Inferrer returns the process-wide EntityType declaration for Property,
// building it on first call. Declaration happens once per process, the same
// way the teacher builds its tool/agent registries from a
// sync.OnceValue-wrapped constructor.
var Inferrer = sync.OnceValue(newInferrer)

func newInferrer() *attrinfer.EntityType[*Property] {
	t := attrinfer.New[*Property]("property")

	t.Share("address")

	t.Dataset("listings", func(ctx *attrinfer.Context[*Property]) (any, error) {
		p := ctx.Entity()
		return propertydb.Listings(p.db, p.ID), nil
	})
	t.Dataset("tax_assessments", func(ctx *attrinfer.Context[*Property]) (any, error) {
		p := ctx.Entity()
		return propertydb.TaxAssessments(p.db, p.ID), nil
	})
	t.Dataset("agent_remarks", func(ctx *attrinfer.Context[*Property]) (any, error) {
		p := ctx.Entity()
		return propertydb.AgentRemarks(p.db, p.ID), nil
	})

	declarePhone(t)
	declareTitle(t)
	declareLotAcres(t)
	declareYearBuilt(t)
	declareSquareFeet(t)

	return t
}

// digitsOnly strips everything but digits from s, the canonical key for
// phone numbers regardless of punctuation style.
func digitsOnly(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, r)
		}
	}
	return string(out)
}

func declarePhone(t *attrinfer.EntityType[*Property]) {
	t.Field("phone", func(f *attrinfer.Field[*Property]) {
		f.Canonicalize(func(_ *attrinfer.Context[*Property], raw any) (any, error) {
			return digitsOnly(raw.(string)), nil
		})
		f.Prefer(func(_ *attrinfer.Context[*Property], key any, raws []any) (any, error) {
			strs := make([]string, len(raws))
			for i, r := range raws {
				strs[i] = r.(string)
			}
			return humanize.Nearest(key.(string), strs), nil
		})

		f.Source("listings", 0.6, func(s *attrinfer.Source[*Property]) {
			s.Candidates(func(ctx *attrinfer.Context[*Property]) ([]any, error) {
				rows, err := ctx.Dataset().(propertydb.ListingsDataset).Rows()
				if err != nil {
					return nil, err
				}
				out := make([]any, len(rows))
				for i, r := range rows {
					out[i] = r.Phone
				}
				return out, nil
			})
			s.Score(func(_ *attrinfer.Context[*Property], _ any, _ []any) (float64, error) {
				return 1.0, nil
			})
		})

		f.Source("agent_remarks", 0.4, func(s *attrinfer.Source[*Property]) {
			s.Candidates(func(ctx *attrinfer.Context[*Property]) ([]any, error) {
				rows, err := ctx.Dataset().(propertydb.AgentRemarksDataset).Rows()
				if err != nil {
					return nil, err
				}
				out := make([]any, 0, len(rows))
				for _, r := range rows {
					if r.Phone == "" {
						continue
					}
					out = append(out, r.Phone)
				}
				return out, nil
			})
			s.Score(func(_ *attrinfer.Context[*Property], _ any, raws []any) (float64, error) {
				return humanize.ScoreForCount(len(raws), humanize.DefaultDecay), nil
			})
		})
	})
}

// declareTitle declares the title field across two separate Field calls,
// the re-entry pattern spec.md's S6 exercises: the second call extends the
// field created by the first, appending a source without disturbing the
// first's canonicalizer/preferrer or its already-declared source.
func declareTitle(t *attrinfer.EntityType[*Property]) {
	t.Field("title", func(f *attrinfer.Field[*Property]) {
		f.Canonicalize(func(_ *attrinfer.Context[*Property], raw any) (any, error) {
			return humanize.TitleCase(raw.(string)), nil
		})
		f.Prefer(func(_ *attrinfer.Context[*Property], key any, raws []any) (any, error) {
			for _, r := range raws {
				if humanize.AcceptableTitle(r.(string)) {
					return r, nil
				}
			}
			return key, nil
		})

		f.Source("listings", 0.7, func(s *attrinfer.Source[*Property]) {
			s.Candidates(func(ctx *attrinfer.Context[*Property]) ([]any, error) {
				rows, err := ctx.Dataset().(propertydb.ListingsDataset).Rows()
				if err != nil {
					return nil, err
				}
				out := make([]any, 0, len(rows)+1)
				for _, r := range rows {
					out = append(out, r.Title)
					// Some syndication channels stash a better title under a
					// tag rather than the fixed Title column.
					if override, ok := r.Tags["title_override"].(string); ok && override != "" {
						out = append(out, override)
					}
				}
				return out, nil
			})
			s.Score(func(_ *attrinfer.Context[*Property], _ any, raws []any) (float64, error) {
				return humanize.ScoreForCount(len(raws), humanize.DefaultDecay), nil
			})
		})
	})

	// Re-entry: this second Field call extends the title field declared
	// above with a low-weight remarks-derived source, per spec.md S6.
	t.Field("title", func(f *attrinfer.Field[*Property]) {
		f.Source("agent_remarks", 0.3, func(s *attrinfer.Source[*Property]) {
			s.Candidates(func(ctx *attrinfer.Context[*Property]) ([]any, error) {
				rows, err := ctx.Dataset().(propertydb.AgentRemarksDataset).Rows()
				if err != nil {
					return nil, err
				}
				out := make([]any, 0, len(rows))
				for _, r := range rows {
					sentence := firstSentence(r.Remark)
					if humanize.AcceptableTitle(sentence) {
						out = append(out, sentence)
					}
				}
				return out, nil
			})
			s.Score(func(_ *attrinfer.Context[*Property], _ any, raws []any) (float64, error) {
				return humanize.ScoreForCount(len(raws), humanize.DefaultDecay), nil
			})
		})
	})
}

// firstSentence returns the text of s up to (not including) its first
// period, a crude stand-in for a title extracted from free-text remarks.
func firstSentence(s string) string {
	for i, r := range s {
		if r == '.' {
			return s[:i]
		}
	}
	return s
}

func declareLotAcres(t *attrinfer.EntityType[*Property]) {
	t.Field("lot_acres", func(f *attrinfer.Field[*Property]) {
		f.Canonicalize(func(_ *attrinfer.Context[*Property], raw any) (any, error) {
			return math.Round(raw.(float64)*10) / 10, nil
		})
		// Field-level preferrer left at the default identity: the bucketed
		// canonical value is itself the representative, per spec.md S4.

		f.Source("listings", 0.6, func(s *attrinfer.Source[*Property]) {
			s.Candidates(func(ctx *attrinfer.Context[*Property]) ([]any, error) {
				rows, err := ctx.Dataset().(propertydb.ListingsDataset).Rows()
				if err != nil {
					return nil, err
				}
				out := make([]any, len(rows))
				for i, r := range rows {
					out[i] = r.Acres
				}
				return out, nil
			})
			s.Score(func(_ *attrinfer.Context[*Property], _ any, raws []any) (float64, error) {
				return humanize.ScoreForCount(len(raws), humanize.DefaultDecay), nil
			})
		})
	})
}

func declareYearBuilt(t *attrinfer.EntityType[*Property]) {
	t.Field("year_built", func(f *attrinfer.Field[*Property]) {
		f.Source("tax_assessments", 1.0, func(s *attrinfer.Source[*Property]) {
			s.Candidates(func(ctx *attrinfer.Context[*Property]) ([]any, error) {
				row, ok, err := ctx.Dataset().(propertydb.TaxAssessmentsDataset).MostRecent()
				if err != nil || !ok {
					return nil, err
				}
				return []any{row.YearBuilt}, nil
			})
			s.Score(func(ctx *attrinfer.Context[*Property], _ any, _ []any) (float64, error) {
				row, ok, err := ctx.Dataset().(propertydb.TaxAssessmentsDataset).MostRecent()
				if err != nil || !ok {
					return 0, err
				}
				r := humanize.RecencyOf(row.AssessedAt, time.Now())
				return humanize.ScoreForRecency(r, humanize.DefaultDecay), nil
			})
		})
	})
}

// declareSquareFeet merges a listings source and a tax-assessments source
// under one bucketed field canonicalizer, with the field preferrer
// synthesizing a representative from the geometric mean of each bucket's
// raw members rather than picking one of them verbatim — the "may
// synthesize a new value" case in spec.md's glossary entry for Prefer.
func declareSquareFeet(t *attrinfer.EntityType[*Property]) {
	const bucket = 50.0

	t.Field("square_feet", func(f *attrinfer.Field[*Property]) {
		f.Canonicalize(func(_ *attrinfer.Context[*Property], raw any) (any, error) {
			return math.Round(raw.(float64)/bucket) * bucket, nil
		})
		f.Prefer(func(_ *attrinfer.Context[*Property], key any, raws []any) (any, error) {
			xs := make([]float64, len(raws))
			for i, r := range raws {
				xs[i] = r.(float64)
			}
			mean := humanize.GeometricMeanOf(xs...)
			if !humanize.Rangify(key.(float64), bucket/2).Contains(mean) {
				return key, nil
			}
			return mean, nil
		})

		f.Source("listings", 0.6, func(s *attrinfer.Source[*Property]) {
			s.Candidates(func(ctx *attrinfer.Context[*Property]) ([]any, error) {
				rows, err := ctx.Dataset().(propertydb.ListingsDataset).Rows()
				if err != nil {
					return nil, err
				}
				out := make([]any, len(rows))
				for i, r := range rows {
					out[i] = r.SquareFeet
				}
				return out, nil
			})
			s.Score(func(_ *attrinfer.Context[*Property], _ any, raws []any) (float64, error) {
				return humanize.ScoreForCount(len(raws), humanize.DefaultDecay), nil
			})
		})

		f.Source("tax_assessments", 0.4, func(s *attrinfer.Source[*Property]) {
			s.Candidates(func(ctx *attrinfer.Context[*Property]) ([]any, error) {
				rows, err := ctx.Dataset().(propertydb.TaxAssessmentsDataset).Rows()
				if err != nil {
					return nil, err
				}
				out := make([]any, len(rows))
				for i, r := range rows {
					out[i] = r.SquareFeet
				}
				return out, nil
			})
			s.Score(func(_ *attrinfer.Context[*Property], _ any, raws []any) (float64, error) {
				return humanize.ScoreForCount(len(raws), humanize.DefaultDecay), nil
			})
		})
	})
}
