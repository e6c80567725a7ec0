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

// Package humanize provides the text-normalization and title-acceptability
// helpers that attrinfer's sample property inferrer injects as
// canonicalize/prefer/score collaborators. None of this package is part of
// the inference engine itself; spec.md treats these concerns as external
// collaborators supplied by the host.
package humanize

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// TitleCase renders s in title case, e.g. "colonial ranch" -> "Colonial
// Ranch".
func TitleCase(s string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(s)))
}

// Nearest returns the element of candidates with the smallest Levenshtein
// distance to target. Ties favor the earliest candidate in the slice. Nearest
// panics if candidates is empty; callers are expected to only call it on a
// non-empty equivalence class.
func Nearest(target string, candidates []string) string {
	if len(candidates) == 0 {
		panic("humanize: Nearest called with no candidates")
	}
	best := candidates[0]
	bestDist := levenshtein.ComputeDistance(target, best)
	for _, c := range candidates[1:] {
		d := levenshtein.ComputeDistance(target, c)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// AcceptableTitle reports whether s looks like a plausible listing title
// rather than a data-entry artifact: it rejects empty/all-caps strings,
// strings under 3 runes, and strings that are purely numeric.
func AcceptableTitle(s string) bool {
	trimmed := strings.TrimSpace(s)
	if len([]rune(trimmed)) < 3 {
		return false
	}
	if trimmed == strings.ToUpper(trimmed) && trimmed != strings.ToLower(trimmed) {
		return false
	}
	allDigits := true
	for _, r := range trimmed {
		if !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			allDigits = false
			break
		}
	}
	return !allDigits
}
