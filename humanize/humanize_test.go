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

package humanize

import "testing"

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"charming colonial":   "Charming Colonial",
		"CHARMING COLONIAL":   "Charming Colonial",
		"  spaced out  ranch": "Spaced Out  Ranch",
	}
	for in, want := range cases {
		if got := TitleCase(in); got != want {
			t.Errorf("TitleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNearest(t *testing.T) {
	got := Nearest("5551112222", []string{"5551112222", "5551119999", "4441112222"})
	if got != "5551112222" {
		t.Errorf("Nearest = %q, want exact match", got)
	}

	got = Nearest("5551112222", []string{"5551112223", "5551119999"})
	if got != "5551112223" {
		t.Errorf("Nearest = %q, want closest candidate", got)
	}
}

func TestNearestPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Nearest with no candidates did not panic")
		}
	}()
	Nearest("x", nil)
}

func TestAcceptableTitle(t *testing.T) {
	cases := map[string]bool{
		"Charming Colonial": true,
		"ab":                false,
		"":                  false,
		"ALL CAPS TITLE":    false,
		"12345":             false,
		"123 Main":          true,
	}
	for in, want := range cases {
		if got := AcceptableTitle(in); got != want {
			t.Errorf("AcceptableTitle(%q) = %v, want %v", in, got, want)
		}
	}
}
