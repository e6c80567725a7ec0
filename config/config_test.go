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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadParsesWeightOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weights.yaml")
	doc := "fields:\n  phone:\n    listings: 0.8\n    agent_remarks: 0.2\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := WeightOverrides{"phone": {"listings": 0.8, "agent_remarks": 0.2}}
	if got["phone"]["listings"] != want["phone"]["listings"] || got["phone"]["agent_remarks"] != want["phone"]["agent_remarks"] {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml")); err == nil {
		t.Fatal("Load on a missing file did not error")
	}
}

type fakeWeighted struct {
	weight float64
	fail   error
}

func (f *fakeWeighted) SetWeight(_ string, weight float64) error {
	if f.fail != nil {
		return f.fail
	}
	f.weight = weight
	return nil
}

func TestApplySetsWeightThroughLookup(t *testing.T) {
	phone := &fakeWeighted{}
	overrides := WeightOverrides{"phone": {"listings": 0.9}}
	lookup := func(field string) (Weighted, bool) {
		if field == "phone" {
			return phone, true
		}
		return nil, false
	}

	if err := Apply(overrides, lookup); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if phone.weight != 0.9 {
		t.Errorf("phone.weight = %v, want 0.9", phone.weight)
	}
}

func TestApplyUnknownFieldReturnsError(t *testing.T) {
	overrides := WeightOverrides{"no_such_field": {"listings": 1.0}}
	lookup := func(string) (Weighted, bool) { return nil, false }

	if err := Apply(overrides, lookup); err == nil {
		t.Fatal("Apply with an unknown field did not error")
	}
}

func TestApplyPropagatesSetWeightError(t *testing.T) {
	boom := &fakeWeighted{fail: os.ErrInvalid}
	overrides := WeightOverrides{"phone": {"listings": -1}}
	lookup := func(string) (Weighted, bool) { return boom, true }

	if err := Apply(overrides, lookup); err == nil {
		t.Fatal("Apply did not propagate SetWeight's error")
	}
}
