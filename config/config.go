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

// Package config loads a declarative weight-override overlay so a host can
// retune a declared EntityType's source weights without recompiling, the
// same role env vars and flags play for the teacher's
// cmd/restapi/config.Config.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WeightOverrides maps field name to source (dataset) name to the weight
// that should replace the one set at declaration time.
type WeightOverrides map[string]map[string]float64

// Load reads and parses a YAML weight-override file of the shape:
//
//	fields:
//	  phone:
//	    listings: 0.8
//	    agent_remarks: 0.2
func Load(path string) (WeightOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("attrinfer/config: read %s: %w", path, err)
	}
	var doc struct {
		Fields WeightOverrides `yaml:"fields"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("attrinfer/config: parse %s: %w", path, err)
	}
	return doc.Fields, nil
}

// Weighted is the subset of attrinfer.Field's API a weight override needs:
// implemented by *attrinfer.Field[E] for any entity type E.
type Weighted interface {
	SetWeight(source string, weight float64) error
}

// Apply overrides every (field, source) weight named in overrides by
// looking the field up through lookup. Fields or sources overrides
// mentions that lookup does not know about are reported as an error
// rather than silently ignored, since a stale config entry usually means a
// field or source was renamed.
func Apply(overrides WeightOverrides, lookup func(field string) (Weighted, bool)) error {
	for field, sources := range overrides {
		w, ok := lookup(field)
		if !ok {
			return fmt.Errorf("attrinfer/config: unknown field %q in weight overrides", field)
		}
		for source, weight := range sources {
			if err := w.SetWeight(source, weight); err != nil {
				return err
			}
		}
	}
	return nil
}
