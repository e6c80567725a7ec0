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
	"errors"
	"fmt"
)

// ErrUnknownField is returned when a field name passed to EntityEvaluator
// has no matching declaration.
var ErrUnknownField = errors.New("attrinfer: unknown field")

// ErrUnknownDataset names the condition of a source referencing a dataset
// name that was never declared on the owning EntityType. No function in this
// package returns it: Field.Source reports that condition by panicking with
// a *ConfigurationError.
var ErrUnknownDataset = errors.New("attrinfer: unknown dataset")

// ErrUnknownSource is returned when FieldEvaluator.EvaluatorFor is called
// with a source name that was never declared on the field.
var ErrUnknownSource = errors.New("attrinfer: unknown source")

// ConfigurationError reports a malformed declaration or a value the engine
// cannot group. Field.Source panics with a *ConfigurationError instead of
// returning one, mirroring the fail-fast idiom of regexp.MustCompile and
// prometheus.MustRegister for programmer errors in static setup.
// Field.SetWeight returns one for an invalid weight override, and the
// evaluators return one when a canonical key or representative is not
// comparable.
type ConfigurationError struct {
	Field  string
	Source string
	Reason string
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Source != "":
		return fmt.Sprintf("attrinfer: field %q source %q: %s", e.Field, e.Source, e.Reason)
	case e.Field != "":
		return fmt.Sprintf("attrinfer: field %q: %s", e.Field, e.Reason)
	default:
		return fmt.Sprintf("attrinfer: %s", e.Reason)
	}
}

// DatasetError wraps an error raised by a dataset producer, adding the
// dataset and field context the producer was invoked for.
type DatasetError struct {
	Dataset string
	Field   string
	Err     error
}

func (e *DatasetError) Error() string {
	return fmt.Sprintf("attrinfer: field %q dataset %q: %v", e.Field, e.Dataset, e.Err)
}

func (e *DatasetError) Unwrap() error { return e.Err }

// UserBlockError wraps an error raised by a candidates/canonicalize/prefer/
// score block, recording which stage of which source (if any) raised it.
type UserBlockError struct {
	Field  string
	Source string
	Stage  string
	Err    error
}

func (e *UserBlockError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("attrinfer: field %q source %q stage %q: %v", e.Field, e.Source, e.Stage, e.Err)
	}
	return fmt.Sprintf("attrinfer: field %q stage %q: %v", e.Field, e.Stage, e.Err)
}

func (e *UserBlockError) Unwrap() error { return e.Err }
