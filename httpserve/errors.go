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

// Package httpserve is a minimal read-only introspection surface over an
// attrinfer EntityEvaluator, mirroring the External Interfaces table in
// spec.md 6. It exposes no mutation endpoints: attrinfer evaluators are not
// persisted between requests, per spec.md 1's Non-goals.
package httpserve

// StatusError pairs an error with the HTTP status code it should produce,
// the same role cmd/restapi/errors.StatusError plays for the teacher's REST
// server.
type StatusError struct {
	Err  error
	Code int
}

func (se StatusError) Error() string { return se.Err.Error() }

func (se StatusError) Status() int { return se.Code }
