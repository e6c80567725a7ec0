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

package httpserve

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/attrinfer/attrinfer"
	"github.com/attrinfer/attrinfer/property"
)

// Server exposes a read-only view of property inference results over HTTP.
type Server struct {
	db     *gorm.DB
	logger *slog.Logger
}

// New returns a Server backed by db, logging through logger.
func New(db *gorm.DB, logger *slog.Logger) *Server {
	return &Server{db: db, logger: logger}
}

// Router builds the mux.Router exposing this server's endpoints:
//
//	GET /entities/{id}
//	GET /entities/{id}/fields/{field}
//	GET /entities/{id}/fields/{field}/scores
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter().StrictSlash(true)
	r.Methods(http.MethodGet).Path("/entities/{id}").Name("GetEntity").HandlerFunc(s.wrap(s.getEntity))
	r.Methods(http.MethodGet).Path("/entities/{id}/fields/{field}").Name("GetField").HandlerFunc(s.wrap(s.getField))
	r.Methods(http.MethodGet).Path("/entities/{id}/fields/{field}/scores").Name("GetFieldScores").HandlerFunc(s.wrap(s.getFieldScores))
	return r
}

func (s *Server) wrap(h func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			var se StatusError
			if !errors.As(err, &se) {
				se = StatusError{Err: err, Code: http.StatusInternalServerError}
			}
			s.logger.Error("request failed", "path", r.URL.Path, "error", se.Err)
			http.Error(w, se.Error(), se.Status())
		}
	}
}

func (s *Server) loadEvaluator(r *http.Request) (*attrinfer.EntityEvaluator[*property.Property], error) {
	id := mux.Vars(r)["id"]
	if id == "" {
		return nil, StatusError{Err: fmt.Errorf("id parameter is required"), Code: http.StatusBadRequest}
	}
	p, ok, err := property.Load(s.db, id)
	if err != nil {
		return nil, StatusError{Err: err, Code: http.StatusInternalServerError}
	}
	if !ok {
		return nil, StatusError{Err: fmt.Errorf("no such entity %q", id), Code: http.StatusNotFound}
	}
	return property.Inferrer().Evaluator(p), nil
}

func (s *Server) getEntity(w http.ResponseWriter, r *http.Request) error {
	ee, err := s.loadEvaluator(r)
	if err != nil {
		return err
	}
	values, err := ee.FieldValues()
	if err != nil {
		return StatusError{Err: err, Code: http.StatusInternalServerError}
	}
	return writeJSON(w, map[string]any{
		"id":      ee.Entity().ID,
		"address": ee.Entity().Address,
		"fields":  values,
	})
}

func (s *Server) getField(w http.ResponseWriter, r *http.Request) error {
	ee, err := s.loadEvaluator(r)
	if err != nil {
		return err
	}
	field := mux.Vars(r)["field"]
	value, err := ee.BestValueFor(field)
	if err != nil {
		return fieldError(field, err)
	}
	return writeJSON(w, map[string]any{"field": field, "value": value})
}

func (s *Server) getFieldScores(w http.ResponseWriter, r *http.Request) error {
	ee, err := s.loadEvaluator(r)
	if err != nil {
		return err
	}
	field := mux.Vars(r)["field"]
	scores, err := ee.ScoresFor(field)
	if err != nil {
		return fieldError(field, err)
	}
	out := make([]map[string]any, len(scores))
	for i, e := range scores {
		out[i] = map[string]any{"value": e.Value, "score": e.Score}
	}
	return writeJSON(w, map[string]any{"field": field, "scores": out})
}

func fieldError(field string, err error) error {
	if errors.Is(err, attrinfer.ErrUnknownField) {
		return StatusError{Err: fmt.Errorf("unknown field %q", field), Code: http.StatusNotFound}
	}
	return StatusError{Err: err, Code: http.StatusInternalServerError}
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}
