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
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/attrinfer/attrinfer/property"
	"github.com/attrinfer/attrinfer/propertydb"
	"gorm.io/gorm"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	srv, _ := testServerDB(t)
	return srv
}

func testServerDB(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	db, err := propertydb.Open(":memory:")
	if err != nil {
		t.Fatalf("propertydb.Open: %v", err)
	}
	if err := propertydb.Seed(db); err != nil {
		t.Fatalf("propertydb.Seed: %v", err)
	}
	return New(db, slog.New(slog.NewTextHandler(io.Discard, nil))), db
}

func TestGetEntityReturnsFieldValues(t *testing.T) {
	srv := testServer(t)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/entities/"+propertydb.DemoPropertyID, nil)
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", rr.Code, rr.Body.String())
	}
	var body struct {
		ID     string         `json:"id"`
		Fields map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.ID != propertydb.DemoPropertyID {
		t.Errorf("id = %q, want %q", body.ID, propertydb.DemoPropertyID)
	}
	if body.Fields["phone"] != "555.111.2222" {
		t.Errorf("fields[phone] = %v, want 555.111.2222", body.Fields["phone"])
	}
}

// TestGetEntityIncludesUnpopulatedFieldsAsNull checks that a property with
// no backing rows in any dataset still lists every declared field in the
// "fields" object, mapped to JSON null rather than being dropped, per
// spec.md §4.5/§8 S5.
func TestGetEntityIncludesUnpopulatedFieldsAsNull(t *testing.T) {
	srv, db := testServerDB(t)
	p, err := property.Create(db, "1 Empty Lot")
	if err != nil {
		t.Fatalf("property.Create: %v", err)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/entities/"+p.ID, nil)
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", rr.Code, rr.Body.String())
	}
	var body struct {
		Fields map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, field := range property.Inferrer().FieldNames() {
		v, ok := body.Fields[field]
		if !ok {
			t.Errorf("fields[%s] missing, want present with null value", field)
			continue
		}
		if v != nil {
			t.Errorf("fields[%s] = %v, want null", field, v)
		}
	}
}

func TestGetEntityUnknownIDReturnsNotFound(t *testing.T) {
	srv := testServer(t)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/entities/does-not-exist", nil)
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestGetFieldUnknownFieldReturnsNotFound(t *testing.T) {
	srv := testServer(t)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/entities/"+propertydb.DemoPropertyID+"/fields/not_a_field", nil)
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body = %s", rr.Code, rr.Body.String())
	}
}

func TestGetFieldScoresReturnsScoreTrail(t *testing.T) {
	srv := testServer(t)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/entities/"+propertydb.DemoPropertyID+"/fields/year_built/scores", nil)
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", rr.Code, rr.Body.String())
	}
	var body struct {
		Scores []struct {
			Value any     `json:"value"`
			Score float64 `json:"score"`
		} `json:"scores"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Scores) == 0 {
		t.Fatal("scores = [], want at least one entry")
	}
}
