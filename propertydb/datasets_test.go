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

package propertydb

import (
	"testing"

	"gorm.io/gorm"
)

func seededTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return db
}

func TestListingsRowsOrderedByListedAtAscending(t *testing.T) {
	db := seededTestDB(t)
	rows, err := Listings(db, DemoPropertyID).Rows()
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].ListedAt.Before(rows[i-1].ListedAt) {
			t.Fatalf("rows not ascending by ListedAt: row %d (%v) before row %d (%v)", i, rows[i].ListedAt, i-1, rows[i-1].ListedAt)
		}
	}
}

func TestListingsMostRecentPicksLatestListedAt(t *testing.T) {
	db := seededTestDB(t)
	best, ok, err := Listings(db, DemoPropertyID).MostRecent()
	if err != nil {
		t.Fatalf("MostRecent: %v", err)
	}
	if !ok {
		t.Fatal("MostRecent reported no rows for a seeded property")
	}
	if best.Title != "Charming Colonial Ranch" {
		t.Errorf("MostRecent().Title = %q, want %q", best.Title, "Charming Colonial Ranch")
	}
}

func TestListingsMostRecentOnEmptyPropertyReportsAbsence(t *testing.T) {
	db := seededTestDB(t)
	best, ok, err := Listings(db, "no-such-property").MostRecent()
	if err != nil {
		t.Fatalf("MostRecent: %v", err)
	}
	if ok {
		t.Fatalf("MostRecent on an empty property reported a row: %+v", best)
	}
}

func TestTaxAssessmentsMostRecentPicksLatestAssessedAt(t *testing.T) {
	db := seededTestDB(t)
	best, ok, err := TaxAssessments(db, DemoPropertyID).MostRecent()
	if err != nil {
		t.Fatalf("MostRecent: %v", err)
	}
	if !ok {
		t.Fatal("MostRecent reported no rows for a seeded property")
	}
	if best.YearBuilt != 1978 {
		t.Errorf("MostRecent().YearBuilt = %d, want 1978", best.YearBuilt)
	}
}

func TestAgentRemarksRowsDecodeThroughMapstructure(t *testing.T) {
	db := seededTestDB(t)
	rows, err := AgentRemarks(db, DemoPropertyID).Rows()
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].Phone != "555.111.2222" {
		t.Errorf("rows[0].Phone = %q, want %q", rows[0].Phone, "555.111.2222")
	}
}
