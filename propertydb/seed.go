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
	"time"

	"gorm.io/gorm"
)

// DemoPropertyID is the well-known property ID Seed populates, so the CLI's
// "seed" and "infer" subcommands can be chained without the caller having to
// discover a generated ID first.
const DemoPropertyID = "11111111-1111-4111-8111-111111111111"

// Seed inserts a small, deterministic fixture under DemoPropertyID: a
// phonebook-style listing history, a lot-size discrepancy across listings,
// and a tax assessment carrying a year-built and square-footage figure that
// disagrees slightly with the listing's own square-footage claim. The
// fixture is shaped to exercise every scoring primitive in
// humanize/scoring.go through the property package's field declarations.
func Seed(db *gorm.DB) error {
	if err := db.Create(&PropertyRecord{ID: DemoPropertyID, Address: "14 Birchwood Ln, Concord, NH"}).Error; err != nil {
		return err
	}

	now := time.Now()
	listings := []Listing{
		{PropertyID: DemoPropertyID, Phone: "555.111.2222", Title: "charming colonial", Acres: 1.08, SquareFeet: 1850, ListedAt: now.AddDate(0, 0, -90), Tags: StateMap{"channel": "mls_feed_v1"}},
		{PropertyID: DemoPropertyID, Phone: "(555) 111-2222", Title: "CHARMING COLONIAL", Acres: 1.12, SquareFeet: 1850, ListedAt: now.AddDate(0, 0, -30), Tags: StateMap{"channel": "mls_feed_v1"}},
		{PropertyID: DemoPropertyID, Phone: "555-111-2222", Title: "Charming Colonial Ranch", Acres: 2.51, SquareFeet: 1900, ListedAt: now.AddDate(0, 0, -7), Tags: StateMap{"channel": "mls_feed_v2", "title_override": "Renovated Colonial on 2 Acres"}},
	}
	for _, l := range listings {
		if err := db.Create(&l).Error; err != nil {
			return err
		}
	}

	assessments := []TaxAssessment{
		{PropertyID: DemoPropertyID, YearBuilt: 1978, SquareFeet: 1872, AssessedAt: now.AddDate(-1, 0, 0)},
		{PropertyID: DemoPropertyID, YearBuilt: 1978, SquareFeet: 1872, AssessedAt: now.AddDate(-2, 0, 0)},
	}
	for _, a := range assessments {
		if err := db.Create(&a).Error; err != nil {
			return err
		}
	}

	remarks := []AgentRemark{
		{PropertyID: DemoPropertyID, Phone: "555.111.2222", Remark: "Move-in ready, new roof 2023.", PostedAt: now.AddDate(0, 0, -60)},
	}
	for _, r := range remarks {
		if err := db.Create(&r).Error; err != nil {
			return err
		}
	}
	return nil
}
