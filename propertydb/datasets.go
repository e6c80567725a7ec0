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
	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"
)

// ListingsDataset is the opaque, queryable value a "listings" dataset
// producer returns: a handle scoped to one property's listing rows, not the
// rows themselves, so the inference engine only ever sees domain-specific
// query methods.
type ListingsDataset struct {
	db         *gorm.DB
	propertyID string
}

// Listings builds a dataset producer value scoped to propertyID. Host code
// registers it with attrinfer.EntityType.Dataset, invoking Listings(db,
// propertyID) from inside the producer closure.
func Listings(db *gorm.DB, propertyID string) ListingsDataset {
	return ListingsDataset{db: db, propertyID: propertyID}
}

// Rows returns every listing row for this property, ordered by ListedAt
// ascending (oldest first), preserving producer-order semantics the engine
// relies on for equivalence-class ordering.
func (d ListingsDataset) Rows() ([]Listing, error) {
	var rows []Listing
	err := d.db.Where("property_id = ?", d.propertyID).Order("listed_at asc").Find(&rows).Error
	return rows, err
}

// MostRecent returns the listing row with the latest ListedAt, and false if
// there are none. Unlike a host-side helper that blindly indexes row 0 of
// an empty slice, MostRecent reports absence explicitly.
func (d ListingsDataset) MostRecent() (Listing, bool, error) {
	rows, err := d.Rows()
	if err != nil || len(rows) == 0 {
		return Listing{}, false, err
	}
	best := rows[0]
	for _, r := range rows[1:] {
		if r.ListedAt.After(best.ListedAt) {
			best = r
		}
	}
	return best, true, nil
}

// TaxAssessmentsDataset is the opaque, queryable value a "tax_assessments"
// dataset producer returns.
type TaxAssessmentsDataset struct {
	db         *gorm.DB
	propertyID string
}

// TaxAssessments builds a dataset producer value scoped to propertyID.
func TaxAssessments(db *gorm.DB, propertyID string) TaxAssessmentsDataset {
	return TaxAssessmentsDataset{db: db, propertyID: propertyID}
}

// Rows returns every tax assessment row for this property, ordered by
// AssessedAt ascending.
func (d TaxAssessmentsDataset) Rows() ([]TaxAssessment, error) {
	var rows []TaxAssessment
	err := d.db.Where("property_id = ?", d.propertyID).Order("assessed_at asc").Find(&rows).Error
	return rows, err
}

// MostRecent returns the assessment row with the latest AssessedAt, and
// false if there are none.
func (d TaxAssessmentsDataset) MostRecent() (TaxAssessment, bool, error) {
	rows, err := d.Rows()
	if err != nil || len(rows) == 0 {
		return TaxAssessment{}, false, err
	}
	best := rows[0]
	for _, r := range rows[1:] {
		if r.AssessedAt.After(best.AssessedAt) {
			best = r
		}
	}
	return best, true, nil
}

// AgentRemarksDataset is the opaque, queryable value an "agent_remarks"
// dataset producer returns.
type AgentRemarksDataset struct {
	db         *gorm.DB
	propertyID string
}

// AgentRemarks builds a dataset producer value scoped to propertyID.
func AgentRemarks(db *gorm.DB, propertyID string) AgentRemarksDataset {
	return AgentRemarksDataset{db: db, propertyID: propertyID}
}

// Rows returns every agent remark row for this property, ordered by
// PostedAt ascending. Agent remarks come from a feed with no fixed schema
// in practice, so this query goes through the loosely-typed map[string]any
// path (rather than gorm's struct scanning) and decodes each row with
// mapstructure, the same pattern the teacher uses to decode untyped tool
// output into typed Go values.
func (d AgentRemarksDataset) Rows() ([]AgentRemark, error) {
	var raw []map[string]any
	if err := d.db.Table("agent_remarks").
		Where("property_id = ?", d.propertyID).
		Order("posted_at asc").
		Find(&raw).Error; err != nil {
		return nil, err
	}
	rows := make([]AgentRemark, len(raw))
	for i, r := range raw {
		var row AgentRemark
		d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &row,
			WeaklyTypedInput: true,
			TagName:          "mapstructure",
		})
		if err != nil {
			return nil, err
		}
		if err := d.Decode(r); err != nil {
			return nil, err
		}
		rows[i] = row
	}
	return rows, nil
}
