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

// Package propertydb is the relational dataset/query layer backing the
// sample Property entity type: spec.md treats "the underlying dataset/query
// layer" as an opaque external collaborator, so this package is the one
// concrete instance of it, built on gorm and an embedded sqlite file the
// way the teacher's session/database package treats its own store.
package propertydb

import (
	"time"

	"gorm.io/gorm"
)

// PropertyRecord is the master row identifying one parcel: the one
// attribute (address) the engine never has to infer, plus the ID the other
// tables key off of.
type PropertyRecord struct {
	ID      string `gorm:"primaryKey"`
	Address string
}

// Listing is one MLS-style listing row for a property, as it would be
// returned by a real-estate query layer.
type Listing struct {
	gorm.Model
	PropertyID string
	Phone      string
	Title      string
	Acres      float64
	SquareFeet float64
	ListedAt   time.Time

	// Tags carries whatever extra, feed-specific fields a particular MLS
	// syndication attaches that don't warrant their own column, including
	// the occasional title override.
	Tags StateMap
}

// TaxAssessment is one county tax-assessor record for a property.
type TaxAssessment struct {
	gorm.Model
	PropertyID string
	YearBuilt  int
	SquareFeet float64
	AssessedAt time.Time
}

// AgentRemark is one free-text remark an agent attached to a property,
// sourced from an MLS remarks feed distinct from the structured Listing
// rows.
type AgentRemark struct {
	gorm.Model
	PropertyID string
	Phone      string
	Remark     string
	PostedAt   time.Time
}

// AutoMigrate creates or updates the schema for every model this package
// defines.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&PropertyRecord{}, &Listing{}, &TaxAssessment{}, &AgentRemark{})
}

// CreateProperty inserts a new master row.
func CreateProperty(db *gorm.DB, rec PropertyRecord) error {
	return db.Create(&rec).Error
}

// GetProperty looks up the master row for id.
func GetProperty(db *gorm.DB, id string) (PropertyRecord, bool, error) {
	var rec PropertyRecord
	err := db.Where("id = ?", id).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return PropertyRecord{}, false, nil
		}
		return PropertyRecord{}, false, err
	}
	return rec, true, nil
}
