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

// Package property is the reference consumer of the attrinfer engine:
// spec.md's Property::Inferrer sample, built as a concrete, runnable entity
// type rather than left as an out-of-scope illustration.
package property

import (
	"fmt"

	"github.com/attrinfer/attrinfer/propertydb"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property is the entity whose attributes this package infers: a physical
// parcel identified by a UUID, with an address known up front (the one
// attribute the engine never has to guess).
type Property struct {
	ID      string
	Address string

	db *gorm.DB
}

// New returns a Property bound to db, ready to pass to Inferrer's
// EntityType.Evaluator.
func New(db *gorm.DB, id, address string) *Property {
	return &Property{ID: id, Address: address, db: db}
}

// Create inserts a new property at address under a freshly generated UUID
// and returns it bound to db.
func Create(db *gorm.DB, address string) (*Property, error) {
	id := uuid.New().String()
	if err := propertydb.CreateProperty(db, propertydb.PropertyRecord{ID: id, Address: address}); err != nil {
		return nil, fmt.Errorf("property: create: %w", err)
	}
	return New(db, id, address), nil
}

// Load looks up the master property record for id and returns a Property
// bound to db, or false if no such property exists.
func Load(db *gorm.DB, id string) (*Property, bool, error) {
	rec, ok, err := propertydb.GetProperty(db, id)
	if err != nil {
		return nil, false, fmt.Errorf("property: load %s: %w", id, err)
	}
	if !ok {
		return nil, false, nil
	}
	return New(db, rec.ID, rec.Address), true, nil
}
