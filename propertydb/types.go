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
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// StateMap holds the loosely-typed extra tags an MLS feed attaches to a
// listing beyond its fixed columns (promo flags, feed-specific overrides,
// whatever the upstream schema doesn't pin down). It implements
// driver.Valuer and sql.Scanner (plus gorm's GormValuer hook) so the column
// round-trips through JSON regardless of dialect.
type StateMap map[string]any

func (StateMap) GormDataType() string {
	return "text"
}

func (StateMap) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "mysql":
		return "LONGTEXT"
	default:
		return ""
	}
}

// Value implements driver.Valuer.
func (sm StateMap) Value() (driver.Value, error) {
	if sm == nil {
		sm = make(map[string]any)
	}
	b, err := json.Marshal(sm)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (sm *StateMap) Scan(value any) error {
	if value == nil {
		*sm = make(map[string]any)
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("propertydb: scan StateMap: unsupported type %T", value)
	}
	if len(bytes) == 0 {
		*sm = make(map[string]any)
		return nil
	}
	return json.Unmarshal(bytes, sm)
}

func (sm StateMap) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	data, _ := json.Marshal(sm)
	return gorm.Expr("?", string(data))
}
