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

package main

import (
	"github.com/spf13/cobra"

	"github.com/attrinfer/attrinfer/propertydb"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the sqlite store with the demo property fixture.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		db, err := propertydb.Open(rootFlags.dbPath)
		if err != nil {
			return err
		}
		if err := propertydb.Seed(db); err != nil {
			return err
		}
		logger.Info("seeded demo property", "id", propertydb.DemoPropertyID, "db", rootFlags.dbPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
