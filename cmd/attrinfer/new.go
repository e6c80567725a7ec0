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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/attrinfer/attrinfer/property"
)

var newCmd = &cobra.Command{
	Use:   "new <address>",
	Short: "Register a new property under a freshly generated ID.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := dbHandle()
		if err != nil {
			return err
		}
		p, err := property.Create(db, args[0])
		if err != nil {
			return err
		}
		fmt.Println(p.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
