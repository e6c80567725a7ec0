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
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/attrinfer/attrinfer/config"
	"github.com/attrinfer/attrinfer/property"
)

var inferCmd = &cobra.Command{
	Use:   "infer",
	Short: "Evaluate the inference engine against stored properties.",
}

var inferFieldCmd = &cobra.Command{
	Use:   "field <property-id> <field>",
	Short: "Print one field's best value and score trail for one property.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openAndConfigure()
		if err != nil {
			return err
		}
		p, ok, err := property.Load(db, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no such property %q", args[0])
		}
		ee := property.Inferrer().Evaluator(p)
		value, err := ee.BestValueFor(args[1])
		if err != nil {
			return err
		}
		scores, err := ee.ScoresFor(args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s.%s = %v\n", args[0], args[1], value)
		for _, e := range scores {
			fmt.Printf("  %-20v %.4f\n", e.Value, e.Score)
		}
		return nil
	},
}

var inferAllFlags struct {
	concurrency int
}

var inferAllCmd = &cobra.Command{
	Use:   "all <property-id> [property-id...]",
	Short: "Evaluate every declared field for a list of properties, with bounded concurrency.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openAndConfigure()
		if err != nil {
			return err
		}
		logger := newLogger()

		g := new(errgroup.Group)
		g.SetLimit(inferAllFlags.concurrency)
		for _, id := range args {
			id := id
			g.Go(func() error {
				return inferOne(db, logger, id)
			})
		}
		return g.Wait()
	},
}

func inferOne(db *gorm.DB, logger *slog.Logger, id string) error {
	p, ok, err := property.Load(db, id)
	if err != nil {
		return err
	}
	if !ok {
		logger.Warn("no such property", "id", id)
		return nil
	}
	values, err := property.Inferrer().Evaluator(p).FieldValues()
	if err != nil {
		return fmt.Errorf("property %s: %w", id, err)
	}
	logger.Info("inferred property", "id", id, "fields", values)
	return nil
}

func openAndConfigure() (*gorm.DB, error) {
	db, err := dbHandle()
	if err != nil {
		return nil, err
	}
	if rootFlags.cfgPath != "" {
		overrides, err := config.Load(rootFlags.cfgPath)
		if err != nil {
			return nil, err
		}
		if err := property.ApplyWeightOverrides(overrides); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func init() {
	inferCmd.AddCommand(inferFieldCmd)
	inferCmd.AddCommand(inferAllCmd)
	inferAllCmd.Flags().IntVar(&inferAllFlags.concurrency, "concurrency", 4, "maximum properties evaluated concurrently")
	rootCmd.AddCommand(inferCmd)
}
