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

// Command attrinfer seeds a sample property store and runs attribute
// inference against it from the command line or over HTTP.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootFlags struct {
	dbPath  string
	logJSON bool
	cfgPath string
}

var rootCmd = &cobra.Command{
	Use:   "attrinfer",
	Short: "Seed and run the sample property attribute inference engine.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.dbPath, "db", "attrinfer.db", "path to the sqlite property store")
	rootCmd.PersistentFlags().BoolVar(&rootFlags.logJSON, "log-json", false, "emit JSON logs instead of text")
	rootCmd.PersistentFlags().StringVar(&rootFlags.cfgPath, "weights", "", "optional YAML weight-override file")
}

func newLogger() *slog.Logger {
	if rootFlags.logJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("attrinfer: command failed", "error", err)
		os.Exit(1)
	}
}
