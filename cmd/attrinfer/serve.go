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
	"net/http"

	"github.com/spf13/cobra"

	"github.com/attrinfer/attrinfer/httpserve"
	"github.com/attrinfer/attrinfer/telemetry"
)

var serveFlags struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the read-only HTTP introspection server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		if err := telemetry.Register(); err != nil {
			return err
		}
		db, err := openAndConfigure()
		if err != nil {
			return err
		}
		srv := httpserve.New(db, logger)
		logger.Info("listening", "addr", serveFlags.addr)
		return http.ListenAndServe(serveFlags.addr, srv.Router())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", ":8080", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}
