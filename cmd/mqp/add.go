// Copyright 2025 Contriboss
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
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/mqpkg/mqpkg/internal/config"
	"github.com/mqpkg/mqpkg/internal/identifier"
	"github.com/mqpkg/mqpkg/internal/store"
)

// newAddCommand builds "mqp add <specifier>": parse the specifier, open a
// single transaction against the package-request store, record it, and
// commit. One invocation is one transaction, matching
// original_source/mqpkg-cli's usage of the specifier syntax to populate the
// store in a single call.
func newAddCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "record a requested package specifier",
		ArgsUsage: "<specifier>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("add: expected exactly one <specifier> argument")
			}

			spec, err := identifier.ParseSpecifier(c.Args().Get(0))
			if err != nil {
				return errors.Wrap(err, "parse package specifier")
			}

			dir, err := config.FindConfigDir(".")
			if err != nil {
				return errors.Wrap(err, "locate mqpkg.yml")
			}

			db, err := store.New(dir)
			if err != nil {
				return errors.Wrap(err, "open package-request store")
			}

			txn, err := db.Begin(context.Background())
			if err != nil {
				return errors.Wrap(err, "begin transaction")
			}

			if err := txn.Add(spec); err != nil {
				return errors.Wrap(err, "record requested package")
			}
			if err := txn.Commit(); err != nil {
				return errors.Wrap(err, "commit transaction")
			}

			logger.Info("recorded requested package", "specifier", spec.String())
			return nil
		},
	}
}
