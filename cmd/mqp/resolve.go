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
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/mqpkg/mqpkg"
	"github.com/mqpkg/mqpkg/internal/config"
	"github.com/mqpkg/mqpkg/internal/identifier"
	"github.com/mqpkg/mqpkg/internal/repository"
	"github.com/mqpkg/mqpkg/internal/resolve"
	"github.com/mqpkg/mqpkg/internal/semver"
	"github.com/mqpkg/mqpkg/internal/store"
)

// newResolveCommand builds "mqp resolve": load mqpkg.yml, fetch every
// configured repository, read the currently requested set from the
// package-request store, and solve.
func newResolveCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "resolve the requested package set against configured repositories",
		Action: func(c *cli.Context) error {
			dir, err := config.FindConfigDir(".")
			if err != nil {
				return errors.Wrap(err, "locate mqpkg.yml")
			}

			cfg, err := config.Load(filepath.Join(dir, config.Filename))
			if err != nil {
				return errors.Wrap(err, "load mqpkg.yml")
			}

			repo := repository.NewRepository()
			for _, r := range cfg.Repositories {
				fetcher, err := repository.FetcherForURL(r.URL)
				if err != nil {
					return errors.Wrapf(err, "repository %q", r.Name)
				}
				if err := repo.Load(fetcher); err != nil {
					return errors.Wrapf(err, "fetch repository %q", r.Name)
				}
			}

			db, err := store.New(dir)
			if err != nil {
				return errors.Wrap(err, "open package-request store")
			}
			txn, err := db.Begin(c.Context)
			if err != nil {
				return errors.Wrap(err, "begin transaction")
			}
			defer txn.Rollback()

			requestedSpecs, err := db.Requested()
			if err != nil {
				return errors.Wrap(err, "read requested packages")
			}

			requested := make(map[identifier.Name]semver.VersionReq, len(requestedSpecs))
			for name, r := range requestedSpecs {
				requested[name] = r.Requirement
			}

			pinned, err := mqpkg.Resolve(requested, repo, mqpkg.WithLogger(logger))
			if err != nil {
				var noSolution *resolve.NoSolutionError
				if errors.As(err, &noSolution) {
					return &derivationError{cause: err, derivation: noSolution.Report()}
				}
				return errors.Wrap(err, "resolve requested packages")
			}

			for _, p := range sortedPinned(pinned) {
				fmt.Printf("%s@%s\n", p.Name.Value(), p.Version.String())
			}
			return nil
		},
	}
}

// sortedPinned renders pinned's entries in a deterministic, name-sorted
// order for display.
func sortedPinned(pinned map[identifier.Name]mqpkg.Pinned) []mqpkg.Pinned {
	out := make([]mqpkg.Pinned, 0, len(pinned))
	for _, p := range pinned {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name.Less(out[j].Name) })
	return out
}
