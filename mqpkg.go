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

// Package mqpkg wires the resolver, repository aggregator, and progress
// bundle into a single Resolve entry point: the only call most callers of
// this module need.
package mqpkg

import (
	"log/slog"

	"github.com/mqpkg/mqpkg/internal/identifier"
	"github.com/mqpkg/mqpkg/internal/progress"
	"github.com/mqpkg/mqpkg/internal/repository"
	"github.com/mqpkg/mqpkg/internal/resolve"
	"github.com/mqpkg/mqpkg/internal/semver"
)

// Pinned is one entry of a resolved set: a package pinned to a specific
// version from a specific repository.
type Pinned struct {
	Name     identifier.Name
	Version  semver.Version
	SourceID uint64
}

// Options configures a Resolve call.
type Options struct {
	logger   *slog.Logger
	progress *progress.Bundle
	cancel   repository.CancelFunc
	maxSteps int
}

// Option mutates Options.
type Option func(*Options)

// WithLogger attaches a structured logger, threaded into the solver.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.logger = logger }
}

// WithProgress attaches a progress bundle. Resolve reports one bar, named
// "resolve", updated once per candidate pinned.
func WithProgress(bundle *progress.Bundle) Option {
	return func(o *Options) { o.progress = bundle }
}

// WithCancelFunc attaches a cooperative-cancellation hook, polled on every
// solver step.
func WithCancelFunc(fn repository.CancelFunc) Option {
	return func(o *Options) { o.cancel = fn }
}

// WithMaxSteps bounds the number of solver iterations. Zero leaves the
// solver's own default in place.
func WithMaxSteps(steps int) Option {
	return func(o *Options) { o.maxSteps = steps }
}

// Resolve solves requested (a package name to version-requirement map,
// standing in for the synthetic root's dependency set) against repo,
// returning every package pinned in the solution together with the
// repository that supplied it. The synthetic root itself is never present
// in the result.
func Resolve(requested map[identifier.Name]semver.VersionReq, repo *repository.Repository, opts ...Option) (map[identifier.Name]Pinned, error) {
	options := Options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	bar := options.progress.Bar("resolve", uint64(len(requested)))

	provider := repository.NewProvider(repo, repository.WithCancelFunc(options.cancel))

	solverOpts := []resolve.SolverOption{}
	if options.logger != nil {
		solverOpts = append(solverOpts, resolve.WithLogger(options.logger))
	}
	if options.maxSteps > 0 {
		solverOpts = append(solverOpts, resolve.WithMaxSteps(options.maxSteps))
	}

	solver := resolve.NewSolver(provider, solverOpts...)

	wanted := make(map[resolve.Name]resolve.VersionSet, len(requested))
	for name, req := range requested {
		wanted[name] = req.ToVersionSet()
	}

	solution, err := solver.Solve(wanted)
	if err != nil {
		bar.Finish()
		return nil, err
	}

	out := make(map[identifier.Name]Pinned, len(solution))
	for nv := range solution.All() {
		sourceID := sourceIDFor(repo, nv.Name, nv.Version)
		out[nv.Name] = Pinned{Name: nv.Name, Version: nv.Version, SourceID: sourceID}
		bar.Update(1)
	}
	bar.Finish()

	return out, nil
}

// sourceIDFor recovers which repository supplied the pinned version, since
// Solution itself only carries the name/version pair.
func sourceIDFor(repo *repository.Repository, name identifier.Name, version semver.Version) uint64 {
	for _, c := range repo.Candidates(name) {
		if c.Version.Equal(version) {
			return c.SourceID
		}
	}
	return resolve.RootSourceID
}
