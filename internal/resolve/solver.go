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

package resolve

import "github.com/mqpkg/mqpkg/internal/identifier"

// Solver drives the CDCL algorithm against a DependencyProvider.
type Solver struct {
	provider DependencyProvider
	options  SolverOptions
	learned  []*Incompatibility
}

// NewSolver creates a solver with default options.
func NewSolver(provider DependencyProvider, opts ...SolverOption) *Solver {
	options := defaultSolverOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return &Solver{provider: provider, options: options}
}

// Configure applies additional options to an existing solver.
func (s *Solver) Configure(opts ...SolverOption) *Solver {
	for _, opt := range opts {
		if opt != nil {
			opt(&s.options)
		}
	}
	return s
}

// GetIncompatibilities returns the incompatibilities learned during the most
// recent Solve call, if WithIncompatibilityTracking was enabled.
func (s *Solver) GetIncompatibilities() []*Incompatibility { return s.learned }

// Solve resolves requested against the provider, returning a pinned
// Solution or an error from the taxonomy in errors.go.
//
// The caller supplies requested as the dependency map of a synthetic root:
// this is the "constructs a root Candidate whose dependencies are reqs" step
// of the resolver contract. should_cancel is folded into the provider
// itself (DependencyProvider.ShouldCancel) rather than passed separately,
// since every production provider needs the hook anyway.
func (s *Solver) Solve(requested map[Name]VersionSet) (Solution, error) {
	rootName := identifier.RootName
	s.debug("starting solve", "requested", len(requested))

	state := newSolverState(s.provider, s.options)
	s.learned = nil
	if s.options.TrackIncompatibilities {
		defer func() { s.learned = state.learned }()
	}
	rootAssign := state.partial.seedRoot(rootName, Version{})
	state.markAssigned(rootAssign.name)

	var conflict *Incompatibility
	if c, err := state.registerDependencies(rootName, rootAssign.allowed, Known(requested)); err != nil {
		return nil, err
	} else {
		conflict = c
	}

	state.enqueue(rootAssign.name)

	var seed Name
	for step := 0; ; step++ {
		if s.options.MaxSteps > 0 && step >= s.options.MaxSteps {
			return nil, IterationLimitError{Steps: s.options.MaxSteps}
		}

		if err := s.provider.ShouldCancel(); err != nil {
			return nil, err
		}

		if conflict != nil {
			s.debug("resolving conflict", "step", step, "incompatibility", conflict.String())
			_, pivot, err := state.resolveConflict(conflict)
			if err != nil {
				return nil, err
			}
			conflict = nil
			seed = pivot
			continue
		}

		propConflict, err := state.propagate(seed)
		seed = Name{}
		if err != nil {
			return nil, err
		}
		if propConflict != nil {
			conflict = propConflict
			continue
		}

		pending, names := state.partial.pendingPackages()
		if len(pending) == 0 {
			s.debug("solution found", "step", step)
			return solutionFromMap(state.partial.buildSolution()), nil
		}

		name, candidate, hasCandidate, err := choosePackageVersion(s.provider, names, pending)
		if err != nil {
			return nil, err
		}
		if !hasCandidate {
			conflict = NewIncompatibilityNoVersions(NewTerm(name, pending[name]))
			state.addIncompatibility(conflict)
			continue
		}

		s.debug("deciding", "step", step, "package", name.Value(), "version", candidate.Version.String())

		deps, err := s.provider.GetDependencies(candidate)
		if err != nil {
			return nil, err
		}
		if !deps.IsKnown() {
			conflict = NewIncompatibilityNoVersions(NewTerm(name, singleton(candidate.Version)))
			state.addIncompatibility(conflict)
			continue
		}

		assign := state.partial.addDecision(name, candidate.Version)
		state.markAssigned(assign.name)

		if depConflict, err := state.registerDependencies(name, assign.allowed, deps); err != nil {
			return nil, err
		} else if depConflict != nil {
			conflict = depConflict
			continue
		}

		state.enqueue(assign.name)
	}
}

func (s *Solver) debug(msg string, args ...any) {
	if s.options.Logger != nil {
		s.options.Logger.Debug(msg, args...)
	}
}
