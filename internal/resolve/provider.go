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

// DependencyProvider is the capability bundle the solver drives: candidate
// enumeration, dependency lookup, and cooperative cancellation. The
// repository aggregator is the production implementation; tests use an
// in-memory stand-in.
type DependencyProvider interface {
	// ShouldCancel is polled periodically by the solver. A non-nil error
	// unwinds the solve cleanly with that error.
	ShouldCancel() error

	// ListCandidates returns every candidate for name, newest-version-first
	// with ties broken by source precedence (earlier-declared repository
	// first), matching Candidate.Compare's total order.
	ListCandidates(name Name) ([]Candidate, error)

	// GetDependencies returns c's dependency map, or Unknown if it has not
	// been materialised yet.
	GetDependencies(c Candidate) (Dependencies, error)
}

// choosePackageVersion implements the "fewest candidates first" heuristic
// required by the driver: among the pending packages (visited in the
// supplied, deterministically sorted order so ties break the same way on
// every run), pick the one with the smallest number of still-admissible
// candidates, then within that package pick the greatest admissible
// version. Minimising fan-out on the most-constrained package surfaces
// conflicts earlier. A chosen package with zero admissible candidates is
// reported via the final bool, so the caller can raise a NoVersions
// conflict immediately instead of decide against an empty set.
func choosePackageVersion(provider DependencyProvider, names []Name, pending map[Name]VersionSet) (Name, Candidate, bool, error) {
	var (
		bestName    Name
		bestCand    Candidate
		bestCount   = -1
		haveAnySeen bool
	)

	for _, name := range names {
		set := pending[name]
		candidates, err := provider.ListCandidates(name)
		if err != nil {
			return Name{}, Candidate{}, false, err
		}

		count := 0
		var greatest Candidate
		haveGreatest := false
		for _, c := range candidates {
			if !set.Contains(c.Version) {
				continue
			}
			count++
			if !haveGreatest {
				greatest = c
				haveGreatest = true
			}
		}

		if !haveAnySeen || count < bestCount {
			haveAnySeen = true
			bestCount = count
			bestName = name
			bestCand = greatest
		}
	}

	return bestName, bestCand, bestCount > 0, nil
}
