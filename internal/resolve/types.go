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

// Package resolve implements the PubGrub-style CDCL solver: incompatibility
// tracking, unit propagation, and conflict-driven backjumping over
// candidates drawn from a DependencyProvider.
package resolve

import (
	"github.com/mqpkg/mqpkg/internal/identifier"
	"github.com/mqpkg/mqpkg/internal/semver"
)

// Name is the package identifier type used throughout the solver.
type Name = identifier.Name

// Version is the concrete version type the solver reasons about.
type Version = semver.Version

// VersionSet is the concrete version-set type terms and incompatibilities
// carry. The solver is specialised directly to semver.VersionSet rather
// than an abstract version-scheme interface, since mqpkg has exactly one
// version scheme.
type VersionSet = semver.VersionSet

// Term is an assertion about a package: either "package is in set" (positive)
// or "package is not in set" (negative).
type Term struct {
	Name     Name
	Set      VersionSet
	Positive bool
}

// NewTerm creates a positive term asserting that Name's version lies in set.
func NewTerm(name Name, set VersionSet) Term {
	return Term{Name: name, Set: set, Positive: true}
}

// NewNegativeTerm creates a negative term asserting that Name's version does
// not lie in set.
func NewNegativeTerm(name Name, set VersionSet) Term {
	return Term{Name: name, Set: set, Positive: false}
}

// Negate returns the logical negation of t.
func (t Term) Negate() Term {
	return Term{Name: t.Name, Set: t.Set, Positive: !t.Positive}
}

// SatisfiedBy reports whether version v (for t's package) makes t true. A nil
// candidate (package entirely absent from the solution) satisfies only
// negative terms.
func (t Term) SatisfiedBy(v *Version) bool {
	if v == nil {
		return !t.Positive
	}
	in := t.Set.Contains(*v)
	if t.Positive {
		return in
	}
	return !in
}

// String renders t in "name set" / "not name set" form, e.g. "foo >=1.0.0".
func (t Term) String() string {
	prefix := ""
	if !t.Positive {
		prefix = "not "
	}
	return prefix + t.Name.Value() + " " + t.Set.String()
}
