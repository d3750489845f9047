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

import "strings"

// IncompatibilityKind classifies why an Incompatibility was created, purely
// for human-readable rendering.
type IncompatibilityKind int

const (
	KindNoVersions IncompatibilityKind = iota
	KindFromDependency
	KindConflict
)

// Incompatibility is a clause stating that the conjunction of its Terms
// cannot all hold simultaneously. The solver derives new incompatibilities
// by resolving two existing ones against a shared package (the pivot).
type Incompatibility struct {
	Terms   []Term
	Kind    IncompatibilityKind
	Cause1  *Incompatibility
	Cause2  *Incompatibility
	Package Name
	Version Version
}

func dedupeTerms(terms []Term) []Term {
	seen := make(map[Name]bool, len(terms))
	out := make([]Term, 0, len(terms))
	for _, t := range terms {
		if seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		out = append(out, t)
	}
	return out
}

// NewIncompatibilityNoVersions builds the incompatibility stating that no
// version of the given term's package satisfies the current constraints.
func NewIncompatibilityNoVersions(term Term) *Incompatibility {
	return &Incompatibility{
		Terms: dedupeTerms([]Term{term}),
		Kind:  KindNoVersions,
	}
}

// NewIncompatibilityFromDependency builds the incompatibility "depender
// depends on dependee": the forbidden conjunction {depender in depSet, not
// dependee in depSet}.
func NewIncompatibilityFromDependency(dependerTerm, dependeeTerm Term) *Incompatibility {
	return &Incompatibility{
		Terms: dedupeTerms([]Term{dependerTerm, dependeeTerm.Negate()}),
		Kind:  KindFromDependency,
	}
}

// NewIncompatibilityConflict builds an incompatibility derived from
// resolving two causes against a pivot package.
func NewIncompatibilityConflict(terms []Term, pkg Name, cause1, cause2 *Incompatibility) *Incompatibility {
	return &Incompatibility{
		Terms:   dedupeTerms(terms),
		Kind:    KindConflict,
		Cause1:  cause1,
		Cause2:  cause2,
		Package: pkg,
	}
}

// String renders the incompatibility. Two-term "depends on" incompatibilities
// get the readable "X depends on Y" form; everything else lists its terms.
func (inc *Incompatibility) String() string {
	if inc.Kind == KindFromDependency && len(inc.Terms) == 2 {
		depender := inc.Terms[0]
		dependee := inc.Terms[1].Negate()
		return depender.Name.Value() + " depends on " + dependee.String()
	}

	parts := make([]string, len(inc.Terms))
	for i, t := range inc.Terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ") + " are incompatible"
}
