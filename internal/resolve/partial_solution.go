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

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mqpkg/mqpkg/internal/semver"
)

// defaultSet is the admissible set assumed for a package with no assignment
// yet: every release admitted, no pre-release admitted. A first positive
// derivation takes its term's set as is, so a requirement that names a
// pre-release still admits it.
func defaultSet() VersionSet {
	return VersionSet{Normal: semver.Any(), Pre: semver.Empty()}
}

// singleton returns the VersionSet containing exactly v, routed to Normal or
// Pre depending on whether v is a pre-release, per the VersionSet.exact
// contract.
func singleton(v Version) VersionSet {
	if v.IsPrerelease() {
		return VersionSet{Pre: semver.Exact(v)}
	}
	return VersionSet{Normal: semver.Exact(v)}
}

// partialSolution is the chronological sequence of decisions and derivations
// the solver has made so far, along with the per-package cumulative allowed
// set each assignment narrows.
type partialSolution struct {
	assignments []*assignment
	byName      map[Name][]*assignment
	decisions   map[Name]*assignment
	level       int
}

func newPartialSolution() *partialSolution {
	return &partialSolution{
		byName:    make(map[Name][]*assignment),
		decisions: make(map[Name]*assignment),
	}
}

func (ps *partialSolution) append(a *assignment) {
	a.index = len(ps.assignments)
	ps.assignments = append(ps.assignments, a)
	ps.byName[a.name] = append(ps.byName[a.name], a)
	if a.isDecision() {
		ps.decisions[a.name] = a
	}
}

// allowedSet returns the current cumulative admissible set for name.
func (ps *partialSolution) allowedSet(name Name) VersionSet {
	if a := ps.latest(name); a != nil {
		return a.allowed
	}
	return defaultSet()
}

func (ps *partialSolution) latest(name Name) *assignment {
	list := ps.byName[name]
	if len(list) == 0 {
		return nil
	}
	return list[len(list)-1]
}

func (ps *partialSolution) hasAssignments(name Name) bool {
	return len(ps.byName[name]) > 0
}

func (ps *partialSolution) hasDecision(name Name) bool {
	_, ok := ps.decisions[name]
	return ok
}

// seedRoot records the synthetic root's pinned version as a decision at
// level 0 — a given fact, not a choice the solver made, so conflicts that
// bottom out here can never be un-done by backtracking.
func (ps *partialSolution) seedRoot(name Name, version Version) *assignment {
	set := singleton(version)
	v := version
	a := &assignment{
		name:          name,
		term:          NewTerm(name, set),
		kind:          assignmentDecision,
		allowed:       set,
		version:       &v,
		decisionLevel: 0,
	}
	ps.append(a)
	return a
}

// addDecision records a new decision, opening a fresh decision level.
func (ps *partialSolution) addDecision(name Name, version Version) *assignment {
	current := ps.allowedSet(name)
	set := singleton(version)
	narrowed := current.Intersection(set)
	ps.level++
	v := version
	a := &assignment{
		name:          name,
		term:          NewTerm(name, narrowed),
		kind:          assignmentDecision,
		allowed:       narrowed,
		version:       &v,
		decisionLevel: ps.level,
	}
	ps.append(a)
	return a
}

// addDerivation records a new derivation forced by unit propagation, carrying
// the incompatibility that forced it so it can be cited on conflict.
func (ps *partialSolution) addDerivation(term Term, cause *Incompatibility) (*assignment, error) {
	current := ps.allowedSet(term.Name)

	var narrowed VersionSet
	if term.Positive && !ps.hasAssignments(term.Name) {
		narrowed = term.Set
	} else if term.Positive {
		narrowed = current.Intersection(term.Set)
	} else {
		narrowed = current.Intersection(term.Set.Complement())
	}

	a := &assignment{
		name:          term.Name,
		term:          term,
		kind:          assignmentDerivation,
		allowed:       narrowed,
		cause:         cause,
		decisionLevel: ps.level,
	}
	ps.append(a)
	return a, nil
}

// backtrack discards every assignment made at a decision level deeper than
// level, restoring the solution to the state it was in right after that
// level's decision.
func (ps *partialSolution) backtrack(level int) {
	kept := ps.assignments[:0:0]
	for _, a := range ps.assignments {
		if a.decisionLevel <= level {
			kept = append(kept, a)
		}
	}

	ps.assignments = kept
	ps.byName = make(map[Name][]*assignment)
	ps.decisions = make(map[Name]*assignment)
	for i, a := range kept {
		a.index = i
		ps.byName[a.name] = append(ps.byName[a.name], a)
		if a.isDecision() {
			ps.decisions[a.name] = a
		}
	}
	ps.level = level
}

// pendingPackages returns the packages that carry at least one assignment
// but no decision yet, along with their current admissible set, plus the
// same names in a deterministic sorted order (solution determinism
// requires the picker never depend on Go's randomised map iteration).
func (ps *partialSolution) pendingPackages() (map[Name]VersionSet, []Name) {
	out := make(map[Name]VersionSet)
	names := make([]Name, 0)
	for name := range ps.byName {
		if ps.hasDecision(name) {
			continue
		}
		out[name] = ps.allowedSet(name)
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i].Less(names[j]) })
	return out, names
}

// satisfier returns the earliest assignment after which the partial
// solution already guarantees term, along with its chronological index.
func (ps *partialSolution) satisfier(term Term) (*assignment, int) {
	var last *assignment
	for _, a := range ps.byName[term.Name] {
		last = a
		if termForcedBy(a.allowed, term) {
			return a, a.index
		}
	}
	return last, -1
}

func termForcedBy(allowed VersionSet, term Term) bool {
	if term.Positive {
		return allowed.IsSubset(term.Set)
	}
	return allowed.IsDisjoint(term.Set)
}

// buildSolution extracts the decided version for every non-root package.
func (ps *partialSolution) buildSolution() map[Name]Version {
	out := make(map[Name]Version, len(ps.decisions))
	for name, a := range ps.decisions {
		if name.IsRoot() {
			continue
		}
		out[name] = *a.version
	}
	return out
}

// describe renders the partial solution for debug logging.
func (ps *partialSolution) describe() string {
	var b strings.Builder
	for _, a := range ps.assignments {
		kind := "derived"
		if a.isDecision() {
			kind = "decided"
		}
		b.WriteString(kind)
		b.WriteString(" ")
		b.WriteString(a.term.String())
		b.WriteString(" @L")
		b.WriteString(strconv.Itoa(a.decisionLevel))
		b.WriteString("\n")
	}
	return b.String()
}
