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
	"log/slog"

	"github.com/mqpkg/mqpkg/internal/identifier"
)

type incompatibilityRelation int

const (
	relationSatisfied incompatibilityRelation = iota
	relationAlmostSatisfied
	relationContradicted
	relationInconclusive
)

// solverState owns the partial solution, the learned incompatibility set,
// and the propagation worklist for a single Solve call.
type solverState struct {
	partial  *partialSolution
	provider DependencyProvider
	options  SolverOptions

	queue   []Name
	learned []*Incompatibility
	byName  map[Name][]*Incompatibility

	logger *slog.Logger
}

func newSolverState(provider DependencyProvider, options SolverOptions) *solverState {
	return &solverState{
		partial:  newPartialSolution(),
		provider: provider,
		options:  options,
		byName:   make(map[Name][]*Incompatibility),
		logger:   options.Logger,
	}
}

func (st *solverState) debug(msg string, args ...any) {
	if st.logger != nil {
		st.logger.Debug(msg, args...)
	}
}

func (st *solverState) enqueue(name Name) {
	if name == (Name{}) {
		return
	}
	st.queue = append(st.queue, name)
}

func (st *solverState) dequeue() (Name, bool) {
	if len(st.queue) == 0 {
		return Name{}, false
	}
	name := st.queue[0]
	st.queue = st.queue[1:]
	return name, true
}

func (st *solverState) addIncompatibility(inc *Incompatibility) {
	st.learned = append(st.learned, inc)
	seen := make(map[Name]bool, len(inc.Terms))
	for _, t := range inc.Terms {
		if seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		st.byName[t.Name] = append(st.byName[t.Name], inc)
	}
}

// markAssigned is an extension point for per-assignment bookkeeping; mqpkg
// has none to perform today.
func (st *solverState) markAssigned(Name) {}

// registerDependencies turns a candidate's dependency map into
// "depender depends on dependee" incompatibilities. An Unknown map yields a
// NoVersions incompatibility that forbids exactly the decided version,
// forcing the solver to backtrack and try the next candidate.
func (st *solverState) registerDependencies(depender Name, dependerSet VersionSet, deps Dependencies) (*Incompatibility, error) {
	if !deps.IsKnown() {
		return NewIncompatibilityNoVersions(NewTerm(depender, dependerSet)), nil
	}

	dependerTerm := NewTerm(depender, dependerSet)
	for depName, depSet := range deps.Map {
		if depName == depender {
			return nil, &SelfDependencyError{Package: depender}
		}
		if depSet.IsEmpty() {
			return nil, &DependencyOnTheEmptySetError{Package: depName, Dependent: depender}
		}
		dependeeTerm := NewTerm(depName, depSet)
		st.addIncompatibility(NewIncompatibilityFromDependency(dependerTerm, dependeeTerm))
	}
	return nil, nil
}

// propagate runs unit propagation starting from seed (if any) and draining
// the worklist, returning the first incompatibility that becomes fully
// satisfied (a conflict), or nil if the worklist empties without one.
func (st *solverState) propagate(seed Name) (*Incompatibility, error) {
	if err := st.provider.ShouldCancel(); err != nil {
		return nil, err
	}

	st.enqueue(seed)

	for {
		name, ok := st.dequeue()
		if !ok {
			return nil, nil
		}

		for _, inc := range st.byName[name] {
			relation, unitTerm := st.evaluateIncompatibility(inc)
			switch relation {
			case relationContradicted, relationInconclusive:
				continue
			case relationSatisfied:
				st.debug("conflict detected during propagation", "package", name.Value(), "incompatibility", inc.String())
				return inc, nil
			case relationAlmostSatisfied:
				a, err := st.partial.addDerivation(unitTerm, inc)
				if err != nil {
					return nil, err
				}
				st.markAssigned(a.name)
				st.enqueue(a.name)
				st.debug("derived assignment", "package", a.name.Value(), "term", a.term.String())
			}
		}
	}
}

func (st *solverState) evaluateIncompatibility(inc *Incompatibility) (incompatibilityRelation, Term) {
	unsetCount := 0
	var unitTerm Term

	for _, t := range inc.Terms {
		switch st.relationForTerm(t) {
		case relationContradicted:
			return relationContradicted, Term{}
		case relationInconclusive:
			unsetCount++
			unitTerm = t
		}
	}

	switch unsetCount {
	case 0:
		return relationSatisfied, Term{}
	case 1:
		return relationAlmostSatisfied, unitTerm.Negate()
	default:
		return relationInconclusive, Term{}
	}
}

func (st *solverState) relationForTerm(t Term) incompatibilityRelation {
	if !st.partial.hasAssignments(t.Name) {
		return relationInconclusive
	}
	allowed := st.partial.allowedSet(t.Name)

	if t.Positive {
		switch {
		case allowed.IsSubset(t.Set):
			return relationSatisfied
		case allowed.IsDisjoint(t.Set):
			return relationContradicted
		default:
			return relationInconclusive
		}
	}

	switch {
	case allowed.IsDisjoint(t.Set):
		return relationSatisfied
	case allowed.IsSubset(t.Set):
		return relationContradicted
	default:
		return relationInconclusive
	}
}

// resolveConflict implements conflict-driven backjumping: it repeatedly
// merges the conflicting incompatibility with the cause of its most
// recently assigned term until it finds a genuine decision boundary to jump
// back to, or determines the conflict is unconditional (root-level),
// signalling no solution exists.
func (st *solverState) resolveConflict(conflict *Incompatibility) (*Incompatibility, Name, error) {
	for {
		if isRootFailure(conflict) {
			return nil, Name{}, NewNoSolutionError(conflict)
		}

		var (
			mostRecentTerm Term
			satisfier      *assignment
			satisfierIdx   = -1
		)

		for _, t := range conflict.Terms {
			a, idx := st.partial.satisfier(t)
			if idx > satisfierIdx {
				mostRecentTerm, satisfier, satisfierIdx = t, a, idx
			}
		}

		if satisfier == nil {
			return nil, Name{}, &SolverFailureError{Message: "no satisfier found for conflicting term"}
		}

		previousLevel := 0
		for _, t := range conflict.Terms {
			if t.Name == mostRecentTerm.Name {
				continue
			}
			a, _ := st.partial.satisfier(t)
			if a != nil && a.decisionLevel > previousLevel {
				previousLevel = a.decisionLevel
			}
		}

		if !satisfier.isDecision() || satisfier.decisionLevel == previousLevel {
			merged := mergeTerms(conflict, satisfier.cause, mostRecentTerm.Name)
			conflict = NewIncompatibilityConflict(merged, mostRecentTerm.Name, conflict, satisfier.cause)
			st.debug("merged incompatibility", "pivot", mostRecentTerm.Name.Value(), "incompatibility", conflict.String())
			continue
		}

		st.partial.backtrack(previousLevel)
		unitTerm := mostRecentTerm.Negate()
		a, err := st.partial.addDerivation(unitTerm, conflict)
		if err != nil {
			return nil, Name{}, err
		}
		st.markAssigned(a.name)
		st.debug("backjumped", "to_level", previousLevel, "package", a.name.Value())
		return nil, a.name, nil
	}
}

func isRootFailure(inc *Incompatibility) bool {
	if len(inc.Terms) == 0 {
		return true
	}
	return len(inc.Terms) == 1 && inc.Terms[0].Name == identifier.RootName
}

// mergeTerms combines the terms of two incompatibilities, dropping the
// pivot package's own term (it is eliminated by the resolution step) and
// merging any remaining terms that share a package.
func mergeTerms(a, b *Incompatibility, pivot Name) []Term {
	byName := make(map[Name]Term)
	order := make([]Name, 0)

	add := func(inc *Incompatibility) {
		if inc == nil {
			return
		}
		for _, t := range inc.Terms {
			if t.Name == pivot {
				continue
			}
			if existing, ok := byName[t.Name]; ok {
				byName[t.Name] = mergeTwoTerms(existing, t)
			} else {
				byName[t.Name] = t
				order = append(order, t.Name)
			}
		}
	}

	add(a)
	add(b)

	out := make([]Term, 0, len(order))
	for _, n := range order {
		out = append(out, byName[n])
	}
	return out
}

func mergeTwoTerms(a, b Term) Term {
	switch {
	case a.Positive && b.Positive:
		return Term{Name: a.Name, Positive: true, Set: a.Set.Intersection(b.Set)}
	case !a.Positive && !b.Positive:
		return Term{Name: a.Name, Positive: false, Set: a.Set.Union(b.Set)}
	default:
		pos, neg := a, b
		if !a.Positive {
			pos, neg = b, a
		}
		return Term{Name: pos.Name, Positive: true, Set: pos.Set.Intersection(neg.Set.Complement())}
	}
}
