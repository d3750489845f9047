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
	"strings"
	"testing"

	"github.com/mqpkg/mqpkg/internal/identifier"
	"github.com/mqpkg/mqpkg/internal/semver"
)

func TestTermNegate(t *testing.T) {
	name := identifier.MustParseName("foo")
	term := NewTerm(name, semver.FullSet())
	negated := term.Negate()

	if negated.Positive {
		t.Fatalf("expected negated term to be negative")
	}
	if negated.Name != name {
		t.Fatalf("negate must preserve package name")
	}
}

func TestTermSatisfiedByNilVersion(t *testing.T) {
	name := identifier.MustParseName("foo")
	positive := NewTerm(name, semver.FullSet())
	negative := NewNegativeTerm(name, semver.FullSet())

	if positive.SatisfiedBy(nil) {
		t.Fatalf("a positive term should never be satisfied by package absence")
	}
	if !negative.SatisfiedBy(nil) {
		t.Fatalf("a negative term should be satisfied by package absence")
	}
}

func TestIncompatibilityFromDependencyString(t *testing.T) {
	depender := identifier.MustParseName("app")
	dependee := identifier.MustParseName("lib")

	dependerTerm := NewTerm(depender, semver.FullSet())
	dependeeTerm := NewTerm(dependee, semver.FullSet())

	inc := NewIncompatibilityFromDependency(dependerTerm, dependeeTerm)
	if inc.Kind != KindFromDependency {
		t.Fatalf("expected KindFromDependency")
	}
	if !strings.Contains(inc.String(), "app depends on") {
		t.Fatalf("expected readable dependency rendering, got %q", inc.String())
	}
}

func TestDedupeTermsKeepsFirstOccurrence(t *testing.T) {
	name := identifier.MustParseName("foo")
	first := NewTerm(name, semver.FullSet())
	second := NewNegativeTerm(name, semver.FullSet())

	inc := NewIncompatibilityNoVersions(first)
	inc.Terms = append(inc.Terms, second)
	deduped := dedupeTerms(inc.Terms)

	if len(deduped) != 1 {
		t.Fatalf("expected dedupeTerms to collapse same-package terms, got %d", len(deduped))
	}
	if !deduped[0].Positive {
		t.Fatalf("expected first occurrence (positive) to survive dedupe")
	}
}

func TestMergeTwoTermsBothPositiveIntersects(t *testing.T) {
	name := identifier.MustParseName("foo")
	v1 := mustVersion(t, "1.0.0")
	v2 := mustVersion(t, "2.0.0")

	a := NewTerm(name, semver.VersionSet{Normal: semver.AtLeast(v1)})
	b := NewTerm(name, semver.VersionSet{Normal: semver.Below(v2)})

	merged := mergeTwoTerms(a, b)
	if !merged.Positive {
		t.Fatalf("expected merge of two positive terms to stay positive")
	}
	if !merged.Set.Contains(mustVersion(t, "1.5.0")) {
		t.Fatalf("expected merged range to contain a version inside both bounds")
	}
	if merged.Set.Contains(mustVersion(t, "2.0.0")) {
		t.Fatalf("expected merged range to exclude a version outside the upper bound")
	}
}

func TestMergeTwoTermsBothNegativeUnions(t *testing.T) {
	name := identifier.MustParseName("foo")
	v1 := mustVersion(t, "1.0.0")
	v2 := mustVersion(t, "2.0.0")

	a := NewNegativeTerm(name, singletonForTest(v1))
	b := NewNegativeTerm(name, singletonForTest(v2))

	merged := mergeTwoTerms(a, b)
	if merged.Positive {
		t.Fatalf("expected merge of two negative terms to stay negative")
	}
	if !merged.Set.Contains(v1) || !merged.Set.Contains(v2) {
		t.Fatalf("expected merged forbidden set to contain both excluded versions")
	}
}

func singletonForTest(v semver.Version) semver.VersionSet {
	if v.IsPrerelease() {
		return semver.VersionSet{Pre: semver.Exact(v)}
	}
	return semver.VersionSet{Normal: semver.Exact(v)}
}
