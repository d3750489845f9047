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

package semver

import "testing"

func TestRangeContains(t *testing.T) {
	r := Between(mustParse(t, "1.0.0"), mustParse(t, "2.0.0"))

	if !r.Contains(mustParse(t, "1.0.0")) {
		t.Error("expected lower bound to be inclusive")
	}
	if r.Contains(mustParse(t, "2.0.0")) {
		t.Error("expected upper bound to be exclusive")
	}
	if !r.Contains(mustParse(t, "1.9.9")) {
		t.Error("expected 1.9.9 to be contained")
	}
}

func TestRangeIntersectionIdentityAndAnnihilator(t *testing.T) {
	r := Between(mustParse(t, "1.0.0"), mustParse(t, "2.0.0"))

	if got := r.Intersection(Any()); got.String() != r.String() {
		t.Errorf("Any() should be the intersection identity, got %v", got)
	}
	if got := r.Intersection(Empty()); !got.IsEmpty() {
		t.Errorf("Empty() should be the intersection annihilator, got %v", got)
	}
}

func TestRangeIntersectionCommutativeAssociative(t *testing.T) {
	a := AtLeast(mustParse(t, "1.0.0"))
	b := Below(mustParse(t, "3.0.0"))
	c := Between(mustParse(t, "0.5.0"), mustParse(t, "2.5.0"))

	ab := a.Intersection(b)
	ba := b.Intersection(a)
	if ab.String() != ba.String() {
		t.Errorf("intersection not commutative: %v vs %v", ab, ba)
	}

	left := a.Intersection(b).Intersection(c)
	right := a.Intersection(b.Intersection(c))
	if left.String() != right.String() {
		t.Errorf("intersection not associative: %v vs %v", left, right)
	}
}

func TestRangeComplementInvolution(t *testing.T) {
	r := Between(mustParse(t, "1.0.0"), mustParse(t, "2.0.0")).
		Union(AtLeast(mustParse(t, "5.0.0")))

	got := r.Complement().Complement()
	probes := []string{"0.1.0", "1.0.0", "1.5.0", "1.9.9", "2.0.0", "4.0.0", "5.0.0", "9.9.9"}
	for _, p := range probes {
		v := mustParse(t, p)
		if got.Contains(v) != r.Contains(v) {
			t.Errorf("complement(complement(r)) differs from r at %s", p)
		}
	}
}

func TestRangeContainsDistributesOverIntersection(t *testing.T) {
	a := AtLeast(mustParse(t, "1.0.0"))
	b := Below(mustParse(t, "2.0.0"))
	inter := a.Intersection(b)

	for _, s := range []string{"0.5.0", "1.0.0", "1.5.0", "2.0.0", "3.0.0"} {
		v := mustParse(t, s)
		want := a.Contains(v) && b.Contains(v)
		if inter.Contains(v) != want {
			t.Errorf("Contains(%s, a ∩ b) = %v, want %v", s, inter.Contains(v), want)
		}
	}
}
