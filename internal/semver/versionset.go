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

// VersionSet pairs two Range values: Normal governs release versions, Pre
// governs pre-release versions. A candidate is tested against whichever
// range matches its own kind, so a requirement that never mentions
// pre-releases (Pre stays Empty) automatically excludes them, without the
// half-open Range approximation ever needing to reason about the release/
// pre-release density gap directly.
type VersionSet struct {
	Normal Range
	Pre    Range
}

// EmptySet returns the version set that admits nothing.
func EmptySet() VersionSet { return VersionSet{} }

// FullSet returns the version set that admits every release and every
// pre-release.
func FullSet() VersionSet {
	return VersionSet{Normal: Any(), Pre: Any()}
}

// Contains reports whether v is admitted by s, dispatching on whether v is a
// pre-release.
func (s VersionSet) Contains(v Version) bool {
	if v.IsPrerelease() {
		return s.Pre.Contains(v)
	}
	return s.Normal.Contains(v)
}

// IsEmpty reports whether s admits no versions at all.
func (s VersionSet) IsEmpty() bool {
	return s.Normal.IsEmpty() && s.Pre.IsEmpty()
}

func (s VersionSet) Union(other VersionSet) VersionSet {
	return VersionSet{
		Normal: s.Normal.Union(other.Normal),
		Pre:    s.Pre.Union(other.Pre),
	}
}

func (s VersionSet) Intersection(other VersionSet) VersionSet {
	return VersionSet{
		Normal: s.Normal.Intersection(other.Normal),
		Pre:    s.Pre.Intersection(other.Pre),
	}
}

func (s VersionSet) Complement() VersionSet {
	return VersionSet{
		Normal: s.Normal.Complement(),
		Pre:    s.Pre.Complement(),
	}
}

func (s VersionSet) IsSubset(other VersionSet) bool {
	return s.Normal.IsSubset(other.Normal) && s.Pre.IsSubset(other.Pre)
}

func (s VersionSet) IsDisjoint(other VersionSet) bool {
	return s.Normal.IsDisjoint(other.Normal) && s.Pre.IsDisjoint(other.Pre)
}

// String renders the normal range; pre-release admissibility is reporter
// detail, not part of a requirement's display form.
func (s VersionSet) String() string {
	if s.IsEmpty() {
		return "<empty>"
	}
	return s.Normal.String()
}
