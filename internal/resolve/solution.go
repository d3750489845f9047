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
	"iter"
	"sort"
)

// NameVersion is one pinned entry of a Solution.
type NameVersion struct {
	Name    Name
	Version Version
}

func (n NameVersion) String() string {
	return n.Name.Value() + "@" + n.Version.String()
}

// Solution is the pinned package set returned by a successful Solve call.
// The synthetic root package is never present.
type Solution []NameVersion

// GetVersion returns the version pinned for name, if any.
func (s Solution) GetVersion(name Name) (Version, bool) {
	for _, nv := range s {
		if nv.Name == name {
			return nv.Version, true
		}
	}
	return Version{}, false
}

// All iterates the solution's entries sorted by name, for deterministic
// display.
func (s Solution) All() iter.Seq[NameVersion] {
	sorted := make(Solution, len(s))
	copy(sorted, s)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name.Less(sorted[j].Name) })

	return func(yield func(NameVersion) bool) {
		for _, nv := range sorted {
			if !yield(nv) {
				return
			}
		}
	}
}

func solutionFromMap(m map[Name]Version) Solution {
	out := make(Solution, 0, len(m))
	for name, version := range m {
		out = append(out, NameVersion{Name: name, Version: version})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name.Less(out[j].Name) })
	return out
}
