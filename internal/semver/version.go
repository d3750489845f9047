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

// Package semver implements the SemVer 2.0 version type, the half-open Range
// primitive, and the dual-range VersionSet used by the resolver.
package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a SemVer 2.0 (major, minor, patch) triple plus an optional
// pre-release identifier. Build metadata is accepted on parse but ignored
// everywhere else, per SemVer precedence rules.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
}

// Parse parses a version string of the form "major.minor.patch[-prerelease][+build]".
func Parse(s string) (Version, error) {
	var v Version

	s = strings.TrimSpace(s)
	if s == "" {
		return v, fmt.Errorf("semver: empty version")
	}

	if idx := strings.IndexByte(s, '+'); idx >= 0 {
		s = s[:idx]
	}

	core := s
	if idx := strings.IndexByte(s, '-'); idx >= 0 {
		core = s[:idx]
		v.Prerelease = s[idx+1:]
		if v.Prerelease == "" {
			return Version{}, fmt.Errorf("semver: empty prerelease in %q", s)
		}
	}

	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("semver: version %q must have major.minor.patch", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("semver: invalid numeric component %q in %q", p, s)
		}
		nums[i] = n
	}

	v.Major, v.Minor, v.Patch = nums[0], nums[1], nums[2]
	return v, nil
}

// String renders the version in canonical major.minor.patch[-prerelease] form.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	return s
}

// IsPrerelease reports whether v carries a nonempty pre-release identifier.
func (v Version) IsPrerelease() bool {
	return v.Prerelease != ""
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than other,
// following SemVer 2.0 precedence rules.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return cmpInt(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return cmpInt(v.Minor, other.Minor)
	}
	if v.Patch != other.Patch {
		return cmpInt(v.Patch, other.Patch)
	}

	switch {
	case v.Prerelease == "" && other.Prerelease == "":
		return 0
	case v.Prerelease == "":
		return 1
	case other.Prerelease == "":
		return -1
	default:
		return comparePrerelease(v.Prerelease, other.Prerelease)
	}
}

// Less reports whether v sorts strictly before other.
func (v Version) Less(other Version) bool { return v.Compare(other) < 0 }

// Equal reports whether v and other are the same version.
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// comparePrerelease compares two pre-release strings by dot-separated
// identifier, numeric identifiers compared numerically, others lexically;
// a shorter identifier list with an otherwise-equal prefix sorts lower.
func comparePrerelease(a, b string) int {
	aParts := strings.Split(a, ".")
	bParts := strings.Split(b, ".")

	n := len(aParts)
	if len(bParts) < n {
		n = len(bParts)
	}

	for i := 0; i < n; i++ {
		ai, aErr := strconv.Atoi(aParts[i])
		bi, bErr := strconv.Atoi(bParts[i])

		switch {
		case aErr == nil && bErr == nil:
			if ai != bi {
				return cmpInt(ai, bi)
			}
		case aErr == nil:
			return -1 // numeric identifiers always sort lower than alphanumeric
		case bErr == nil:
			return 1
		default:
			if c := strings.Compare(aParts[i], bParts[i]); c != 0 {
				return c
			}
		}
	}

	return cmpInt(len(aParts), len(bParts))
}

// NextPatch returns the version with patch incremented and pre-release cleared.
func (v Version) NextPatch() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// NextMinor returns the version with minor incremented, patch reset to 0, and
// pre-release cleared.
func (v Version) NextMinor() Version {
	return Version{Major: v.Major, Minor: v.Minor + 1}
}

// NextMajor returns the version with major incremented, minor and patch reset
// to 0, and pre-release cleared.
func (v Version) NextMajor() Version {
	return Version{Major: v.Major + 1}
}

// NextPrerelease appends ".0" to the pre-release identifier, producing the
// smallest pre-release value that still sorts above v. Only meaningful when
// v already carries a pre-release tag.
func (v Version) NextPrerelease() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch, Prerelease: v.Prerelease + ".0"}
}

// Bump returns the immediate successor of v in the order used to build
// half-open Range bounds: the next pre-release value if v is a pre-release,
// otherwise the next patch release. It is the `bump()` operation required by
// the Range primitive to convert closed bounds into half-open form.
func (v Version) Bump() Version {
	if v.IsPrerelease() {
		return v.NextPrerelease()
	}
	return v.NextPatch()
}
