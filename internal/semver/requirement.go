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

import (
	"fmt"
	"strconv"
	"strings"
)

// Comparator is one operator applied to a partially-specified version. Which
// of Minor/Patch/Prerelease are populated encodes the comparator's arity:
// patch implies minor, prerelease implies all three are present. A bare "*"
// comparator has Op "*" and no fields populated.
type Comparator struct {
	Op         string
	Full       bool // true for a bare "*" with no major component at all
	Major      int
	Minor      *int
	Patch      *int
	Prerelease *string
}

// VersionReq is a conjunction of Comparators — a package is acceptable only
// if it satisfies every comparator in the requirement.
type VersionReq struct {
	Comparators []Comparator
}

// String renders the requirement canonically, comparators joined by commas.
func (r VersionReq) String() string {
	if len(r.Comparators) == 0 {
		return "*"
	}
	parts := make([]string, len(r.Comparators))
	for i, c := range r.Comparators {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// String renders a single comparator back to its source syntax.
func (c Comparator) String() string {
	if c.Full {
		return "*"
	}

	var b strings.Builder
	if c.Op != "*" {
		b.WriteString(c.Op)
	}
	fmt.Fprintf(&b, "%d", c.Major)
	if c.Minor != nil {
		fmt.Fprintf(&b, ".%d", *c.Minor)
		if c.Op == "*" {
			b.WriteString(".*")
		}
	} else if c.Op == "*" {
		b.WriteString(".*")
	}
	if c.Patch != nil {
		fmt.Fprintf(&b, ".%d", *c.Patch)
	}
	if c.Prerelease != nil {
		fmt.Fprintf(&b, "-%s", *c.Prerelease)
	}
	return b.String()
}

var comparatorOps = []string{">=", "<=", "==", "=", ">", "<", "~", "^"}

// ParseVersionReq parses a comma-separated conjunction of comparators. An
// empty or "*" string yields the requirement that admits every release.
func ParseVersionReq(s string) (VersionReq, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return VersionReq{}, nil
	}

	var comps []Comparator
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			return VersionReq{}, fmt.Errorf("semver: empty comparator in requirement %q", s)
		}
		c, err := parseComparator(field)
		if err != nil {
			return VersionReq{}, err
		}
		comps = append(comps, c)
	}
	return VersionReq{Comparators: comps}, nil
}

func parseComparator(field string) (Comparator, error) {
	op := "="
	rest := field

	if field == "*" {
		return Comparator{Op: "*", Full: true}, nil
	}

	for _, candidate := range comparatorOps {
		if strings.HasPrefix(field, candidate) {
			op = candidate
			rest = field[len(candidate):]
			break
		}
	}
	if op == "==" {
		op = "="
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return Comparator{}, fmt.Errorf("semver: comparator %q has no version", field)
	}

	return parseVersionBody(op, rest)
}

// parseVersionBody parses the "I[.J[.K][-P]]" or "I.*" / "I.J.*" body that
// follows an operator, enforcing the arity invariant: patch presence implies
// minor presence, prerelease presence implies all three.
func parseVersionBody(op, body string) (Comparator, error) {
	var prerelease *string
	core := body
	if idx := strings.IndexByte(body, '-'); idx >= 0 {
		core = body[:idx]
		p := body[idx+1:]
		if p == "" {
			return Comparator{}, fmt.Errorf("semver: empty prerelease in %q", body)
		}
		prerelease = &p
	}

	fields := strings.Split(core, ".")
	if len(fields) > 3 {
		return Comparator{}, fmt.Errorf("semver: too many version components in %q", body)
	}

	wildcard := false
	nums := make([]*int, 0, 3)
	for i, f := range fields {
		if f == "*" {
			if i != len(fields)-1 {
				return Comparator{}, fmt.Errorf("semver: wildcard must be the last component in %q", body)
			}
			wildcard = true
			break
		}
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return Comparator{}, fmt.Errorf("semver: invalid numeric component %q in %q", f, body)
		}
		nv := n
		nums = append(nums, &nv)
	}

	if wildcard {
		// Only "I.*" and "I.J.*" reach here; bare "*" is handled by the
		// caller before parseVersionBody is invoked. A wildcard after a patch
		// number would be a fourth component and is rejected above.
		switch len(nums) {
		case 1:
			return Comparator{Op: "*", Major: *nums[0]}, nil
		case 2:
			return Comparator{Op: "*", Major: *nums[0], Minor: nums[1]}, nil
		default:
			return Comparator{}, fmt.Errorf("semver: wildcard without a major version in %q", body)
		}
	}

	if len(nums) == 0 {
		return Comparator{}, fmt.Errorf("semver: missing major version in %q", body)
	}

	c := Comparator{Op: op, Major: *nums[0]}
	if len(nums) >= 2 {
		c.Minor = nums[1]
	}
	if len(nums) >= 3 {
		c.Patch = nums[2]
	}
	if prerelease != nil {
		if c.Minor == nil || c.Patch == nil {
			return Comparator{}, fmt.Errorf("semver: prerelease requires full major.minor.patch in %q", body)
		}
		c.Prerelease = prerelease
	}
	return c, nil
}

// ToVersionSet translates r into a VersionSet by intersecting the normal
// range contributed by each comparator and unioning the pre-release window
// each comparator opens up, per the resolver's comparator-to-range table.
func (r VersionReq) ToVersionSet() VersionSet {
	vs := VersionSet{Normal: Any(), Pre: Empty()}
	for _, c := range r.Comparators {
		vs.Normal = vs.Normal.Intersection(convertNormal(c))
		vs.Pre = vs.Pre.Union(convertPrerelease(c))
	}
	return vs
}

// convertPrerelease is operator-independent: a comparator only opens a
// pre-release window when it names one explicitly.
func convertPrerelease(c Comparator) Range {
	if c.Prerelease == nil {
		return Empty()
	}
	lo := Version{Major: c.Major, Minor: *c.Minor, Patch: *c.Patch, Prerelease: *c.Prerelease}
	hi := Version{Major: c.Major, Minor: *c.Minor, Patch: *c.Patch}
	return Between(lo, hi)
}

func convertNormal(c Comparator) Range {
	switch c.Op {
	case "*":
		return wildcardRange(c)
	case "=":
		return eqRange(c)
	case ">":
		return gtRange(c)
	case ">=":
		return geRange(c)
	case "<":
		return ltRange(c)
	case "<=":
		return leRange(c)
	case "~":
		return tildeRange(c)
	case "^":
		return caretRange(c)
	default:
		return Empty()
	}
}

func wildcardRange(c Comparator) Range {
	if c.Full {
		return Any()
	}
	if c.Minor == nil {
		return Between(Version{Major: c.Major}, Version{Major: c.Major + 1})
	}
	return Between(
		Version{Major: c.Major, Minor: *c.Minor},
		Version{Major: c.Major, Minor: *c.Minor + 1},
	)
}

func eqRange(c Comparator) Range {
	switch {
	case c.Prerelease != nil:
		return Between(
			Version{Major: c.Major, Minor: *c.Minor, Patch: *c.Patch, Prerelease: *c.Prerelease},
			Version{Major: c.Major, Minor: *c.Minor, Patch: *c.Patch},
		)
	case c.Patch != nil:
		return Exact(Version{Major: c.Major, Minor: *c.Minor, Patch: *c.Patch})
	case c.Minor != nil:
		return Between(
			Version{Major: c.Major, Minor: *c.Minor},
			Version{Major: c.Major, Minor: *c.Minor + 1},
		)
	default:
		return Between(Version{Major: c.Major}, Version{Major: c.Major + 1})
	}
}

func gtRange(c Comparator) Range {
	switch {
	case c.Prerelease != nil:
		base := Version{Major: c.Major, Minor: *c.Minor, Patch: *c.Patch, Prerelease: *c.Prerelease}
		return AtLeast(base.NextPrerelease())
	case c.Patch != nil:
		return AtLeast(Version{Major: c.Major, Minor: *c.Minor, Patch: *c.Patch + 1})
	case c.Minor != nil:
		return AtLeast(Version{Major: c.Major, Minor: *c.Minor + 1})
	default:
		return AtLeast(Version{Major: c.Major + 1})
	}
}

func geRange(c Comparator) Range {
	switch {
	case c.Prerelease != nil:
		return AtLeast(Version{Major: c.Major, Minor: *c.Minor, Patch: *c.Patch, Prerelease: *c.Prerelease})
	case c.Patch != nil:
		return AtLeast(Version{Major: c.Major, Minor: *c.Minor, Patch: *c.Patch})
	case c.Minor != nil:
		return AtLeast(Version{Major: c.Major, Minor: *c.Minor})
	default:
		return AtLeast(Version{Major: c.Major})
	}
}

func ltRange(c Comparator) Range {
	switch {
	case c.Prerelease != nil:
		return Below(Version{Major: c.Major, Minor: *c.Minor, Patch: *c.Patch, Prerelease: *c.Prerelease})
	case c.Patch != nil:
		return Below(Version{Major: c.Major, Minor: *c.Minor, Patch: *c.Patch})
	case c.Minor != nil:
		return Below(Version{Major: c.Major, Minor: *c.Minor})
	default:
		return Below(Version{Major: c.Major})
	}
}

func leRange(c Comparator) Range {
	switch {
	case c.Prerelease != nil:
		base := Version{Major: c.Major, Minor: *c.Minor, Patch: *c.Patch, Prerelease: *c.Prerelease}
		return Below(base.NextPrerelease())
	case c.Patch != nil:
		return Below(Version{Major: c.Major, Minor: *c.Minor, Patch: *c.Patch + 1})
	case c.Minor != nil:
		return Below(Version{Major: c.Major, Minor: *c.Minor + 1})
	default:
		return Below(Version{Major: c.Major + 1})
	}
}

func tildeRange(c Comparator) Range {
	switch {
	case c.Prerelease != nil:
		lo := Version{Major: c.Major, Minor: *c.Minor, Patch: *c.Patch, Prerelease: *c.Prerelease}
		hi := Version{Major: c.Major, Minor: *c.Minor + 1}
		return Between(lo, hi)
	case c.Patch != nil:
		return Between(
			Version{Major: c.Major, Minor: *c.Minor, Patch: *c.Patch},
			Version{Major: c.Major, Minor: *c.Minor + 1},
		)
	case c.Minor != nil:
		return Between(
			Version{Major: c.Major, Minor: *c.Minor},
			Version{Major: c.Major, Minor: *c.Minor + 1},
		)
	default:
		return Between(Version{Major: c.Major}, Version{Major: c.Major + 1})
	}
}

func caretRange(c Comparator) Range {
	if c.Minor == nil {
		return Between(Version{Major: c.Major}, Version{Major: c.Major + 1})
	}

	if c.Patch == nil {
		// ^I.J arity.
		if c.Major > 0 || *c.Minor > 0 {
			return Between(
				Version{Major: c.Major, Minor: *c.Minor},
				Version{Major: c.Major + 1},
			)
		}
		// ^0.0 : [0.0.0, 0.1.0)
		return Between(Version{Major: 0, Minor: 0}, Version{Major: 0, Minor: 1})
	}

	lo := Version{Major: c.Major, Minor: *c.Minor, Patch: *c.Patch}
	if c.Prerelease != nil {
		lo.Prerelease = *c.Prerelease
	}

	switch {
	case c.Major > 0:
		return Between(lo, Version{Major: c.Major + 1})
	case *c.Minor > 0:
		return Between(lo, Version{Major: c.Major, Minor: *c.Minor + 1})
	default:
		// ^0.0.K : exact(0.0.K), anchored at the pre-release if present.
		return Between(lo, Version{Major: c.Major, Minor: *c.Minor, Patch: *c.Patch}.Bump())
	}
}
