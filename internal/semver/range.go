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

import "strings"

// Range is a set of versions expressed as a disjoint union of half-open
// intervals. It is the algebraic building block behind VersionSet and, by
// extension, every requirement comparator (=, >, >=, <, <=, ~, ^, *).
type Range struct {
	intervals []interval
}

// Empty returns the range that contains no versions.
func Empty() Range { return Range{} }

// Any returns the range that contains every version.
func Any() Range {
	return Range{intervals: []interval{{lower: lowerUnbounded(), upper: upperUnbounded()}}}
}

// Exact returns the range containing only v, derived as [v, v.Bump()).
func Exact(v Version) Range {
	iv, ok := newInterval(finiteBound(v), finiteBound(v.Bump()))
	if !ok {
		return Empty()
	}
	return Range{intervals: []interval{iv}}
}

// AtLeast returns the range [v, +inf).
func AtLeast(v Version) Range {
	return Range{intervals: []interval{{lower: finiteBound(v), upper: upperUnbounded()}}}
}

// Above returns the range (v, +inf), built as [v.Bump(), +inf).
func Above(v Version) Range {
	return AtLeast(v.Bump())
}

// Below returns the range (-inf, v).
func Below(v Version) Range {
	return Range{intervals: []interval{{lower: lowerUnbounded(), upper: finiteBound(v)}}}
}

// AtMost returns the range (-inf, v], built as (-inf, v.Bump()).
func AtMost(v Version) Range {
	return Below(v.Bump())
}

// Between returns the half-open range [lo, hi).
func Between(lo, hi Version) Range {
	iv, ok := newInterval(finiteBound(lo), finiteBound(hi))
	if !ok {
		return Empty()
	}
	return Range{intervals: []interval{iv}}
}

// IsEmpty reports whether r contains no versions.
func (r Range) IsEmpty() bool { return len(r.intervals) == 0 }

// Contains reports whether v falls inside any interval of r.
func (r Range) Contains(v Version) bool {
	for _, iv := range r.intervals {
		if iv.contains(v) {
			return true
		}
	}
	return false
}

// Union returns the set union of r and other.
func (r Range) Union(other Range) Range {
	combined := make([]interval, 0, len(r.intervals)+len(other.intervals))
	combined = append(combined, r.intervals...)
	combined = append(combined, other.intervals...)
	return Range{intervals: normalizeIntervals(combined)}
}

// Intersection returns the set intersection of r and other.
func (r Range) Intersection(other Range) Range {
	var out []interval
	i, j := 0, 0
	for i < len(r.intervals) && j < len(other.intervals) {
		a, b := r.intervals[i], other.intervals[j]
		if a.overlaps(b) {
			lower := a.lower
			if compareAsLower(b.lower, lower) > 0 {
				lower = b.lower
			}
			upper := a.upper
			if compareAsUpper(b.upper, upper) < 0 {
				upper = b.upper
			}
			if iv, ok := newInterval(lower, upper); ok {
				out = append(out, iv)
			}
		}
		if compareAsUpper(a.upper, b.upper) < 0 {
			i++
		} else {
			j++
		}
	}
	return Range{intervals: out}
}

// Complement returns every version not contained in r.
func (r Range) Complement() Range {
	if len(r.intervals) == 0 {
		return Any()
	}

	var out []interval
	cursor := lowerUnbounded()
	for _, iv := range r.intervals {
		if gap, ok := newInterval(cursor, iv.complementUpperBound()); ok {
			out = append(out, gap)
		}
		cursor = iv.complementLowerBound()
	}
	if tail, ok := newInterval(cursor, upperUnbounded()); ok {
		out = append(out, tail)
	}
	return Range{intervals: out}
}

// IsSubset reports whether every version in r is also in other.
func (r Range) IsSubset(other Range) bool {
	for _, iv := range r.intervals {
		covered := false
		for _, o := range other.intervals {
			if o.covers(iv) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

// IsDisjoint reports whether r and other share no versions.
func (r Range) IsDisjoint(other Range) bool {
	return r.Intersection(other).IsEmpty()
}

// String renders r using the same "==v", ">=v", "<v", "*", "||"-joined
// notation the resolver's human-readable reports use.
func (r Range) String() string {
	if len(r.intervals) == 0 {
		return "<empty>"
	}

	parts := make([]string, 0, len(r.intervals))
	for _, iv := range r.intervals {
		parts = append(parts, intervalString(iv))
	}
	return strings.Join(parts, " || ")
}

func intervalString(iv interval) string {
	switch {
	case iv.lower.isNegInfinity() && iv.upper.isPosInfinity():
		return "*"
	case iv.lower.isNegInfinity():
		return "<" + iv.upper.version.String()
	case iv.upper.isPosInfinity():
		return ">=" + iv.lower.version.String()
	case iv.upper.version.Equal(iv.lower.version.Bump()):
		return "==" + iv.lower.version.String()
	default:
		return ">=" + iv.lower.version.String() + ", <" + iv.upper.version.String()
	}
}
