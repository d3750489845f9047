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

// Package identifier parses and validates package names and CLI package
// specifiers (name plus an optional version requirement).
package identifier

import (
	"strings"
	"unique"

	"github.com/mqpkg/mqpkg/internal/semver"
)

// Name is an interned, lowercase package name. Interning follows the
// teacher's use of unique.Handle[string] for package identifiers, which
// keeps repeated name comparisons (the solver's hot path) to pointer
// equality rather than string comparison.
type Name struct {
	handle unique.Handle[string]
}

// ParseName validates s against the package-name grammar
// ([a-z][a-z0-9]*, case-insensitive) and returns its interned, lowercased
// form.
func ParseName(s string) (Name, error) {
	if s == "" {
		return Name{}, &PackageNameTooShortError{Input: s}
	}

	lower := strings.ToLower(s)

	first := lower[0]
	if first < 'a' || first > 'z' {
		return Name{}, &NoStartingAlphaError{Input: s}
	}

	for i := 1; i < len(lower); i++ {
		c := lower[i]
		isAlpha := c >= 'a' && c <= 'z'
		isDigit := c >= '0' && c <= '9'
		if !isAlpha && !isDigit {
			return Name{}, &InvalidCharacterError{Input: s, Character: rune(c)}
		}
	}

	return Name{handle: unique.Make(lower)}, nil
}

// MustParseName is ParseName, panicking on error. Intended for constructing
// compile-time-known-valid names; RootName is not built with it, since it
// fails the grammar.
func MustParseName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Value returns the underlying lowercase string.
func (n Name) Value() string { return n.handle.Value() }

// String implements fmt.Stringer.
func (n Name) String() string { return n.Value() }

// Equal reports whether two names refer to the same interned string.
func (n Name) Equal(other Name) bool { return n.handle == other.handle }

// Less provides a stable, deterministic ordering over names (lexical on the
// underlying string) used wherever output must be sorted for determinism.
func (n Name) Less(other Name) bool { return n.Value() < other.Value() }

// RootName is the synthetic root package's identifier. It is not a valid
// user-facing package name (it would fail ParseName's grammar), which is
// deliberate: it must never collide with a real package.
var RootName = Name{handle: unique.Make("$root")}

// IsRoot reports whether n is the synthetic root package.
func (n Name) IsRoot() bool { return n.Equal(RootName) }

// Specifier is a (name, requirement) pair as typed on the command line, e.g.
// "foo>=1.2,<2" or bare "bar" (which defaults its requirement to "*").
type Specifier struct {
	Name       Name
	Requirement semver.VersionReq
}

// ParseSpecifier splits s at the first non-alphanumeric character into a
// name and a version requirement; an empty or absent requirement part
// defaults to "*".
func ParseSpecifier(s string) (Specifier, error) {
	if s == "" {
		return Specifier{}, &PackageSpecifierNoNameError{Input: s}
	}

	split := len(s)
	for i, r := range s {
		isAlphaNum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !isAlphaNum {
			split = i
			break
		}
	}

	namePart := s[:split]
	reqPart := ""
	if split < len(s) {
		reqPart = s[split:]
	}

	name, err := ParseName(namePart)
	if err != nil {
		return Specifier{}, err
	}

	req, err := semver.ParseVersionReq(reqPart)
	if err != nil {
		return Specifier{}, &InvalidVersionRequirementError{Input: reqPart, Err: err}
	}

	return Specifier{Name: name, Requirement: req}, nil
}

// String renders the specifier back to its CLI syntax.
func (s Specifier) String() string {
	req := s.Requirement.String()
	if req == "*" {
		return s.Name.Value()
	}
	return s.Name.Value() + req
}
