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

package identifier

import "testing"

func TestParseNameRoundTrip(t *testing.T) {
	for _, s := range []string{"foo", "bar2", "a", "x9y8z7"} {
		n, err := ParseName(s)
		if err != nil {
			t.Fatalf("ParseName(%q): %v", s, err)
		}
		if n.String() != s {
			t.Errorf("ParseName(%q).String() = %q, want %q", s, n.String(), s)
		}
	}
}

func TestParseNameLowercases(t *testing.T) {
	n, err := ParseName("FooBar")
	if err != nil {
		t.Fatalf("ParseName: %v", err)
	}
	if n.String() != "foobar" {
		t.Errorf("got %q, want %q", n.String(), "foobar")
	}
}

func TestParseNameRejectsInvalid(t *testing.T) {
	cases := []string{"", "1abc", "-abc", "abc_def", "abc def"}
	for _, s := range cases {
		if _, err := ParseName(s); err == nil {
			t.Errorf("ParseName(%q) should have failed", s)
		}
	}
}

func TestRootNameIsRoot(t *testing.T) {
	if !RootName.IsRoot() {
		t.Error("RootName.IsRoot() should be true")
	}
	n := MustParseName("foo")
	if n.IsRoot() {
		t.Error("an ordinary name should not be root")
	}
}

func TestParseSpecifier(t *testing.T) {
	cases := []struct {
		in       string
		wantName string
	}{
		{"foo", "foo"},
		{"bar>=1.2,<2", "bar"},
		{"baz=1.0.0-alpha.1", "baz"},
	}

	for _, c := range cases {
		spec, err := ParseSpecifier(c.in)
		if err != nil {
			t.Fatalf("ParseSpecifier(%q): %v", c.in, err)
		}
		if spec.Name.Value() != c.wantName {
			t.Errorf("ParseSpecifier(%q).Name = %q, want %q", c.in, spec.Name.Value(), c.wantName)
		}
	}

	bare, err := ParseSpecifier("bar")
	if err != nil {
		t.Fatalf("ParseSpecifier: %v", err)
	}
	if bare.Requirement.String() != "*" {
		t.Errorf("bare specifier requirement = %q, want *", bare.Requirement.String())
	}
}

func TestParseSpecifierRoundTrip(t *testing.T) {
	for _, in := range []string{"foo", "bar>=1.2,<2"} {
		spec, err := ParseSpecifier(in)
		if err != nil {
			t.Fatalf("ParseSpecifier(%q): %v", in, err)
		}
		again, err := ParseSpecifier(spec.String())
		if err != nil {
			t.Fatalf("re-parsing %q: %v", spec.String(), err)
		}
		if again.Name != spec.Name || again.Requirement.String() != spec.Requirement.String() {
			t.Errorf("round-trip mismatch for %q: got %+v, want %+v", in, again, spec)
		}
	}
}
