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

package repository

import (
	"errors"
	"testing"

	"github.com/mqpkg/mqpkg/internal/identifier"
	"github.com/mqpkg/mqpkg/internal/resolve"
)

const firstRepoYAML = `
meta:
  name: first
packages:
  leftpad:
    1.0.0:
      dependencies: {}
    1.1.0:
      dependencies:
        padutils: ">=1.0.0"
  padutils:
    1.0.0:
      dependencies: {}
`

const secondRepoYAML = `
meta:
  name: second
packages:
  leftpad:
    1.1.0:
      dependencies: {}
`

func mustParseDoc(t *testing.T, raw string) *IndexDocument {
	t.Helper()
	doc, err := ParseIndexDocument([]byte(raw))
	if err != nil {
		t.Fatalf("ParseIndexDocument: %v", err)
	}
	return doc
}

func TestParseIndexDocument(t *testing.T) {
	doc := mustParseDoc(t, firstRepoYAML)
	if doc.Name != "first" {
		t.Fatalf("expected meta.name %q, got %q", "first", doc.Name)
	}

	leftPad := identifier.MustParseName("leftpad")
	if _, ok := doc.Packages[leftPad]; !ok {
		t.Fatalf("expected leftpad package to be present")
	}
}

func TestParseIndexDocumentRejectsInvalidName(t *testing.T) {
	_, err := ParseIndexDocument([]byte(`
meta:
  name: bad
packages:
  "Not Valid!":
    1.0.0:
      dependencies: {}
`))
	if err == nil {
		t.Fatalf("expected an error for an invalid package name")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
}

func TestRepositoryCandidatesMergesAcrossRepositoriesWithPrecedence(t *testing.T) {
	repo := NewRepository()
	repo.AddDocument(mustParseDoc(t, firstRepoYAML))
	repo.AddDocument(mustParseDoc(t, secondRepoYAML))

	leftPad := identifier.MustParseName("leftpad")
	candidates := repo.Candidates(leftPad)

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates for leftpad, got %d", len(candidates))
	}

	// Newest version first.
	if candidates[0].Version.String() != "1.1.0" {
		t.Fatalf("expected 1.1.0 first, got %s", candidates[0].Version.String())
	}
	// At the tied version 1.1.0 between repos, the first-declared repository
	// (source 1) must sort ahead of the second (source 2).
	if candidates[0].SourceID != 1 {
		t.Fatalf("expected the first-declared repository to win the version tie, got source %d", candidates[0].SourceID)
	}
}

func TestRepositoryDependenciesLooksUpDeclaredMap(t *testing.T) {
	repo := NewRepository()
	repo.AddDocument(mustParseDoc(t, firstRepoYAML))

	leftPad := identifier.MustParseName("leftpad")
	candidates := repo.Candidates(leftPad)

	var found bool
	for _, c := range candidates {
		if c.Version.String() != "1.1.0" {
			continue
		}
		found = true
		deps, err := repo.Dependencies(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !deps.IsKnown() {
			t.Fatalf("expected leftpad@1.1.0's dependencies to be known")
		}
		if _, ok := deps.Map[identifier.MustParseName("padutils")]; !ok {
			t.Fatalf("expected a dependency on padutils")
		}
	}
	if !found {
		t.Fatalf("expected to find leftpad@1.1.0 among the candidates")
	}
}

func TestRepositoryDependenciesUnknownForStaleCandidate(t *testing.T) {
	repo := NewRepository()
	repo.AddDocument(mustParseDoc(t, firstRepoYAML))

	stale := mustCandidateAt(t, repo, "leftpad", 99)
	deps, err := repo.Dependencies(stale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deps.IsKnown() {
		t.Fatalf("expected an out-of-range source ID to report Unknown dependencies")
	}
}

func mustCandidateAt(t *testing.T, repo *Repository, name string, sourceID uint64) resolve.Candidate {
	t.Helper()
	candidates := repo.Candidates(identifier.MustParseName(name))
	if len(candidates) == 0 {
		t.Fatalf("no candidates for %s", name)
	}
	c := candidates[0]
	c.SourceID = sourceID
	return c
}
