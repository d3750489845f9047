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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadParsesStringAndObjectRepositories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Filename)
	content := `
repositories:
  - file:///srv/repo-a
  - name: repo-b
    url: https://example.com/repo-b
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Repositories) != 2 {
		t.Fatalf("expected 2 repositories, got %d", len(cfg.Repositories))
	}

	first := cfg.Repositories[0]
	if first.Name != "file:///srv/repo-a" || first.URL != "file:///srv/repo-a" {
		t.Fatalf("expected bare-string shorthand to set both name and url, got %+v", first)
	}

	second := cfg.Repositories[1]
	if second.Name != "repo-b" || second.URL != "https://example.com/repo-b" {
		t.Fatalf("expected object form to set distinct name/url, got %+v", second)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
	var noConfig *NoConfigError
	if !asNoConfigError(err, &noConfig) {
		t.Fatalf("expected *NoConfigError, got %T", err)
	}
}

func asNoConfigError(err error, target **NoConfigError) bool {
	e, ok := err.(*NoConfigError)
	if ok {
		*target = e
	}
	return ok
}

func TestFindConfigDirAscendsParents(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, Filename), []byte("repositories: []\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	found, err := FindConfigDir(nested)
	if err != nil {
		t.Fatalf("FindConfigDir: %v", err)
	}

	wantAbs, _ := filepath.Abs(root)
	if found != wantAbs {
		t.Fatalf("expected %s, got %s", wantAbs, found)
	}
}

func TestFindConfigDirNotFound(t *testing.T) {
	dir := t.TempDir()
	if _, err := FindConfigDir(dir); err == nil {
		t.Fatalf("expected an error when no mqpkg.yml exists above dir")
	}
}
