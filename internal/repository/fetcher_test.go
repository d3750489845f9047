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
	"os"
	"path/filepath"
	"testing"
)

func TestFetcherForURLPicksFileFetcher(t *testing.T) {
	f, err := FetcherForURL("file:///srv/repo/index.yml")
	if err != nil {
		t.Fatalf("FetcherForURL: %v", err)
	}
	ff, ok := f.(FileFetcher)
	if !ok || ff.Path != "/srv/repo/index.yml" {
		t.Fatalf("expected a FileFetcher with path /srv/repo/index.yml, got %#v", f)
	}
}

func TestFetcherForURLPicksHTTPFetcher(t *testing.T) {
	f, err := FetcherForURL("https://example.com/index.yml")
	if err != nil {
		t.Fatalf("FetcherForURL: %v", err)
	}
	hf, ok := f.(HTTPFetcher)
	if !ok || hf.URL != "https://example.com/index.yml" {
		t.Fatalf("expected an HTTPFetcher, got %#v", f)
	}
}

func TestFetcherForURLRejectsUnsupportedScheme(t *testing.T) {
	_, err := FetcherForURL("ftp://example.com/index.yml")
	var unsupported *UnsupportedSchemeError
	if !asUnsupportedSchemeError(err, &unsupported) || unsupported.Scheme != "ftp" {
		t.Fatalf("expected *UnsupportedSchemeError{Scheme: ftp}, got %v", err)
	}
}

func asUnsupportedSchemeError(err error, target **UnsupportedSchemeError) bool {
	e, ok := err.(*UnsupportedSchemeError)
	if ok {
		*target = e
	}
	return ok
}

func TestFileFetcherFetchReadsAndParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.yml")
	if err := os.WriteFile(path, []byte(firstRepoYAML), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := FetcherForURL("file://" + path)
	if err != nil {
		t.Fatalf("FetcherForURL: %v", err)
	}
	doc, err := f.Fetch()
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(doc.Packages) == 0 {
		t.Fatalf("expected at least one package, got none")
	}
}
