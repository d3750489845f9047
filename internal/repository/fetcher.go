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
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// IndexFetcher retrieves and decodes one repository's index document. The
// wire protocol, retry policy, and caching layer are explicitly out of
// scope; these two implementations cover construction, not production
// hardening.
type IndexFetcher interface {
	Fetch() (*IndexDocument, error)
}

// FileFetcher reads an index document from the local filesystem, the
// file:// scheme in a repository URL.
type FileFetcher struct {
	Path string
}

func (f FileFetcher) Fetch() (*IndexDocument, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("repository: read %s: %w", f.Path, err)
	}
	return ParseIndexDocument(data)
}

// HTTPFetcher retrieves an index document over http(s). Client defaults to
// http.DefaultClient when nil.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// FetchError reports a non-2xx response from an HTTPFetcher.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("repository: fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (f HTTPFetcher) Fetch() (*IndexDocument, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(f.URL)
	if err != nil {
		return nil, fmt.Errorf("repository: fetch %s: %w", f.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: f.URL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("repository: read body from %s: %w", f.URL, err)
	}

	return ParseIndexDocument(data)
}

// UnsupportedSchemeError reports a repository URL whose scheme has no
// matching fetcher.
type UnsupportedSchemeError struct {
	Scheme string
}

func (e *UnsupportedSchemeError) Error() string {
	return "repository: unsupported URL scheme " + e.Scheme
}

// FetcherForURL picks an IndexFetcher by url's scheme: file:// for
// FileFetcher, http:// or https:// for HTTPFetcher.
func FetcherForURL(url string) (IndexFetcher, error) {
	switch {
	case strings.HasPrefix(url, "file://"):
		return FileFetcher{Path: strings.TrimPrefix(url, "file://")}, nil
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return HTTPFetcher{URL: url}, nil
	default:
		scheme := url
		if i := strings.Index(url, "://"); i >= 0 {
			scheme = url[:i]
		}
		return nil, &UnsupportedSchemeError{Scheme: scheme}
	}
}
