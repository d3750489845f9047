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
	"sort"

	"github.com/mqpkg/mqpkg/internal/identifier"
	"github.com/mqpkg/mqpkg/internal/resolve"
)

// Repository is the in-memory aggregate of every loaded index document, in
// the order the caller declared them. Declaration order is precedence order:
// Candidate.Compare sorts an earlier-declared repository's candidate ahead
// of a later one at an equal version.
type Repository struct {
	documents []*IndexDocument
}

// NewRepository returns an empty repository aggregate.
func NewRepository() *Repository {
	return &Repository{}
}

// AddDocument appends doc as the next-lowest-precedence source and returns
// its assigned source ID (1-based; 0 is reserved for the synthetic root,
// see resolve.RootSourceID).
func (r *Repository) AddDocument(doc *IndexDocument) uint64 {
	r.documents = append(r.documents, doc)
	return uint64(len(r.documents))
}

// Load fetches and appends one document per fetcher, in order.
func (r *Repository) Load(fetchers ...IndexFetcher) error {
	for _, f := range fetchers {
		doc, err := f.Fetch()
		if err != nil {
			return err
		}
		r.AddDocument(doc)
	}
	return nil
}

// Candidates returns every candidate for name across all loaded documents,
// sorted newest-version-first with source precedence as the tiebreak,
// matching Candidate.Compare's total order.
func (r *Repository) Candidates(name identifier.Name) []resolve.Candidate {
	var out []resolve.Candidate

	for i, doc := range r.documents {
		sourceID := uint64(i + 1)
		versions, ok := doc.Packages[name]
		if !ok {
			continue
		}
		for v, rel := range versions {
			out = append(out, resolve.Candidate{
				Name:         name,
				Version:      v,
				SourceID:     sourceID,
				Dependencies: resolve.Known(rel.Dependencies),
			})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[j].Less(out[i]) })
	return out
}

// Dependencies returns c's declared dependency map, or Unknown if c does not
// correspond to any loaded document (stale candidate, or the synthetic
// root, which carries its own dependency map instead).
func (r *Repository) Dependencies(c resolve.Candidate) (resolve.Dependencies, error) {
	if c.SourceID == resolve.RootSourceID || c.SourceID > uint64(len(r.documents)) {
		return resolve.Unknown(), nil
	}

	doc := r.documents[c.SourceID-1]
	versions, ok := doc.Packages[c.Name]
	if !ok {
		return resolve.Unknown(), nil
	}
	rel, ok := versions[c.Version]
	if !ok {
		return resolve.Unknown(), nil
	}
	return resolve.Known(rel.Dependencies), nil
}

// CancelFunc is polled by Provider.ShouldCancel; a non-nil return unwinds
// the solve in progress.
type CancelFunc func() error

// Provider adapts a Repository into a resolve.DependencyProvider.
type Provider struct {
	repo   *Repository
	cancel CancelFunc
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithCancelFunc attaches a cooperative-cancellation hook, checked on every
// solver step.
func WithCancelFunc(fn CancelFunc) ProviderOption {
	return func(p *Provider) { p.cancel = fn }
}

// NewProvider wraps repo for use as a resolve.DependencyProvider.
func NewProvider(repo *Repository, opts ...ProviderOption) *Provider {
	p := &Provider{repo: repo}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) ShouldCancel() error {
	if p.cancel == nil {
		return nil
	}
	return p.cancel()
}

func (p *Provider) ListCandidates(name identifier.Name) ([]resolve.Candidate, error) {
	return p.repo.Candidates(name), nil
}

func (p *Provider) GetDependencies(c resolve.Candidate) (resolve.Dependencies, error) {
	return p.repo.Dependencies(c)
}

var _ resolve.DependencyProvider = (*Provider)(nil)
