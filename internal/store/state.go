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

// Package store implements the transactional, file-locked package-request
// database: state.yml under a target directory's pkgdb/ subdirectory,
// guarded by a named cross-process lock.
package store

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mqpkg/mqpkg/internal/identifier"
	"github.com/mqpkg/mqpkg/internal/semver"
)

const (
	pkgdbDirName  = "pkgdb"
	stateFileName = "state.yml"
)

// PackageRequest is one user-recorded "I want this package" entry.
type PackageRequest struct {
	Name        identifier.Name
	Requirement semver.VersionReq
}

type rawPackageRequest struct {
	Name        string `yaml:"name"`
	Requirement string `yaml:"version"`
}

type rawState struct {
	Requested map[string]rawPackageRequest `yaml:"requested"`
}

// State is the full persisted content of state.yml: every package the user
// has explicitly requested.
type State struct {
	Requested map[identifier.Name]PackageRequest
}

func newEmptyState() *State {
	return &State{Requested: make(map[identifier.Name]PackageRequest)}
}

func pkgdbPath(root string) string { return filepath.Join(root, pkgdbDirName) }
func statePath(root string) string { return filepath.Join(pkgdbPath(root), stateFileName) }

// LoadStateError wraps a failure to read or decode state.yml.
type LoadStateError struct{ Err error }

func (e *LoadStateError) Error() string { return "store: load state: " + e.Err.Error() }
func (e *LoadStateError) Unwrap() error { return e.Err }

// SaveStateError wraps a failure to encode or write state.yml.
type SaveStateError struct{ Err error }

func (e *SaveStateError) Error() string { return "store: save state: " + e.Err.Error() }
func (e *SaveStateError) Unwrap() error { return e.Err }

// loadState reads state.yml beneath root, returning an empty State if the
// file does not exist yet (a fresh target directory has no requests).
func loadState(root string) (*State, error) {
	data, err := os.ReadFile(statePath(root))
	if os.IsNotExist(err) {
		return newEmptyState(), nil
	}
	if err != nil {
		return nil, &LoadStateError{Err: err}
	}

	var raw rawState
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadStateError{Err: err}
	}

	state := newEmptyState()
	for _, r := range raw.Requested {
		name, err := identifier.ParseName(r.Name)
		if err != nil {
			return nil, &LoadStateError{Err: err}
		}
		req, err := semver.ParseVersionReq(r.Requirement)
		if err != nil {
			return nil, &LoadStateError{Err: err}
		}
		state.Requested[name] = PackageRequest{Name: name, Requirement: req}
	}
	return state, nil
}

// saveState atomically writes state to state.yml beneath root, creating
// pkgdb/ if it does not already exist.
func saveState(root string, state *State) error {
	if err := os.MkdirAll(pkgdbPath(root), 0o755); err != nil {
		return &SaveStateError{Err: err}
	}

	raw := rawState{Requested: make(map[string]rawPackageRequest, len(state.Requested))}
	for _, r := range state.Requested {
		raw.Requested[r.Name.Value()] = rawPackageRequest{
			Name:        r.Name.Value(),
			Requirement: r.Requirement.String(),
		}
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return &SaveStateError{Err: err}
	}

	if err := writeFileAtomic(statePath(root), data, 0o644); err != nil {
		return &SaveStateError{Err: err}
	}
	return nil
}
