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

// Package repository loads index documents (one per configured package
// source) and aggregates them into a resolve.DependencyProvider.
package repository

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mqpkg/mqpkg/internal/identifier"
	"github.com/mqpkg/mqpkg/internal/semver"
)

// Release is one package version's metadata as published by an index
// document: the set of dependencies it declares.
type Release struct {
	Dependencies map[identifier.Name]semver.VersionSet
}

// IndexDocument is one repository's full package listing, decoded and
// validated from its wire form.
type IndexDocument struct {
	Name     string
	Packages map[identifier.Name]map[semver.Version]Release
}

type rawRelease struct {
	Dependencies map[string]string `yaml:"dependencies"`
}

type rawIndexDocument struct {
	Meta struct {
		Name string `yaml:"name"`
	} `yaml:"meta"`
	Packages map[string]map[string]rawRelease `yaml:"packages"`
}

// DecodeError wraps a failure to parse or validate an index document.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "repository: decode index document: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// ParseIndexDocument decodes the YAML wire form of an index document, the
// format a file:// or http(s):// fetcher returns, validating every package
// name and version/requirement it contains.
func ParseIndexDocument(data []byte) (*IndexDocument, error) {
	var raw rawIndexDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Err: err}
	}

	doc := &IndexDocument{
		Name:     raw.Meta.Name,
		Packages: make(map[identifier.Name]map[semver.Version]Release, len(raw.Packages)),
	}

	for pkgName, versions := range raw.Packages {
		name, err := identifier.ParseName(pkgName)
		if err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("package %q: %w", pkgName, err)}
		}

		verMap := make(map[semver.Version]Release, len(versions))
		for verStr, rel := range versions {
			v, err := semver.Parse(verStr)
			if err != nil {
				return nil, &DecodeError{Err: fmt.Errorf("package %q version %q: %w", pkgName, verStr, err)}
			}

			deps := make(map[identifier.Name]semver.VersionSet, len(rel.Dependencies))
			for depName, reqStr := range rel.Dependencies {
				dn, err := identifier.ParseName(depName)
				if err != nil {
					return nil, &DecodeError{Err: fmt.Errorf("package %q version %q dependency %q: %w", pkgName, verStr, depName, err)}
				}
				req, err := semver.ParseVersionReq(reqStr)
				if err != nil {
					return nil, &DecodeError{Err: fmt.Errorf("package %q version %q dependency %q requirement %q: %w", pkgName, verStr, depName, reqStr, err)}
				}
				deps[dn] = req.ToVersionSet()
			}

			verMap[v] = Release{Dependencies: deps}
		}

		doc.Packages[name] = verMap
	}

	return doc, nil
}
