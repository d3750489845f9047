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

// Package config loads mqpkg.yml: the list of configured package
// repositories, and the ascend-parents discovery of where that file lives.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Filename is the configuration file's standard name.
const Filename = "mqpkg.yml"

// Repository is one configured package source. It accepts either the plain
// string shorthand (the string is used as both name and URL) or the object
// form with distinct name/url fields.
type Repository struct {
	Name string
	URL  string
}

// UnmarshalYAML implements a "string, else object" pick-first decode: try a
// bare string first, and only fall back to the structured form if that
// fails.
func (r *Repository) UnmarshalYAML(value *yaml.Node) error {
	var asString string
	if err := value.Decode(&asString); err == nil {
		r.Name = asString
		r.URL = asString
		return nil
	}

	var asObject struct {
		Name string `yaml:"name"`
		URL  string `yaml:"url"`
	}
	if err := value.Decode(&asObject); err != nil {
		return &InvalidRepositoryError{Err: err}
	}
	r.Name = asObject.Name
	r.URL = asObject.URL
	return nil
}

// Config is the decoded content of mqpkg.yml.
type Config struct {
	Repositories []Repository `yaml:"repositories"`
}

// NoConfigError reports that mqpkg.yml could not be read.
type NoConfigError struct {
	Path string
	Err  error
}

func (e *NoConfigError) Error() string { return "config: read " + e.Path + ": " + e.Err.Error() }
func (e *NoConfigError) Unwrap() error { return e.Err }

// InvalidConfigError reports that mqpkg.yml could not be decoded.
type InvalidConfigError struct {
	Path string
	Err  error
}

func (e *InvalidConfigError) Error() string { return "config: parse " + e.Path + ": " + e.Err.Error() }
func (e *InvalidConfigError) Unwrap() error { return e.Err }

// InvalidRepositoryError reports a repositories entry that is neither a
// bare string nor a {name, url} object.
type InvalidRepositoryError struct{ Err error }

func (e *InvalidRepositoryError) Error() string {
	return "config: invalid repository entry: " + e.Err.Error()
}
func (e *InvalidRepositoryError) Unwrap() error { return e.Err }

// Load reads and decodes the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &NoConfigError{Path: path, Err: err}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &InvalidConfigError{Path: path, Err: err}
	}
	return &cfg, nil
}

// NoTargetDirectoryFoundError reports that FindConfigDir walked up to the
// filesystem root without finding mqpkg.yml.
type NoTargetDirectoryFoundError struct{}

func (NoTargetDirectoryFoundError) Error() string {
	return "config: no " + Filename + " found in any parent directory"
}

// FindConfigDir ascends from start, looking for a directory containing
// mqpkg.yml, and returns that directory's path.
func FindConfigDir(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, Filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", NoTargetDirectoryFoundError{}
		}
		dir = parent
	}
}
