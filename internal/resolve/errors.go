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

package resolve

import "fmt"

// NoSolutionError is returned when the solver proves the requested packages
// cannot be satisfied together. Incompatibility is the root of the
// derivation tree; pass it to a Reporter for a human-readable explanation.
type NoSolutionError struct {
	Incompatibility *Incompatibility
	reporter        Reporter
}

// NewNoSolutionError wraps the terminal incompatibility of a failed solve.
func NewNoSolutionError(inc *Incompatibility) *NoSolutionError {
	return &NoSolutionError{Incompatibility: inc}
}

func (e *NoSolutionError) Error() string {
	return "no solution satisfies the requested packages: " + e.Incompatibility.String()
}

// WithReporter attaches a Reporter used to render the derivation tree.
func (e *NoSolutionError) WithReporter(r Reporter) *NoSolutionError {
	e.reporter = r
	return e
}

// Report renders the derivation tree via the attached reporter, falling
// back to DefaultReporter if none was set.
func (e *NoSolutionError) Report() string {
	r := e.reporter
	if r == nil {
		r = DefaultReporter{}
	}
	return r.Report(e.Incompatibility)
}

// DependencyOnTheEmptySetError reports a candidate that declared a
// dependency on a VersionSet admitting no versions at all.
type DependencyOnTheEmptySetError struct {
	Package   Name
	Dependent Name
}

func (e *DependencyOnTheEmptySetError) Error() string {
	return fmt.Sprintf("%s depends on %s, which has no versions satisfying the requirement", e.Dependent.Value(), e.Package.Value())
}

// SelfDependencyError reports a candidate that depends on itself.
type SelfDependencyError struct {
	Package Name
}

func (e *SelfDependencyError) Error() string {
	return fmt.Sprintf("%s depends on itself", e.Package.Value())
}

// SolverFailureError reports an internal solver invariant violation — a
// bug, not a user-facing unsatisfiability.
type SolverFailureError struct {
	Message string
}

func (e *SolverFailureError) Error() string {
	return "solver failure: " + e.Message
}

// ImpossibleError wraps a provider-returned error that the provider's
// contract promised would never occur.
type ImpossibleError struct {
	Err error
}

func (e *ImpossibleError) Error() string {
	return "impossible provider error: " + e.Err.Error()
}

func (e *ImpossibleError) Unwrap() error { return e.Err }

// IterationLimitError reports that the solver exceeded its configured step
// budget without reaching a conclusion.
type IterationLimitError struct {
	Steps int
}

func (e IterationLimitError) Error() string {
	return fmt.Sprintf("solver exceeded %d steps without converging", e.Steps)
}
