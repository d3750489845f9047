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

// assignmentKind distinguishes a decision (the solver picked a version) from
// a derivation (unit propagation forced a constraint).
type assignmentKind int

const (
	assignmentDecision assignmentKind = iota
	assignmentDerivation
)

// assignment is one entry in the partial solution: either a decision that
// pins name to version, or a derivation that narrows name's allowed set.
type assignment struct {
	name          Name
	term          Term
	kind          assignmentKind
	allowed       VersionSet
	version       *Version
	cause         *Incompatibility
	decisionLevel int
	index         int
}

func (a *assignment) isDecision() bool { return a.kind == assignmentDecision }
