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

import (
	"fmt"
	"strings"
)

// Reporter renders a derivation tree (the chain of incompatibilities that
// together prove no solution exists) into a human-readable explanation.
type Reporter interface {
	Report(root *Incompatibility) string
}

// DefaultReporter renders the tree as nested indented lines.
type DefaultReporter struct{}

func (DefaultReporter) Report(root *Incompatibility) string {
	var b strings.Builder
	visited := make(map[*Incompatibility]bool)
	reportIncompatibility(&b, root, 0, visited)
	return b.String()
}

func reportIncompatibility(b *strings.Builder, inc *Incompatibility, depth int, visited map[*Incompatibility]bool) {
	if inc == nil || visited[inc] {
		return
	}
	visited[inc] = true

	fmt.Fprintf(b, "%s%s\n", strings.Repeat("  ", depth), inc.String())
	if inc.Cause1 != nil {
		reportIncompatibility(b, inc.Cause1, depth+1, visited)
	}
	if inc.Cause2 != nil {
		reportIncompatibility(b, inc.Cause2, depth+1, visited)
	}
}

// CollapsedReporter renders the tree as a flat "X. And because Y, Z."
// chain, closer to the prose style pub/cargo print on resolution failure.
type CollapsedReporter struct{}

func (CollapsedReporter) Report(root *Incompatibility) string {
	var lines []string
	visited := make(map[*Incompatibility]bool)
	collectLines(root, &lines, visited)

	var b strings.Builder
	for i, line := range lines {
		if i == 0 {
			b.WriteString(line)
		} else {
			b.WriteString(" And because ")
			b.WriteString(line)
		}
		b.WriteString(".\n")
	}
	return b.String()
}

func collectLines(inc *Incompatibility, lines *[]string, visited map[*Incompatibility]bool) {
	if inc == nil || visited[inc] {
		return
	}
	visited[inc] = true

	if inc.Cause1 != nil {
		collectLines(inc.Cause1, lines, visited)
	}
	if inc.Cause2 != nil {
		collectLines(inc.Cause2, lines, visited)
	}
	*lines = append(*lines, inc.String())
}
