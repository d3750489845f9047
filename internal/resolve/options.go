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

import "log/slog"

// SolverOptions configures a Solve call.
type SolverOptions struct {
	TrackIncompatibilities bool
	MaxSteps               int
	Logger                 *slog.Logger
}

// SolverOption mutates SolverOptions.
type SolverOption func(*SolverOptions)

const defaultMaxSteps = 100000

func defaultSolverOptions() SolverOptions {
	return SolverOptions{MaxSteps: defaultMaxSteps}
}

// WithIncompatibilityTracking toggles whether learned incompatibilities are
// retained after Solve returns (useful for diagnostics; costs memory on
// large resolutions).
func WithIncompatibilityTracking(enabled bool) SolverOption {
	return func(o *SolverOptions) { o.TrackIncompatibilities = enabled }
}

// WithMaxSteps bounds the number of solver iterations before giving up with
// IterationLimitError. Zero or negative disables the bound.
func WithMaxSteps(steps int) SolverOption {
	return func(o *SolverOptions) { o.MaxSteps = steps }
}

// WithLogger attaches a structured logger for solver tracing.
func WithLogger(logger *slog.Logger) SolverOption {
	return func(o *SolverOptions) { o.Logger = logger }
}
