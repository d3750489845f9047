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

// Package main implements the mqp CLI: a thin wrapper around the mqpkg
// resolver, the package-request store, and repository configuration.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	app := &cli.App{
		Name:        "mqp",
		Usage:       "resolve and track package requirements",
		Description: "mqp resolves a set of requested package specifiers against configured repositories",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				level.Set(slog.LevelDebug)
			}
			return nil
		},
		Commands: []*cli.Command{
			newAddCommand(logger),
			newResolveCommand(logger),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		reportAndExit(err)
	}
}

// reportAndExit prints err's full cause chain to stderr and exits non-zero.
// A *derivationError prints its precomputed human-readable derivation
// instead of the generic %+v chain, distinguishing an unsatisfiable-request
// failure from a configuration/I/O error.
func reportAndExit(err error) {
	var derr *derivationError
	if errors.As(err, &derr) {
		fmt.Fprintln(os.Stderr, derr.derivation)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%+v\n", err)
	os.Exit(1)
}

// derivationError carries a pre-rendered PubGrub derivation tree alongside
// the underlying *resolve.NoSolutionError, so reportAndExit can choose the
// humanised rendering over a generic error chain dump.
type derivationError struct {
	cause      error
	derivation string
}

func (e *derivationError) Error() string { return e.cause.Error() }
func (e *derivationError) Unwrap() error { return e.cause }
