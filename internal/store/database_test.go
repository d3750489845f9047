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

package store

import (
	"context"
	"testing"

	"github.com/mqpkg/mqpkg/internal/identifier"
)

func TestDatabaseAddCommitRoundTrip(t *testing.T) {
	root := t.TempDir()

	db, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	txn, err := db.Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	spec, err := identifier.ParseSpecifier("leftpad>=1.0.0")
	if err != nil {
		t.Fatalf("ParseSpecifier: %v", err)
	}
	if err := txn.Add(spec); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := txn.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	// A fresh database instance rooted at the same directory must see the
	// persisted request.
	db2, err := New(root)
	if err != nil {
		t.Fatalf("New (second): %v", err)
	}
	txn2, err := db2.Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin (second): %v", err)
	}
	defer txn2.Rollback()

	requested, err := db2.Requested()
	if err != nil {
		t.Fatalf("Requested: %v", err)
	}
	if _, ok := requested[identifier.MustParseName("leftpad")]; !ok {
		t.Fatalf("expected leftpad to be persisted across database instances")
	}
}

func TestDatabaseRequestedRequiresTransaction(t *testing.T) {
	root := t.TempDir()
	db, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := db.Requested(); err == nil {
		t.Fatalf("expected Requested to fail outside a transaction")
	}
}

func TestDatabaseRollbackDiscardsChanges(t *testing.T) {
	root := t.TempDir()
	db, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	txn, err := db.Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	spec, _ := identifier.ParseSpecifier("leftpad")
	if err := txn.Add(spec); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := txn.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	txn2, err := db.Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin (second): %v", err)
	}
	defer txn2.Rollback()

	requested, err := db.Requested()
	if err != nil {
		t.Fatalf("Requested: %v", err)
	}
	if len(requested) != 0 {
		t.Fatalf("expected rollback to discard the added request, got %d entries", len(requested))
	}
}
