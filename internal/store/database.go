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
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/mqpkg/mqpkg/internal/identifier"
)

// NoTransactionError reports an operation attempted outside an open
// Transaction.
type NoTransactionError struct{}

func (NoTransactionError) Error() string { return "store: no open transaction" }

// LockError wraps a failure to acquire the database's cross-process lock.
type LockError struct{ Err error }

func (e *LockError) Error() string { return "store: acquire lock: " + e.Err.Error() }
func (e *LockError) Unwrap() error { return e.Err }

// Database is the package-request store rooted at a target directory. It
// has no in-memory state of its own outside an open Transaction; every read
// or write must happen inside one.
type Database struct {
	root  string
	lock  *flock.Flock
	state *State
}

// New opens the database rooted at root. The cross-process lock file lives
// outside root (in the OS temp directory) keyed by a stable hash of root's
// absolute path, so two processes pointed at the same target directory
// contend on the same lock even if root is given as a relative path in one
// and absolute in the other.
func New(root string) (*Database, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("store: resolve absolute path of %s: %w", root, err)
	}

	key, err := hashstructure.Hash(abs, hashstructure.FormatV2, nil)
	if err != nil {
		return nil, fmt.Errorf("store: hash root path: %w", err)
	}

	lockPath := filepath.Join(os.TempDir(), fmt.Sprintf("mqpkg.%x.lock", key))
	return &Database{root: abs, lock: flock.New(lockPath)}, nil
}

// Transaction is an open handle on the database's state, holding the
// cross-process lock until Commit or Rollback.
type Transaction struct {
	db *Database
}

// Begin acquires the database's named lock and loads state.yml, returning a
// Transaction. ctx bounds the lock-acquisition wait.
func (db *Database) Begin(ctx context.Context) (*Transaction, error) {
	locked, err := db.lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return nil, &LockError{Err: err}
	}
	if !locked {
		return nil, &LockError{Err: context.DeadlineExceeded}
	}

	state, err := loadState(db.root)
	if err != nil {
		db.lock.Unlock()
		return nil, err
	}
	db.state = state

	return &Transaction{db: db}, nil
}

// Add records a package specifier as requested, inside txn's transaction.
func (txn *Transaction) Add(spec identifier.Specifier) error {
	if txn.db.state == nil {
		return NoTransactionError{}
	}
	txn.db.state.Requested[spec.Name] = PackageRequest{Name: spec.Name, Requirement: spec.Requirement}
	return nil
}

// Remove drops a package from the requested set, inside txn's transaction.
func (txn *Transaction) Remove(name identifier.Name) error {
	if txn.db.state == nil {
		return NoTransactionError{}
	}
	delete(txn.db.state.Requested, name)
	return nil
}

// Commit persists the current state to state.yml and releases the lock,
// even if the write fails, so a failed commit never holds the lock. Either
// way the transaction is closed: a later Commit or Rollback on it returns
// NoTransactionError.
func (txn *Transaction) Commit() error {
	if txn.db.state == nil {
		return NoTransactionError{}
	}
	saveErr := saveState(txn.db.root, txn.db.state)
	txn.db.state = nil
	if unlockErr := txn.db.lock.Unlock(); unlockErr != nil && saveErr == nil {
		return unlockErr
	}
	return saveErr
}

// Rollback discards any changes made in txn and releases the lock without
// writing anything.
func (txn *Transaction) Rollback() error {
	if txn.db.state == nil {
		return NoTransactionError{}
	}
	txn.db.state = nil
	return txn.db.lock.Unlock()
}

// Requested returns a snapshot of the currently requested packages, usable
// only inside an open transaction, since state is lazily loaded on Begin.
func (db *Database) Requested() (map[identifier.Name]PackageRequest, error) {
	if db.state == nil {
		return nil, NoTransactionError{}
	}

	out := make(map[identifier.Name]PackageRequest, len(db.state.Requested))
	for k, v := range db.state.Requested {
		out[k] = v
	}
	return out, nil
}
