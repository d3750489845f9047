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

// Package progress is an optional, purely observational reporting hook
// passed into resolution. It has no effect on the resolved set and carries
// no cancellation of its own.
package progress

import "sync"

// Bundle holds the three optional callbacks a caller may install. A nil
// callback is simply skipped, so a zero-value Bundle is a no-op reporter.
type Bundle struct {
	mu     sync.Mutex
	start  func(id string, total uint64)
	update func(id string, delta uint64)
	finish func(id string)
}

// New returns an empty Bundle with no callbacks installed.
func New() *Bundle {
	return &Bundle{}
}

// OnStart installs the callback invoked when a Bar begins.
func (b *Bundle) OnStart(cb func(id string, total uint64)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.start = cb
}

// OnUpdate installs the callback invoked on every Bar advance.
func (b *Bundle) OnUpdate(cb func(id string, delta uint64)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.update = cb
}

// OnFinish installs the callback invoked when a Bar completes.
func (b *Bundle) OnFinish(cb func(id string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.finish = cb
}

func (b *Bundle) notifyStart(id string, total uint64) {
	b.mu.Lock()
	cb := b.start
	b.mu.Unlock()
	if cb != nil {
		cb(id, total)
	}
}

func (b *Bundle) notifyUpdate(id string, delta uint64) {
	b.mu.Lock()
	cb := b.update
	b.mu.Unlock()
	if cb != nil {
		cb(id, delta)
	}
}

func (b *Bundle) notifyFinish(id string) {
	b.mu.Lock()
	cb := b.finish
	b.mu.Unlock()
	if cb != nil {
		cb(id)
	}
}

// Bar is a single named unit of work tracked against a Bundle. Construct one
// with Bundle.Bar; the zero value has no bundle and discards every call.
type Bar struct {
	id     string
	bundle *Bundle
}

// Bar starts a new Bar named id with the given total, immediately notifying
// the bundle's start callback if one is installed. If b is nil, the
// returned Bar silently discards every call (matching a Resolve or fetch
// invoked without a progress bundle).
func (b *Bundle) Bar(id string, total uint64) *Bar {
	if b == nil {
		return &Bar{id: id}
	}
	b.notifyStart(id, total)
	return &Bar{id: id, bundle: b}
}

// Update reports delta additional units of progress.
func (bar *Bar) Update(delta uint64) {
	if bar.bundle == nil {
		return
	}
	bar.bundle.notifyUpdate(bar.id, delta)
}

// Finish reports that the bar's unit of work has completed.
func (bar *Bar) Finish() {
	if bar.bundle == nil {
		return
	}
	bar.bundle.notifyFinish(bar.id)
}
