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

package progress

import "testing"

func TestBarNotifiesInstalledCallbacks(t *testing.T) {
	var started, updated, finished []string
	var totalSeen uint64
	var deltaSeen uint64

	b := New()
	b.OnStart(func(id string, total uint64) {
		started = append(started, id)
		totalSeen = total
	})
	b.OnUpdate(func(id string, delta uint64) {
		updated = append(updated, id)
		deltaSeen += delta
	})
	b.OnFinish(func(id string) {
		finished = append(finished, id)
	})

	bar := b.Bar("leftpad", 3)
	bar.Update(1)
	bar.Update(2)
	bar.Finish()

	if len(started) != 1 || started[0] != "leftpad" || totalSeen != 3 {
		t.Fatalf("expected a single start(leftpad, 3), got %v total=%d", started, totalSeen)
	}
	if len(updated) != 2 || deltaSeen != 3 {
		t.Fatalf("expected two updates summing to 3, got %v sum=%d", updated, deltaSeen)
	}
	if len(finished) != 1 || finished[0] != "leftpad" {
		t.Fatalf("expected a single finish(leftpad), got %v", finished)
	}
}

func TestBarWithoutCallbacksIsNoOp(t *testing.T) {
	b := New()
	bar := b.Bar("leftpad", 10)
	bar.Update(5)
	bar.Finish()
}

func TestNilBundleProducesNoOpBar(t *testing.T) {
	var b *Bundle
	bar := b.Bar("leftpad", 10)
	bar.Update(5)
	bar.Finish()
}

func TestBundleZeroValueIsUsable(t *testing.T) {
	var b Bundle
	bar := b.Bar("leftpad", 1)
	bar.Update(1)
	bar.Finish()
}
