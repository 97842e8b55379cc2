// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package idgen

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestCounterGenerator(t *testing.T) {
	gen := NewCounter("f")
	for _, want := range []string{"f-1", "f-2", "f-3"} {
		if got := gen.NewId(); got != want {
			t.Errorf("NewId() = %q, want %q", got, want)
		}
	}
}

func TestCounterGeneratorConcurrent(t *testing.T) {
	gen := NewCounter("g")
	var wg sync.WaitGroup
	ids := make([]string, 64)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = gen.NewId()
		}(i)
	}
	wg.Wait()
	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
	if got := gen.NewId(); got != "g-65" {
		t.Errorf("NewId() after 64 = %q, want %q", got, "g-65")
	}
}

func TestUUIDGenerator(t *testing.T) {
	gen := UUID()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.NewId()
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("NewId() returned non-uuid %q: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
