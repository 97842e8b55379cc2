// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package namesearch

import (
	"testing"
)

func TestFind(t *testing.T) {
	names := []string{"backend", "frontend", "nginx-access", "Billing"}

	all := Find("", names)
	if len(all) != len(names) {
		t.Fatalf("empty query: got %d matches, want %d", len(all), len(names))
	}

	tests := []struct {
		query    string
		wantIdxs []int
	}{
		{"nginx", []int{2}},
		{"BILL", []int{3}},
		{"zzz", nil},
	}
	for _, tc := range tests {
		matches := Find(tc.query, names)
		var idxs []int
		for _, m := range matches {
			idxs = append(idxs, m.Index)
		}
		if len(idxs) != len(tc.wantIdxs) {
			t.Errorf("Find(%q) = %v, want %v", tc.query, idxs, tc.wantIdxs)
			continue
		}
		for i := range idxs {
			if idxs[i] != tc.wantIdxs[i] {
				t.Errorf("Find(%q) = %v, want %v", tc.query, idxs, tc.wantIdxs)
			}
		}
	}

	// both "backend" and "frontend" contain "end"
	matches := Find("end", names)
	if len(matches) < 2 {
		t.Fatalf("Find(end): expected at least 2 matches, got %v", matches)
	}
}

func TestResolve(t *testing.T) {
	names := []string{"default", "def", "prod"}
	m, ok := Resolve("DEF", names)
	if !ok || m.Index != 1 {
		t.Errorf("Resolve(DEF) = %v, %v; want exact match index 1", m, ok)
	}
	m, ok = Resolve("prd", names)
	if !ok || m.Name != "prod" {
		t.Errorf("Resolve(prd) = %v, %v; want prod", m, ok)
	}
	if _, ok := Resolve("xyz", names); ok {
		t.Errorf("Resolve(xyz) should not match")
	}
	if _, ok := Resolve("", names); ok {
		t.Errorf("Resolve(\"\") should not match")
	}
}
