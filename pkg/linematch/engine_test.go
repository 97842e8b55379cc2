// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package linematch

import (
	"reflect"
	"testing"

	"github.com/logfocus/logfocus/pkg/filtermodel"
)

func makeFilter(id, pattern string, highlighted, shown, exclude bool) *filtermodel.Filter {
	return &filtermodel.Filter{
		Id:            id,
		Pattern:       filtermodel.MustCompilePattern(pattern),
		Color:         "#" + id,
		IsHighlighted: highlighted,
		IsShown:       shown,
		IsExclude:     exclude,
	}
}

func oneGroup(filters ...*filtermodel.Filter) []*filtermodel.Group {
	return []*filtermodel.Group{{Id: "g", Name: "g", IsHighlighted: true, IsShown: true, Filters: filters}}
}

var fooBarDoc = []string{"foo", "bar", "foobar"}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name          string
		lines         []string
		filters       []*filtermodel.Filter
		wantSurvivors []int
		wantCounts    map[string]int
		wantPass      bool
	}{
		{
			name:          "no filters passes everything",
			lines:         fooBarDoc,
			wantSurvivors: []int{0, 1, 2},
			wantCounts:    map[string]int{},
			wantPass:      true,
		},
		{
			name:          "single inclusion filter",
			lines:         fooBarDoc,
			filters:       []*filtermodel.Filter{makeFilter("i", "foo", true, true, false)},
			wantSurvivors: []int{0, 2},
			wantCounts:    map[string]int{"i": 2},
		},
		{
			name:    "exclusion counts only excluded survivors",
			lines:   fooBarDoc,
			filters: []*filtermodel.Filter{makeFilter("i", "foo", true, true, false), makeFilter("e", "bar", true, true, true)},
			// line 1 "bar" was never included so it is not counted for e
			wantSurvivors: []int{0},
			wantCounts:    map[string]int{"i": 2, "e": 1},
		},
		{
			name:          "exclusion with pass-through",
			lines:         fooBarDoc,
			filters:       []*filtermodel.Filter{makeFilter("e", "bar", true, true, true)},
			wantSurvivors: []int{0},
			wantCounts:    map[string]int{"e": 2},
			wantPass:      true,
		},
		{
			name:          "exclusion ignores highlight flag",
			lines:         fooBarDoc,
			filters:       []*filtermodel.Filter{makeFilter("e", "bar", false, true, true)},
			wantSurvivors: []int{0},
			wantCounts:    map[string]int{"e": 2},
			wantPass:      true,
		},
		{
			name:          "hidden exclusion does nothing",
			lines:         fooBarDoc,
			filters:       []*filtermodel.Filter{makeFilter("e", "bar", true, false, true)},
			wantSurvivors: []int{0, 1, 2},
			wantCounts:    map[string]int{},
			wantPass:      true,
		},
		{
			name:          "unlit inclusion contributes nothing even when shown",
			lines:         fooBarDoc,
			filters:       []*filtermodel.Filter{makeFilter("i", "foo", false, true, false)},
			wantSurvivors: []int{0, 1, 2},
			wantCounts:    map[string]int{},
			wantPass:      true,
		},
		{
			name:          "lit but hidden inclusion counts without including",
			lines:         fooBarDoc,
			filters:       []*filtermodel.Filter{makeFilter("i", "foo", true, false, false), makeFilter("j", "^bar$", true, true, false)},
			wantSurvivors: []int{1},
			wantCounts:    map[string]int{"i": 2, "j": 1},
		},
		{
			name:          "empty pattern matches every line",
			lines:         []string{"a", "", "c"},
			filters:       []*filtermodel.Filter{makeFilter("i", "", true, true, false)},
			wantSurvivors: []int{0, 1, 2},
			wantCounts:    map[string]int{"i": 3},
		},
		{
			name:          "overlapping inclusion filters both count",
			lines:         fooBarDoc,
			filters:       []*filtermodel.Filter{makeFilter("a", "foo", true, true, false), makeFilter("b", "bar", true, true, false)},
			wantSurvivors: []int{0, 1, 2},
			wantCounts:    map[string]int{"a": 2, "b": 2},
		},
		{
			name:          "two exclusion filters on one line are both credited",
			lines:         fooBarDoc,
			filters:       []*filtermodel.Filter{makeFilter("e1", "foo", true, true, true), makeFilter("e2", "bar", true, true, true)},
			wantSurvivors: nil,
			wantCounts:    map[string]int{"e1": 2, "e2": 2},
			wantPass:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.lines, oneGroup(tt.filters...))
			if !reflect.DeepEqual(result.Survivors, tt.wantSurvivors) {
				t.Errorf("Survivors = %v, want %v", result.Survivors, tt.wantSurvivors)
			}
			if !reflect.DeepEqual(result.Counts, tt.wantCounts) {
				t.Errorf("Counts = %v, want %v", result.Counts, tt.wantCounts)
			}
			if result.PassThrough != tt.wantPass {
				t.Errorf("PassThrough = %v, want %v", result.PassThrough, tt.wantPass)
			}
			if result.NumLines != len(tt.lines) {
				t.Errorf("NumLines = %d, want %d", result.NumLines, len(tt.lines))
			}
		})
	}
}

func TestEvaluateMatchLayers(t *testing.T) {
	a := makeFilter("a", "foo", true, false, false)
	b := makeFilter("b", "bar", true, true, false)
	off := makeFilter("off", "o", false, true, false)
	ex := makeFilter("ex", "foobar", true, true, true)
	groups := []*filtermodel.Group{
		{Id: "g1", Filters: []*filtermodel.Filter{a, off}},
		{Id: "g2", Filters: []*filtermodel.Filter{ex, b}},
	}
	result := Evaluate(fooBarDoc, groups)
	want := []FilterMatch{
		{FilterId: "a", Color: "#a", Lines: []int{0, 2}},
		{FilterId: "b", Color: "#b", Lines: []int{1, 2}},
	}
	if !reflect.DeepEqual(result.Matches, want) {
		t.Errorf("Matches = %+v, want %+v", result.Matches, want)
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	groups := oneGroup(makeFilter("i", "foo", true, true, false), makeFilter("e", "bar", true, true, true))
	first := Evaluate(fooBarDoc, groups)
	second := Evaluate(fooBarDoc, groups)
	if !reflect.DeepEqual(first.Survivors, second.Survivors) || !reflect.DeepEqual(first.Counts, second.Counts) {
		t.Errorf("evaluations differ: %+v vs %+v", first, second)
	}
}

func TestApplyCounts(t *testing.T) {
	i := makeFilter("i", "foo", true, true, false)
	e := makeFilter("e", "bar", true, true, true)
	off := makeFilter("off", "foo", false, true, false)
	off.MatchCount = 7
	groups := oneGroup(i, e, off)

	ApplyCounts(groups, Evaluate(fooBarDoc, groups))
	if i.MatchCount != 2 || e.MatchCount != 1 || off.MatchCount != 0 {
		t.Errorf("counts = %d/%d/%d, want 2/1/0", i.MatchCount, e.MatchCount, off.MatchCount)
	}

	ApplyCounts(groups, nil)
	if i.MatchCount != 0 || e.MatchCount != 0 {
		t.Errorf("nil result should zero counts, got %d/%d", i.MatchCount, e.MatchCount)
	}
}

func TestFocusSearcher(t *testing.T) {
	groups := oneGroup(makeFilter("i", "foo", true, true, false), makeFilter("e", "bar", true, true, true))
	got := MatchingLines(fooBarDoc, FocusSearcher(groups))
	if !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("MatchingLines() = %v, want [0]", got)
	}
	got = MatchingLines(fooBarDoc, FocusSearcher(nil))
	if !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("MatchingLines() with no filters = %v", got)
	}
}
