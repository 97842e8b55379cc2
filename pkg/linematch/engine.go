// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package linematch

import (
	"time"

	"github.com/logfocus/logfocus/pkg/filtermodel"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "linematch")

// FilterMatch is the highlight layer produced by one lit inclusion filter
type FilterMatch struct {
	FilterId string
	Color    string
	Lines    []int
}

// MatchResult is the output of one evaluation of a document against a rule set
type MatchResult struct {
	NumLines int

	// Matches has one entry per lit inclusion filter, in group then filter order
	Matches []FilterMatch

	// Counts holds per-filter counts: matched lines for lit inclusion filters,
	// excluded lines for enabled exclusion filters. Missing ids count zero.
	Counts map[string]int

	// Survivors are the original line indices that belong in the focus view
	Survivors []int

	// PassThrough is set when no inclusion filter was enabled and shown
	PassThrough bool

	Duration time.Duration
}

type evalFilter struct {
	filter   *filtermodel.Filter
	searcher Searcher
	matchIdx int
}

// Evaluate runs every filter of groups against lines. It does not modify the filters;
// use ApplyCounts to publish counts.
func Evaluate(lines []string, groups []*filtermodel.Group) *MatchResult {
	startTs := time.Now()
	result := &MatchResult{
		NumLines: len(lines),
		Counts:   make(map[string]int),
	}
	var lit, excluders []evalFilter
	numIncluders := 0
	for _, g := range groups {
		for _, f := range g.Filters {
			if f.IsLit() {
				lit = append(lit, evalFilter{filter: f, searcher: MakeFilterSearcher(f), matchIdx: len(result.Matches)})
				result.Matches = append(result.Matches, FilterMatch{FilterId: f.Id, Color: f.Color})
				if f.IncludesInFocus() {
					numIncluders++
				}
			}
			if f.ExcludesFromFocus() {
				excluders = append(excluders, evalFilter{filter: f, searcher: MakeFilterSearcher(f)})
			}
		}
	}
	result.PassThrough = numIncluders == 0

	for idx, text := range lines {
		obj := LineObject{LineNum: idx, Text: text}
		included := result.PassThrough
		for _, ef := range lit {
			if !ef.searcher.Match(obj) {
				continue
			}
			result.Counts[ef.filter.Id]++
			result.Matches[ef.matchIdx].Lines = append(result.Matches[ef.matchIdx].Lines, idx)
			if ef.filter.IsShown {
				included = true
			}
		}
		if !included {
			continue
		}
		excluded := false
		for _, ef := range excluders {
			if ef.searcher.Match(obj) {
				// every exclusion filter that would drop this line is credited
				result.Counts[ef.filter.Id]++
				excluded = true
			}
		}
		if !excluded {
			result.Survivors = append(result.Survivors, idx)
		}
	}
	result.Duration = time.Since(startTs)
	log.Debugf("[linematch] evaluated %d lines, %d survivors in %v", len(lines), len(result.Survivors), result.Duration)
	return result
}

// ApplyCounts publishes result counts onto the filters of groups. A nil result
// (no active document) zeroes every count.
func ApplyCounts(groups []*filtermodel.Group, result *MatchResult) {
	for _, g := range groups {
		for _, f := range g.Filters {
			if result == nil {
				f.MatchCount = 0
				continue
			}
			f.MatchCount = result.Counts[f.Id]
		}
	}
}
