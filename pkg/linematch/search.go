// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package linematch

import (
	"github.com/logfocus/logfocus/pkg/filtermodel"
)

const (
	SearchTypeFilter = "filter"
	SearchTypeAll    = "all"
	SearchTypeOr     = "or"
	SearchTypeNot    = "not"
)

// LineObject is one document line handed to a searcher
type LineObject struct {
	LineNum int
	Text    string
}

// Searcher defines the interface for line matching strategies
type Searcher interface {
	// Match checks if a line matches the search criteria
	Match(line LineObject) bool

	// GetType returns the search type identifier
	GetType() string
}

// FilterSearcher tests a filter's pattern against the raw line text
type FilterSearcher struct {
	filter *filtermodel.Filter
}

func MakeFilterSearcher(filter *filtermodel.Filter) Searcher {
	return &FilterSearcher{filter: filter}
}

func (s *FilterSearcher) Match(line LineObject) bool {
	return s.filter.Pattern.MatchString(line.Text)
}

func (s *FilterSearcher) GetType() string {
	return SearchTypeFilter
}

// AllSearcher implements a searcher that matches everything
type AllSearcher struct{}

func MakeAllSearcher() Searcher {
	return &AllSearcher{}
}

func (s *AllSearcher) Match(line LineObject) bool {
	return true
}

func (s *AllSearcher) GetType() string {
	return SearchTypeAll
}

// OrSearcher matches if any contained searcher matches
type OrSearcher struct {
	searchers []Searcher
}

func MakeOrSearcher(searchers []Searcher) Searcher {
	return &OrSearcher{searchers: searchers}
}

func (s *OrSearcher) Match(line LineObject) bool {
	for _, searcher := range s.searchers {
		if searcher.Match(line) {
			return true
		}
	}
	return false
}

func (s *OrSearcher) GetType() string {
	return SearchTypeOr
}

// NotSearcher inverts the result of another searcher
type NotSearcher struct {
	searcher Searcher
}

func MakeNotSearcher(searcher Searcher) Searcher {
	return &NotSearcher{searcher: searcher}
}

func (s *NotSearcher) Match(line LineObject) bool {
	return !s.searcher.Match(line)
}

func (s *NotSearcher) GetType() string {
	return SearchTypeNot
}

// FocusSearcher matches lines that belong in the focus view: included by an enabled,
// shown inclusion filter (every line when there is none) and not removed by an
// enabled exclusion filter.
func FocusSearcher(groups []*filtermodel.Group) Searcher {
	var includers, excluders []Searcher
	for _, g := range groups {
		for _, f := range g.Filters {
			if f.IncludesInFocus() {
				includers = append(includers, MakeFilterSearcher(f))
			}
			if f.ExcludesFromFocus() {
				excluders = append(excluders, MakeFilterSearcher(f))
			}
		}
	}
	var include Searcher = MakeAllSearcher()
	if len(includers) > 0 {
		include = MakeOrSearcher(includers)
	}
	if len(excluders) == 0 {
		return include
	}
	return &andSearcher{searchers: []Searcher{include, MakeNotSearcher(MakeOrSearcher(excluders))}}
}

type andSearcher struct {
	searchers []Searcher
}

func (s *andSearcher) Match(line LineObject) bool {
	for _, searcher := range s.searchers {
		if !searcher.Match(line) {
			return false
		}
	}
	return true
}

func (s *andSearcher) GetType() string {
	return "and"
}

// MatchingLines returns the indices of lines matched by searcher, in order
func MatchingLines(lines []string, searcher Searcher) []int {
	var rtn []int
	for idx, text := range lines {
		if searcher.Match(LineObject{LineNum: idx, Text: text}) {
			rtn = append(rtn, idx)
		}
	}
	return rtn
}
