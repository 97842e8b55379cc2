// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package namesearch fuzzy-matches project and group names typed on the command line.
package namesearch

import (
	"sort"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

var initOnce sync.Once

type Match struct {
	Index int
	Name  string
	Score int
}

// Searcher fuzzy-matches names against a single query. Not safe for concurrent use.
type Searcher struct {
	pattern []rune
	slab    *util.Slab
}

func MakeSearcher(query string) *Searcher {
	initOnce.Do(func() {
		algo.Init("default")
	})
	return &Searcher{
		pattern: []rune(strings.ToLower(query)),
		slab:    util.MakeSlab(64, 4096),
	}
}

// Score returns the fzf score of name, 0 for no match
func (s *Searcher) Score(name string) int {
	if len(s.pattern) == 0 {
		return 0
	}
	chars := util.ToChars([]byte(strings.ToLower(name)))
	result, _ := algo.FuzzyMatchV2(false, true, true, &chars, s.pattern, false, s.slab)
	return result.Score
}

// Find returns the names matching query, best first (ties keep input order).
// An empty query matches every name.
func Find(query string, names []string) []Match {
	var rtn []Match
	if strings.TrimSpace(query) == "" {
		for idx, name := range names {
			rtn = append(rtn, Match{Index: idx, Name: name})
		}
		return rtn
	}
	searcher := MakeSearcher(query)
	for idx, name := range names {
		score := searcher.Score(name)
		if score > 0 {
			rtn = append(rtn, Match{Index: idx, Name: name, Score: score})
		}
	}
	sort.SliceStable(rtn, func(i, j int) bool {
		return rtn[i].Score > rtn[j].Score
	})
	return rtn
}

// Resolve picks a single name: an exact (case-insensitive) match wins, otherwise the best
// fuzzy match. ok is false when nothing matches.
func Resolve(query string, names []string) (Match, bool) {
	for idx, name := range names {
		if strings.EqualFold(name, query) {
			return Match{Index: idx, Name: name}, true
		}
	}
	matches := Find(query, names)
	if len(matches) == 0 || strings.TrimSpace(query) == "" {
		return Match{}, false
	}
	return matches[0], true
}
