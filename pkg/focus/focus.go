// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package focus derives views of a document from a match result: the focused
// document (a subsequence of lines behind a banner line), the highlight plans
// for original and focused documents, and folding ranges.
package focus

import (
	"github.com/logfocus/logfocus/pkg/filtermodel"
	"github.com/logfocus/logfocus/pkg/linematch"
)

// BannerLines is the number of synthetic lines at the top of a focused document
const BannerLines = 1

// Project builds the focused document: one blank banner line followed by the
// surviving lines in original order. Always fully recomputed.
func Project(lines []string, result *linematch.MatchResult) []string {
	rtn := make([]string, 0, len(result.Survivors)+BannerLines)
	rtn = append(rtn, "")
	for _, idx := range result.Survivors {
		rtn = append(rtn, lines[idx])
	}
	return rtn
}

// SourceLine maps a focused-document line back to its original line index.
// The banner line has no source.
func SourceLine(result *linematch.MatchResult, focusedIdx int) (int, bool) {
	idx := focusedIdx - BannerLines
	if idx < 0 || idx >= len(result.Survivors) {
		return 0, false
	}
	return result.Survivors[idx], true
}

// Layer is one filter's set of lines to paint in a single color
type Layer struct {
	FilterId string `json:"filterid"`
	Color    string `json:"color"`
	Lines    []int  `json:"lines"`
}

// Plan is the complete set of decorations for one document
type Plan struct {
	Layers []Layer `json:"layers"`

	// BannerLine is the line carrying the focus banner, -1 for none
	BannerLine int `json:"bannerline"`
}

// PlanOriginal plans highlights for an unfocused document: one layer per lit
// inclusion filter, regardless of its shown flag.
func PlanOriginal(result *linematch.MatchResult) Plan {
	plan := Plan{BannerLine: -1}
	for _, m := range result.Matches {
		plan.Layers = append(plan.Layers, Layer{FilterId: m.FilterId, Color: m.Color, Lines: m.Lines})
	}
	return plan
}

// PlanFocused plans highlights for a focused document. Only filters that include
// lines in focus mode take part, so highlighting matches what focus mode shows.
func PlanFocused(focusedLines []string, groups []*filtermodel.Group) Plan {
	plan := Plan{BannerLine: 0}
	for _, g := range groups {
		for _, f := range g.Filters {
			if !f.IncludesInFocus() {
				continue
			}
			searcher := linematch.MakeFilterSearcher(f)
			layer := Layer{FilterId: f.Id, Color: f.Color}
			for idx := BannerLines; idx < len(focusedLines); idx++ {
				if searcher.Match(linematch.LineObject{LineNum: idx, Text: focusedLines[idx]}) {
					layer.Lines = append(layer.Lines, idx)
				}
			}
			plan.Layers = append(plan.Layers, layer)
		}
	}
	return plan
}
