// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package focus

import (
	"github.com/logfocus/logfocus/pkg/filtermodel"
	"github.com/logfocus/logfocus/pkg/linematch"
)

// FoldRange is an inclusive line range a host can collapse
type FoldRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FoldingRanges folds everything between lines that belong in the focus view, so an
// editor can focus a document in place. Each range starts on a shown line (or 0) and
// runs up to the line before the next shown line; the last runs to the end.
func FoldingRanges(lines []string, groups []*filtermodel.Group) []FoldRange {
	shown := linematch.MatchingLines(lines, linematch.FocusSearcher(groups))
	var rtn []FoldRange
	lastShown := 0
	for _, idx := range shown {
		if idx-1 > lastShown {
			rtn = append(rtn, FoldRange{Start: lastShown, End: idx - 1})
		}
		lastShown = idx
	}
	if len(lines)-1 > lastShown {
		rtn = append(rtn, FoldRange{Start: lastShown, End: len(lines) - 1})
	}
	return rtn
}
