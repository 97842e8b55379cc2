// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package utilfn

import (
	"strings"
)

// SplitLines splits document text into lines on '\n'. A trailing '\r' is part of the
// line terminator and is removed. An empty text is a document with one empty line,
// and a trailing newline yields a final empty line (editors count lines the same way).
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for idx, line := range lines {
		if strings.HasSuffix(line, "\r") {
			lines[idx] = line[:len(line)-1]
		}
	}
	return lines
}

// JoinLines is the inverse of SplitLines (modulo removed '\r')
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
