// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package filtermodel

import (
	"errors"
	"fmt"
	"regexp"
)

var ErrInvalidPattern = errors.New("invalid pattern")

// Pattern is a compiled regular expression that remembers its source text.
// The zero Pattern matches every line (same as the empty regexp).
type Pattern struct {
	Source string
	regex  *regexp.Regexp
}

// CompilePattern compiles src with Go's regexp engine. Errors wrap ErrInvalidPattern.
func CompilePattern(src string) (Pattern, error) {
	regex, err := regexp.Compile(src)
	if err != nil {
		return Pattern{}, fmt.Errorf("%w %q: %v", ErrInvalidPattern, src, err)
	}
	return Pattern{Source: src, regex: regex}, nil
}

func MustCompilePattern(src string) Pattern {
	p, err := CompilePattern(src)
	if err != nil {
		panic(err)
	}
	return p
}

// MatchString tests the pattern against a single line of text
func (p Pattern) MatchString(line string) bool {
	if p.regex == nil {
		return true
	}
	return p.regex.MatchString(line)
}

func (p Pattern) String() string {
	return "/" + p.Source + "/"
}
