// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package focus

import (
	"net/url"
	"strings"

	"github.com/logfocus/logfocus/pkg/base"
)

const focusPrefix = base.FocusScheme + ":"

// EncodeURI addresses the focused view of the document at origURI
func EncodeURI(origURI string) string {
	return focusPrefix + url.PathEscape(origURI)
}

func IsFocusURI(uri string) bool {
	return strings.HasPrefix(uri, focusPrefix)
}

// DecodeURI recovers the original document location from a focus URI
func DecodeURI(focusURI string) (string, bool) {
	if !IsFocusURI(focusURI) {
		return "", false
	}
	orig, err := url.PathUnescape(focusURI[len(focusPrefix):])
	if err != nil {
		return "", false
	}
	return orig, true
}
