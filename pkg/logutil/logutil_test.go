// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package logutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLogfOnce(t *testing.T) {
	var buf bytes.Buffer
	oldOut := logrus.StandardLogger().Out
	logrus.SetOutput(&buf)
	defer logrus.SetOutput(oldOut)

	LogfOnce("test-key-once", "hello %d", 1)
	LogfOnce("test-key-once", "hello %d", 2)
	LogfOnce("test-key-other", "other")

	out := buf.String()
	if strings.Count(out, "hello") != 1 {
		t.Errorf("expected one 'hello' line, got output:\n%s", out)
	}
	if !strings.Contains(out, "other") {
		t.Errorf("expected 'other' to be logged, got output:\n%s", out)
	}
}

func TestInitLoggingLevel(t *testing.T) {
	oldLevel := logrus.GetLevel()
	defer logrus.SetLevel(oldLevel)

	tests := []struct {
		level    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"not-a-level", logrus.InfoLevel},
	}
	for _, tc := range tests {
		InitLogging(tc.level, false)
		if logrus.GetLevel() != tc.expected {
			t.Errorf("InitLogging(%q): level = %v, want %v", tc.level, logrus.GetLevel(), tc.expected)
		}
	}
}
