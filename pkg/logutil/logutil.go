// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package logutil configures logrus and provides logging helpers.
package logutil

import (
	"os"

	"github.com/logfocus/logfocus/pkg/utilds"
	"github.com/sirupsen/logrus"
)

// loggedKeys tracks which keys have already been logged
var loggedKeys = utilds.MakeSyncMap[string, struct{}]()

// InitLogging sets the global logrus level and formatter. An unparseable level falls back to info.
func InitLogging(level string, dev bool) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   dev,
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		defer logrus.Warnf("[logutil] invalid log level %q, using %s", level, lvl)
	}
	logrus.SetLevel(lvl)
}

// shouldLog checks if a message with the given key should be logged
// and marks the key as logged if it hasn't been seen before.
func shouldLog(key string) bool {
	return loggedKeys.SetIfAbsent(key, struct{}{})
}

// LogfOnce logs a warning with the given key only once.
// If a message with the same key has already been logged, this function does nothing.
func LogfOnce(key string, format string, args ...interface{}) {
	if !shouldLog(key) {
		return
	}
	logrus.Warnf(format, args...)
}
