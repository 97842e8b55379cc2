// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package panichandler

import (
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// PanicHandler converts a recovered value into an error and logs the stack.
// Call as: defer func() { err = panichandler.PanicHandler("name", recover()) }()
func PanicHandler(debugStr string, recoverVal any) error {
	if recoverVal == nil {
		return nil
	}
	logrus.Errorf("[panic] in %s: %v", debugStr, recoverVal)
	logrus.Errorf("[panic] stack trace:\n%s", string(debug.Stack()))
	if err, ok := recoverVal.(error); ok {
		return fmt.Errorf("panic in %s: %w", debugStr, err)
	}
	return fmt.Errorf("panic in %s: %v", debugStr, recoverVal)
}
