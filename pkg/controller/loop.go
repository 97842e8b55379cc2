// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"context"
	"errors"

	"github.com/logfocus/logfocus/pkg/panichandler"
)

var ErrLoopStopped = errors.New("controller loop is not running")

type loopReq struct {
	name string
	fn   func() error
	done chan error
}

// Loop runs functions one at a time on a single goroutine. Adapters with their own
// goroutines (web handlers, file watchers) reach the controller only through Do.
type Loop struct {
	reqCh   chan loopReq
	stopped chan struct{}
	onPanic func(error)
}

// MakeLoop creates a loop. onPanic (may be nil) receives recovered panics as errors.
func MakeLoop(onPanic func(error)) *Loop {
	return &Loop{
		reqCh:   make(chan loopReq),
		stopped: make(chan struct{}),
		onPanic: onPanic,
	}
}

// Run processes requests until ctx is done. It must be called exactly once.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-l.reqCh:
			req.done <- l.runOne(req)
		}
	}
}

func (l *Loop) runOne(req loopReq) (rtnErr error) {
	defer func() {
		panicErr := panichandler.PanicHandler(req.name, recover())
		if panicErr != nil {
			rtnErr = panicErr
			if l.onPanic != nil {
				l.onPanic(panicErr)
			}
		}
	}()
	return req.fn()
}

// Do runs fn on the loop goroutine and returns its error
func (l *Loop) Do(name string, fn func() error) error {
	req := loopReq{name: name, fn: fn, done: make(chan error, 1)}
	select {
	case l.reqCh <- req:
	case <-l.stopped:
		return ErrLoopStopped
	}
	return <-req.done
}
