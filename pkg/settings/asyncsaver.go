// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"sync"

	"github.com/logfocus/logfocus/pkg/filtermodel"
)

// AsyncSaver writes settings in the background. Writes never overlap: a save requested
// while one is in flight is held, and only the most recent held state is written
// once the in-flight save settles.
type AsyncSaver struct {
	lock     *sync.Mutex
	settled  *sync.Cond
	path     string
	pending  []filtermodel.ProjectRecord
	hasWork  bool
	inFlight bool
	onError  func(error)

	// saveFn is Save; replaced in tests
	saveFn func(string, []filtermodel.ProjectRecord) error
}

// MakeAsyncSaver creates a saver for path. onError (may be nil) is called from the
// writer goroutine when a save fails.
func MakeAsyncSaver(path string, onError func(error)) *AsyncSaver {
	lock := &sync.Mutex{}
	return &AsyncSaver{
		lock:    lock,
		settled: sync.NewCond(lock),
		path:    path,
		onError: onError,
		saveFn:  Save,
	}
}

func (s *AsyncSaver) Path() string {
	return s.path
}

// Save schedules records to be written and returns immediately
func (s *AsyncSaver) Save(records []filtermodel.ProjectRecord) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.pending = records
	s.hasWork = true
	if s.inFlight {
		return
	}
	s.inFlight = true
	go s.writeLoop()
}

func (s *AsyncSaver) writeLoop() {
	for {
		s.lock.Lock()
		if !s.hasWork {
			s.inFlight = false
			s.settled.Broadcast()
			s.lock.Unlock()
			return
		}
		records := s.pending
		s.pending = nil
		s.hasWork = false
		s.lock.Unlock()

		err := s.saveFn(s.path, records)
		if err != nil {
			log.Errorf("[settings] error saving %s: %v", s.path, err)
			if s.onError != nil {
				s.onError(err)
			}
		}
	}
}

// Flush blocks until every scheduled save has settled
func (s *AsyncSaver) Flush() {
	s.lock.Lock()
	defer s.lock.Unlock()
	for s.inFlight {
		s.settled.Wait()
	}
}
