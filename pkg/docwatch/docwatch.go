// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package docwatch follows log files on disk and reports their content after
// bursts of changes settle.
package docwatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/logfocus/logfocus/pkg/panichandler"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "docwatch")

const TickInterval = 50 * time.Millisecond

// Watcher watches individual files. Parent directories are watched so files that are
// rotated (renamed away and recreated) keep being followed.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(path string, text string)
	onRemove func(path string)

	lock    sync.Mutex
	files   map[string]bool      // absolute path -> watched
	dirs    map[string]int       // directory -> number of watched files in it
	pending map[string]time.Time // path -> last change
}

// MakeWatcher creates a watcher. Callbacks run on the Run goroutine.
func MakeWatcher(debounce time.Duration, onChange func(path string, text string), onRemove func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	return &Watcher{
		watcher:  fw,
		debounce: debounce,
		onChange: onChange,
		onRemove: onRemove,
		files:    make(map[string]bool),
		dirs:     make(map[string]int),
		pending:  make(map[string]time.Time),
	}, nil
}

// Add starts following path and returns its absolute form
func (w *Watcher) Add(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.files[absPath] {
		return absPath, nil
	}
	dir := filepath.Dir(absPath)
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return "", fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[absPath] = true
	return absPath, nil
}

func (w *Watcher) Remove(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return
	}
	w.lock.Lock()
	defer w.lock.Unlock()
	if !w.files[absPath] {
		return
	}
	delete(w.files, absPath)
	delete(w.pending, absPath)
	dir := filepath.Dir(absPath)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		w.watcher.Remove(dir)
	}
}

// Run dispatches events until ctx is done or the watcher is closed
func (w *Watcher) Run(ctx context.Context) (rtnErr error) {
	defer func() {
		if panicErr := panichandler.PanicHandler("docwatch.Run", recover()); panicErr != nil {
			rtnErr = panicErr
		}
	}()
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event, time.Now())
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("[docwatch] watcher error: %v", err)
		case now := <-ticker.C:
			w.flushDue(now)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event, now time.Time) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	w.lock.Lock()
	defer w.lock.Unlock()
	if !w.files[event.Name] {
		return
	}
	w.pending[event.Name] = now
}

// flushDue reports every file whose last change is at least one debounce interval old
func (w *Watcher) flushDue(now time.Time) {
	w.lock.Lock()
	var due []string
	for path, changeTs := range w.pending {
		if now.Sub(changeTs) >= w.debounce {
			due = append(due, path)
			delete(w.pending, path)
		}
	}
	w.lock.Unlock()

	for _, path := range due {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				log.Debugf("[docwatch] %s is gone", path)
				if w.onRemove != nil {
					w.onRemove(path)
				}
				continue
			}
			log.Warnf("[docwatch] reading %s: %v", path, err)
			continue
		}
		if w.onChange != nil {
			w.onChange(path, string(data))
		}
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}
