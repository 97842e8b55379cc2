// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package utilds holds small concurrent data structures.
package utilds

import "sync"

// SyncMap is a map guarded by a read/write lock
type SyncMap[K comparable, T any] struct {
	lock sync.RWMutex
	m    map[K]T
}

func MakeSyncMap[K comparable, T any]() *SyncMap[K, T] {
	return &SyncMap[K, T]{m: make(map[K]T)}
}

func (sm *SyncMap[K, T]) Set(key K, value T) {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	sm.m[key] = value
}

// SetIfAbsent stores value unless key is present. It reports whether value was stored.
func (sm *SyncMap[K, T]) SetIfAbsent(key K, value T) bool {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	if _, ok := sm.m[key]; ok {
		return false
	}
	sm.m[key] = value
	return true
}

func (sm *SyncMap[K, T]) Get(key K) (T, bool) {
	sm.lock.RLock()
	defer sm.lock.RUnlock()
	v, ok := sm.m[key]
	return v, ok
}

func (sm *SyncMap[K, T]) Delete(key K) {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	delete(sm.m, key)
}

func (sm *SyncMap[K, T]) Len() int {
	sm.lock.RLock()
	defer sm.lock.RUnlock()
	return len(sm.m)
}

// ForEach calls fn for every entry while holding the read lock; fn must not modify the map
func (sm *SyncMap[K, T]) ForEach(fn func(K, T)) {
	sm.lock.RLock()
	defer sm.lock.RUnlock()
	for k, v := range sm.m {
		fn(k, v)
	}
}
