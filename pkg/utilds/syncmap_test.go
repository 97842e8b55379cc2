// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package utilds

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncMap(t *testing.T) {
	sm := MakeSyncMap[string, int]()
	sm.Set("a", 1)
	assert.False(t, sm.SetIfAbsent("a", 2))
	assert.True(t, sm.SetIfAbsent("b", 3))

	v, ok := sm.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = sm.Get("missing")
	assert.False(t, ok)

	sum := 0
	sm.ForEach(func(_ string, v int) { sum += v })
	assert.Equal(t, 4, sum)

	sm.Delete("a")
	assert.Equal(t, 1, sm.Len())
}

func TestSyncMapConcurrentSetIfAbsent(t *testing.T) {
	sm := MakeSyncMap[string, int]()
	var wg sync.WaitGroup
	var lock sync.Mutex
	stored := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if sm.SetIfAbsent("key", i) {
				lock.Lock()
				stored++
				lock.Unlock()
			}
			sm.Set(strconv.Itoa(i), i)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, stored)
	assert.Equal(t, 51, sm.Len())
}
