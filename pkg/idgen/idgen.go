// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package idgen hands out entity ids. Production code uses random UUIDs,
// tests inject a counter so ids are predictable.
package idgen

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type Generator interface {
	NewId() string
}

type uuidGenerator struct{}

func (uuidGenerator) NewId() string {
	return uuid.New().String()
}

// UUID returns a generator of random (v4) uuids
func UUID() Generator {
	return uuidGenerator{}
}

// CounterGenerator produces "prefix-1", "prefix-2", ...
type CounterGenerator struct {
	lock   sync.Mutex
	Prefix string
	next   int64
}

func NewCounter(prefix string) *CounterGenerator {
	return &CounterGenerator{Prefix: prefix}
}

func (g *CounterGenerator) NewId() string {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.Prefix, g.next)
}
