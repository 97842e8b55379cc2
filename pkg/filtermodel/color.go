// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package filtermodel

import (
	"math/rand"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	ColorSaturation = 0.4
	ColorLightness  = 0.4
)

// ColorGenerator produces display color tokens for new filters
type ColorGenerator interface {
	NewColor() string
}

// RandomColorGenerator picks a random hue at fixed saturation and lightness
type RandomColorGenerator struct {
	lock *sync.Mutex
	rng  *rand.Rand
}

func MakeRandomColorGenerator(seed int64) *RandomColorGenerator {
	return &RandomColorGenerator{
		lock: &sync.Mutex{},
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (g *RandomColorGenerator) NewColor() string {
	g.lock.Lock()
	hue := 360 * g.rng.Float64()
	g.lock.Unlock()
	return colorful.Hsl(hue, ColorSaturation, ColorLightness).Hex()
}

// FixedColorGenerator cycles through a fixed list (tests)
type FixedColorGenerator struct {
	Colors []string
	next   int
}

func (g *FixedColorGenerator) NewColor() string {
	if len(g.Colors) == 0 {
		return ""
	}
	color := g.Colors[g.next%len(g.Colors)]
	g.next++
	return color
}
