// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package filterset exports groups of filters to a JSON snapshot and imports them
// back. Import is lenient: records with missing or mistyped fields (or a regex
// that no longer compiles) are skipped without error.
package filterset

import (
	"encoding/json"
	"errors"

	"github.com/logfocus/logfocus/pkg/filtermodel"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

var log = logrus.WithField("component", "filterset")

var ErrUnparseable = errors.New("filter set is not valid JSON")

// LegacyGroupName names the group created when importing a bare array of filters
const LegacyGroupName = "imported"

type FilterSnapshot struct {
	RegexText     string `json:"regexText"`
	Color         string `json:"color"`
	IsHighlighted bool   `json:"isHighlighted"`
	IsShown       bool   `json:"isShown"`
	IsExclude     bool   `json:"isExclude,omitempty"`
}

type GroupSnapshot struct {
	Name          string           `json:"name"`
	IsHighlighted bool             `json:"isHighlighted"`
	IsShown       bool             `json:"isShown"`
	FilterArr     []FilterSnapshot `json:"filterArr"`
}

type Snapshot struct {
	Groups []GroupSnapshot `json:"groups"`
}

// MakeSnapshot captures groups with their current flags
func MakeSnapshot(groups []*filtermodel.Group) Snapshot {
	snap := Snapshot{Groups: make([]GroupSnapshot, 0, len(groups))}
	for _, g := range groups {
		gs := GroupSnapshot{
			Name:          g.Name,
			IsHighlighted: g.IsHighlighted,
			IsShown:       g.IsShown,
			FilterArr:     make([]FilterSnapshot, 0, len(g.Filters)),
		}
		for _, f := range g.Filters {
			gs.FilterArr = append(gs.FilterArr, FilterSnapshot{
				RegexText:     f.Pattern.Source,
				Color:         f.Color,
				IsHighlighted: f.IsHighlighted,
				IsShown:       f.IsShown,
				IsExclude:     f.IsExclude,
			})
		}
		snap.Groups = append(snap.Groups, gs)
	}
	return snap
}

// Export serializes groups into the snapshot format
func Export(groups []*filtermodel.Group) ([]byte, error) {
	return json.MarshalIndent(MakeSnapshot(groups), "", "  ")
}

// Import parses a snapshot into group seeds ready for filtermodel.Workspace.AddSeededGroup.
// A bare JSON array of filter records is accepted as one group named LegacyGroupName.
func Import(data []byte) ([]filtermodel.GroupSeed, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrUnparseable
	}
	root := gjson.ParseBytes(data)
	if root.IsArray() {
		seed := filtermodel.GroupSeed{Name: LegacyGroupName, IsHighlighted: true, IsShown: true}
		seed.Filters = importFilters(root)
		return []filtermodel.GroupSeed{seed}, nil
	}
	var seeds []filtermodel.GroupSeed
	groups := root.Get("groups")
	if !groups.IsArray() {
		log.Warnf("[filterset] no groups array in import")
		return nil, nil
	}
	groups.ForEach(func(_, g gjson.Result) bool {
		name := g.Get("name")
		isHighlighted := g.Get("isHighlighted")
		isShown := g.Get("isShown")
		filterArr := g.Get("filterArr")
		if name.Type != gjson.String || !isBool(isHighlighted) || !isBool(isShown) || !filterArr.IsArray() {
			log.Debugf("[filterset] skipping malformed group %s", g.Raw)
			return true
		}
		seeds = append(seeds, filtermodel.GroupSeed{
			Name:          name.String(),
			IsHighlighted: isHighlighted.Bool(),
			IsShown:       isShown.Bool(),
			Filters:       importFilters(filterArr),
		})
		return true
	})
	return seeds, nil
}

func importFilters(arr gjson.Result) []filtermodel.FilterSeed {
	var rtn []filtermodel.FilterSeed
	arr.ForEach(func(_, f gjson.Result) bool {
		regexText := f.Get("regexText")
		color := f.Get("color")
		isHighlighted := f.Get("isHighlighted")
		isShown := f.Get("isShown")
		isExclude := f.Get("isExclude")
		if regexText.Type != gjson.String || color.Type != gjson.String || !isBool(isHighlighted) || !isBool(isShown) {
			log.Debugf("[filterset] skipping malformed filter %s", f.Raw)
			return true
		}
		if isExclude.Exists() && !isBool(isExclude) {
			log.Debugf("[filterset] skipping malformed filter %s", f.Raw)
			return true
		}
		pattern, err := filtermodel.CompilePattern(regexText.String())
		if err != nil {
			log.Debugf("[filterset] skipping filter: %v", err)
			return true
		}
		rtn = append(rtn, filtermodel.FilterSeed{
			Pattern:       pattern,
			Color:         color.String(),
			IsHighlighted: isHighlighted.Bool(),
			IsShown:       isShown.Bool(),
			IsExclude:     isExclude.Bool(),
		})
		return true
	})
	return rtn
}

func isBool(r gjson.Result) bool {
	return r.Type == gjson.True || r.Type == gjson.False
}
