// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package filtermodel

// Filter is a single line-matching rule
type Filter struct {
	Id            string
	Pattern       Pattern
	Color         string
	IsHighlighted bool
	IsShown       bool
	IsExclude     bool

	// MatchCount is recomputed on every evaluation against the active document, never persisted.
	// For exclusion filters it counts lines the filter removed from the focus view.
	MatchCount int
}

// IsLit reports whether an inclusion filter takes part in highlighting and counting
func (f *Filter) IsLit() bool {
	return !f.IsExclude && f.IsHighlighted
}

// IncludesInFocus reports whether an inclusion filter contributes lines to the focus view
func (f *Filter) IncludesInFocus() bool {
	return !f.IsExclude && f.IsHighlighted && f.IsShown
}

// ExcludesFromFocus reports whether an exclusion filter removes lines from the focus view
func (f *Filter) ExcludesFromFocus() bool {
	return f.IsExclude && f.IsShown
}

// Group is a named, ordered collection of filters. Its flags are bulk toggles.
type Group struct {
	Id            string
	Name          string
	IsHighlighted bool
	IsShown       bool
	Filters       []*Filter
}

// Project is a named, ordered collection of groups
type Project struct {
	Id         string
	Name       string
	IsSelected bool
	Groups     []*Group
}

// FilterSeed describes a filter to be created with explicit flags (load/import)
type FilterSeed struct {
	Pattern       Pattern
	Color         string
	IsHighlighted bool
	IsShown       bool
	IsExclude     bool
}

// GroupSeed describes a group to be created together with its filters
type GroupSeed struct {
	Name          string
	IsHighlighted bool
	IsShown       bool
	Filters       []FilterSeed
}

// FilterRecord is the persisted form of a filter
type FilterRecord struct {
	Regex     string `json:"regex"`
	Color     string `json:"color"`
	IsExclude bool   `json:"isExclude,omitempty"`
}

// GroupRecord is the persisted form of a group
type GroupRecord struct {
	Name    string         `json:"name"`
	Filters []FilterRecord `json:"filters"`
}

// ProjectRecord is the persisted form of a project
type ProjectRecord struct {
	Name   string        `json:"name"`
	Groups []GroupRecord `json:"groups"`
}

// FilterRef is the result of a filter lookup, with its owners
type FilterRef struct {
	Filter  *Filter
	Group   *Group
	Project *Project
}

// GroupRef is the result of a group lookup, with its owner
type GroupRef struct {
	Group   *Group
	Project *Project
}

type SelectResult int

const (
	SelectNotFound SelectResult = iota
	SelectDone
	SelectAlreadySelected
)
