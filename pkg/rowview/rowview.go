// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package rowview derives sidebar tree rows from the current rule set. Rows are
// rebuilt from scratch on every refresh; nothing is cached between refreshes.
package rowview

import (
	"fmt"

	"github.com/logfocus/logfocus/pkg/filtermodel"
)

type RowKind int

const (
	RowGroup RowKind = iota
	RowFilter
)

func (k RowKind) String() string {
	switch k {
	case RowGroup:
		return "group"
	case RowFilter:
		return "filter"
	}
	panic(fmt.Sprintf("unknown row kind %d", int(k)))
}

func (k RowKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *RowKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "group":
		*k = RowGroup
	case "filter":
		*k = RowFilter
	default:
		return fmt.Errorf("unknown row kind %q", string(text))
	}
	return nil
}

// View selects which filters a tree shows
type View int

const (
	ViewFilters   View = iota // inclusion filters
	ViewExFilters             // exclusion filters
)

// Row is one tree item; Kind tells which fields apply
type Row struct {
	Kind          RowKind `json:"kind"`
	Id            string  `json:"id"`
	Label         string  `json:"label"`
	Description   string  `json:"description,omitempty"`
	ContextValue  string  `json:"contextvalue"`
	Icon          string  `json:"icon,omitempty"`
	Color         string  `json:"color,omitempty"`
	IsHighlighted bool    `json:"ishighlighted"`
	IsShown       bool    `json:"isshown"`
	Children      []Row   `json:"children,omitempty"`
}

type ProjectRow struct {
	Id         string `json:"id"`
	Name       string `json:"name"`
	IsSelected bool   `json:"isselected"`
	Icon       string `json:"icon,omitempty"`
}

// BuildFilterRows returns one group row per group with the filters of the requested view as children
func BuildFilterRows(groups []*filtermodel.Group, view View) []Row {
	rows := make([]Row, 0, len(groups))
	for _, g := range groups {
		groupRow := Row{
			Kind:          RowGroup,
			Id:            g.Id,
			Label:         g.Name,
			IsHighlighted: g.IsHighlighted,
			IsShown:       g.IsShown,
		}
		for _, f := range g.Filters {
			if f.IsExclude != (view == ViewExFilters) {
				continue
			}
			groupRow.Children = append(groupRow.Children, Row{
				Kind:          RowFilter,
				Id:            f.Id,
				Label:         f.Pattern.String(),
				Color:         f.Color,
				IsHighlighted: f.IsHighlighted,
				IsShown:       f.IsShown,
			})
			describeFilter(&groupRow.Children[len(groupRow.Children)-1], f)
		}
		describe(&groupRow)
		rows = append(rows, groupRow)
	}
	return rows
}

func describeFilter(row *Row, f *filtermodel.Filter) {
	if f.IsExclude {
		if f.IsShown {
			row.Description = fmt.Sprintf(" · %d", f.MatchCount)
			row.ContextValue = "f-visible"
			row.Icon = "bracket-error"
		} else {
			row.ContextValue = "f-invisible"
		}
		return
	}
	row.ContextValue = litState(f.IsHighlighted, f.IsShown)
	if f.IsHighlighted && f.IsShown {
		row.Description = fmt.Sprintf(" · %d", f.MatchCount)
	}
	if f.IsHighlighted {
		row.Icon = "swatch"
	} else {
		row.Icon = "swatch-off"
	}
}

func describe(row *Row) {
	switch row.Kind {
	case RowGroup:
		row.ContextValue = "g-" + litState(row.IsHighlighted, row.IsShown)
		row.Icon = "folder"
	case RowFilter:
		// filled in by describeFilter, which needs the filter itself
	default:
		panic(fmt.Sprintf("unknown row kind %d", int(row.Kind)))
	}
}

func litState(isHighlighted, isShown bool) string {
	lit := "unlit"
	if isHighlighted {
		lit = "lit"
	}
	visible := "invisible"
	if isShown {
		visible = "visible"
	}
	return lit + "-" + visible
}

func BuildProjectRows(projects []*filtermodel.Project) []ProjectRow {
	rows := make([]ProjectRow, 0, len(projects))
	for _, p := range projects {
		row := ProjectRow{Id: p.Id, Name: p.Name, IsSelected: p.IsSelected}
		if p.IsSelected {
			row.Icon = "arrow-small-right"
		}
		rows = append(rows, row)
	}
	return rows
}

// Walk visits every row depth-first
func Walk(rows []Row, fn func(Row)) {
	for _, row := range rows {
		fn(row)
		Walk(row.Children, fn)
	}
}
